package handlers_test

import (
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/donaldgifford/stock-tracker/internal/api/handlers"
	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/store"
	"github.com/donaldgifford/stock-tracker/pkg/logger"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// newTestAPI registers every Huma route against an engine backed by st.
func newTestAPI(t *testing.T, st store.Store, opts ...engine.EngineOption) humatest.TestAPI {
	t.Helper()

	opts = append([]engine.EngineOption{engine.WithLogger(logger.Discard())}, opts...)
	eng := engine.NewEngine(st, nil, opts...)

	_, api := humatest.New(t)
	handlers.RegisterEquipmentRoutes(api, handlers.NewEquipmentHandler(eng))
	handlers.RegisterImportRoutes(api, handlers.NewImportHandler(eng, false, 0))
	handlers.RegisterDigestRoutes(api, handlers.NewDigestHandler(eng))
	return api
}

func seededAPI(t *testing.T, seed ...domain.Equipment) (humatest.TestAPI, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore(seed...)
	return newTestAPI(t, ms), ms
}

func inventory() []domain.Equipment {
	return []domain.Equipment{
		{Name: "Router A", Type: "CPE", Quantity: 20, Status: domain.StatusFunctional},
		{Name: "Router A", Type: "CPE", Quantity: 2, Status: domain.StatusBroken},
		{Name: "ONT", Type: "FTTH", Quantity: 3, Status: domain.StatusFunctional},
		{Name: "OLT", Type: "GPON", Quantity: 1, Status: domain.StatusMaintenance},
	}
}

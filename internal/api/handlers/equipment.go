package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/store"
	"github.com/donaldgifford/stock-tracker/pkg/status"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Inventory is the engine surface used by the equipment routes.
type Inventory interface {
	List(ctx context.Context, q *store.ListQuery) ([]engine.Listing, error)
	Alerts(ctx context.Context) ([]engine.Listing, error)
	Summary(ctx context.Context) (domain.StockSummary, error)
	Get(ctx context.Context, id int64) (*domain.Equipment, error)
	Add(ctx context.Context, c engine.Candidate) (*engine.Outcome, error)
	Modify(ctx context.Context, id int64, c engine.Candidate) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64, confirmed bool) (bool, error)
	Rules() engine.AlertRules
}

// EquipmentHandler handles inventory reads and manual edits.
type EquipmentHandler struct {
	inv Inventory
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(inv Inventory) *EquipmentHandler {
	return &EquipmentHandler{inv: inv}
}

// --- Input/Output types ---

// EquipmentBody is a record as entered by an operator.
type EquipmentBody struct {
	Name     string `json:"name"               doc:"Equipment model name"                       maxLength:"255" example:"Router A"`
	Type     string `json:"type"               doc:"Equipment category"                         maxLength:"255" example:"CPE"`
	Quantity int    `json:"quantity"           doc:"Units in this status bucket"                minimum:"0"     example:"3"`
	Supplier string `json:"supplier,omitempty" doc:"Supplier name"                              maxLength:"255"`
	Note     string `json:"note,omitempty"     doc:"Free-form remark"`
	Status   string `json:"status,omitempty"   doc:"Status text, normalized (HS, en panne, ...)" example:"HS"`
}

func (b *EquipmentBody) candidate() engine.Candidate {
	return engine.Candidate{
		Name:     b.Name,
		Type:     b.Type,
		Quantity: b.Quantity,
		Supplier: b.Supplier,
		Note:     b.Note,
		Status:   b.Status,
	}
}

// ListEquipmentInput is the input for listing equipment with optional filters.
type ListEquipmentInput struct {
	Name    string `query:"name"     doc:"Exact name filter"`
	Type    string `query:"type"     doc:"Exact type filter"`
	Status  string `query:"status"   doc:"Status filter, normalized like stored values"`
	Limit   int    `query:"limit"    doc:"Number of results (0 means all)"               minimum:"0" maximum:"1000"`
	Offset  int    `query:"offset"   doc:"Pagination offset"                             minimum:"0"`
	OrderBy string `query:"order_by" doc:"Sort field"                                    enum:"id,name,quantity,"`
}

// ListEquipmentOutput is the response for listing equipment.
type ListEquipmentOutput struct {
	Body struct {
		Equipment []engine.Listing `json:"equipment"`
		Limit     int              `json:"limit"`
		Offset    int              `json:"offset"`
	}
}

// AlertsOutput is the response of the alert view.
type AlertsOutput struct {
	Body struct {
		Equipment         []engine.Listing `json:"equipment"`
		LowStockThreshold int              `json:"low_stock_threshold"`
	}
}

// SummaryOutput is the aggregate alert state.
type SummaryOutput struct {
	Body struct {
		LowStock          int  `json:"low_stock"`
		Broken            int  `json:"broken"`
		Total             int  `json:"total"`
		Healthy           bool `json:"healthy"`
		LowStockThreshold int  `json:"low_stock_threshold"`
	}
}

// EquipmentIDInput addresses one row.
type EquipmentIDInput struct {
	ID int64 `path:"id" doc:"Equipment row id"`
}

// EquipmentOutput returns one row.
type EquipmentOutput struct {
	Body domain.Equipment
}

// AddEquipmentInput is the input for a manual add.
type AddEquipmentInput struct {
	Body EquipmentBody
}

// AddEquipmentOutput reports the merge or insert. Status is 201 for a new row
// and 200 for a merge.
type AddEquipmentOutput struct {
	Status int
	Body   engine.Outcome
}

// ModifyEquipmentInput overwrites one row.
type ModifyEquipmentInput struct {
	ID   int64 `path:"id" doc:"Equipment row id"`
	Body EquipmentBody
}

// DeleteEquipmentInput deletes one row when confirmed.
type DeleteEquipmentInput struct {
	ID      int64 `path:"id"       doc:"Equipment row id"`
	Confirm bool  `query:"confirm" doc:"Must be true for the row to be deleted"`
}

// DeleteEquipmentOutput reports whether the row was deleted.
type DeleteEquipmentOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

// --- Handlers ---

// List returns equipment rows, each tagged with its alert bucket.
func (h *EquipmentHandler) List(ctx context.Context, input *ListEquipmentInput) (*ListEquipmentOutput, error) {
	q := &store.ListQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.Name != "" {
		q.Name = &input.Name
	}
	if input.Type != "" {
		q.Type = &input.Type
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		st, ok := status.Parse(raw)
		if !ok {
			return nil, huma.Error422UnprocessableEntity("unknown status filter", &huma.ErrorDetail{
				Location: "query.status",
				Message:  "unrecognized status",
				Value:    input.Status,
			})
		}
		q.Status = &st
	}

	rows, err := h.inv.List(ctx, q)
	if err != nil {
		return nil, apiError(err)
	}

	resp := &ListEquipmentOutput{}
	resp.Body.Equipment = rows
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// Alerts returns the rows with low quantity or a broken status.
func (h *EquipmentHandler) Alerts(ctx context.Context, _ *struct{}) (*AlertsOutput, error) {
	rows, err := h.inv.Alerts(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	resp := &AlertsOutput{}
	resp.Body.Equipment = rows
	resp.Body.LowStockThreshold = h.inv.Rules().LowStockThreshold
	return resp, nil
}

// Summary returns the low-stock and broken counts.
func (h *EquipmentHandler) Summary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	s, err := h.inv.Summary(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	resp := &SummaryOutput{}
	resp.Body.LowStock = s.LowStock
	resp.Body.Broken = s.Broken
	resp.Body.Total = s.Total
	resp.Body.Healthy = s.Healthy()
	resp.Body.LowStockThreshold = h.inv.Rules().LowStockThreshold
	return resp, nil
}

// Get returns one row.
func (h *EquipmentHandler) Get(ctx context.Context, input *EquipmentIDInput) (*EquipmentOutput, error) {
	e, err := h.inv.Get(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &EquipmentOutput{Body: *e}, nil
}

// Add merges the body into the row with the same name, type and status, or
// inserts a new row.
func (h *EquipmentHandler) Add(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error) {
	out, err := h.inv.Add(ctx, input.Body.candidate())
	if err != nil {
		return nil, apiError(err)
	}

	resp := &AddEquipmentOutput{Status: http.StatusOK, Body: *out}
	if out.Action == engine.ActionInserted {
		resp.Status = http.StatusCreated
	}
	return resp, nil
}

// Modify overwrites one row with the body.
func (h *EquipmentHandler) Modify(ctx context.Context, input *ModifyEquipmentInput) (*EquipmentOutput, error) {
	e, err := h.inv.Modify(ctx, input.ID, input.Body.candidate())
	if err != nil {
		return nil, apiError(err)
	}
	return &EquipmentOutput{Body: *e}, nil
}

// Delete removes one row when confirm=true. Without confirmation nothing is
// deleted and the response says so.
func (h *EquipmentHandler) Delete(ctx context.Context, input *DeleteEquipmentInput) (*DeleteEquipmentOutput, error) {
	deleted, err := h.inv.Delete(ctx, input.ID, input.Confirm)
	if err != nil {
		return nil, apiError(err)
	}

	resp := &DeleteEquipmentOutput{}
	resp.Body.Deleted = deleted
	return resp, nil
}

// RegisterEquipmentRoutes registers equipment endpoints with the Huma API.
func RegisterEquipmentRoutes(api huma.API, h *EquipmentHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-equipment",
		Method:      http.MethodGet,
		Path:        "/api/v1/equipment",
		Summary:     "List equipment",
		Description: "Returns equipment rows with optional filters; each row carries its alert bucket.",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "list-alerts",
		Method:      http.MethodGet,
		Path:        "/api/v1/equipment/alerts",
		Summary:     "List alerting equipment",
		Description: "Returns rows with a quantity under the low-stock threshold or a broken status.",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Alerts)

	huma.Register(api, huma.Operation{
		OperationID: "get-equipment",
		Method:      http.MethodGet,
		Path:        "/api/v1/equipment/{id}",
		Summary:     "Get an equipment row",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "add-equipment",
		Method:        http.MethodPost,
		Path:          "/api/v1/equipment",
		Summary:       "Add equipment",
		Description:   "Adds the quantity to the row with the same name, type and status, or creates one.",
		Tags:          []string{"equipment"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Add)

	huma.Register(api, huma.Operation{
		OperationID: "modify-equipment",
		Method:      http.MethodPut,
		Path:        "/api/v1/equipment/{id}",
		Summary:     "Modify an equipment row",
		Description: "Overwrites every field of the row. No merge with equivalent rows is attempted.",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Modify)

	huma.Register(api, huma.Operation{
		OperationID: "delete-equipment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/equipment/{id}",
		Summary:     "Delete an equipment row",
		Description: "Deletes the row when confirm=true; otherwise reports deleted=false.",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/api/v1/summary",
		Summary:     "Stock summary",
		Description: "Returns the low-stock and broken counts of the whole inventory.",
		Tags:        []string{"equipment"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Summary)
}

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/sheet"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Importer runs import batches.
type Importer interface {
	Import(ctx context.Context, rows []domain.ImportRow, opts engine.ImportOptions) (*engine.ImportReport, error)
}

// ImportHandler handles import batch uploads.
type ImportHandler struct {
	importer    Importer
	skipInvalid bool
	maxUpload   int64
}

// NewImportHandler creates a new ImportHandler. skipInvalid is the default
// row policy when a request does not set one; maxUpload caps spreadsheet
// bodies in bytes (0 keeps the Huma default).
func NewImportHandler(imp Importer, skipInvalid bool, maxUpload int64) *ImportHandler {
	return &ImportHandler{importer: imp, skipInvalid: skipInvalid, maxUpload: maxUpload}
}

// --- Input/Output types ---

// ImportRowsInput is a JSON import batch. Row keys are column headers and
// are normalized like spreadsheet headers.
type ImportRowsInput struct {
	Body struct {
		Source          string              `json:"source,omitempty"            doc:"Name of the batch in notifications" example:"stock-2024-05.xlsx"`
		SkipInvalidRows *bool               `json:"skip_invalid_rows,omitempty" doc:"Skip rows with unusable data instead of stopping"`
		Rows            []map[string]string `json:"rows"                        doc:"Rows keyed by column (nom, type, quantite, fournisseur, remarque, statut)"`
	}
}

// ImportSheetInput is a raw spreadsheet upload.
type ImportSheetInput struct {
	Sheet       string `query:"sheet"        doc:"Worksheet name (default: first sheet)"`
	Source      string `query:"source"       doc:"Name of the batch in notifications"`
	SkipInvalid string `query:"skip_invalid" doc:"Skip rows with unusable data"            enum:"true,false,"`
	RawBody     []byte `contentType:"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"`
}

// ImportOutput is the report of a completed batch.
type ImportOutput struct {
	Body engine.ImportReport
}

// --- Handlers ---

// ImportRows imports a JSON batch.
func (h *ImportHandler) ImportRows(ctx context.Context, input *ImportRowsInput) (*ImportOutput, error) {
	rows := make([]domain.ImportRow, len(input.Body.Rows))
	for i, raw := range input.Body.Rows {
		fields, err := rowFields(raw)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error(), &huma.ErrorDetail{
				Location: fmt.Sprintf("body.rows[%d]", i),
				Message:  err.Error(),
			})
		}
		rows[i] = domain.ImportRow{Line: i + 1, Fields: fields}
	}

	skip := h.skipInvalid
	if input.Body.SkipInvalidRows != nil {
		skip = *input.Body.SkipInvalidRows
	}

	return h.run(ctx, rows, engine.ImportOptions{SkipInvalidRows: skip, Source: input.Body.Source})
}

// rowFields keys a JSON row by normalized header. Two keys naming the same
// column ("Quantité" and "quantite") are rejected.
func rowFields(raw map[string]string) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	from := make(map[string]string, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		key := sheet.NormalizeHeader(k)
		if prev, ok := from[key]; ok {
			return nil, fmt.Errorf("keys %q and %q both name column %q", prev, k, key)
		}
		from[key] = k
		fields[key] = raw[k]
	}
	return fields, nil
}

// ImportSheet imports the rows of an uploaded .xlsx workbook.
func (h *ImportHandler) ImportSheet(ctx context.Context, input *ImportSheetInput) (*ImportOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("empty request body")
	}

	rows, err := sheet.ReadXLSX(bytes.NewReader(input.RawBody), sheet.Options{Sheet: input.Sheet})
	if err != nil {
		return nil, huma.Error400BadRequest("reading workbook: " + err.Error())
	}

	skip := h.skipInvalid
	switch input.SkipInvalid {
	case "true":
		skip = true
	case "false":
		skip = false
	}

	source := input.Source
	if source == "" {
		source = "upload.xlsx"
	}

	return h.run(ctx, rows, engine.ImportOptions{SkipInvalidRows: skip, Source: source})
}

func (h *ImportHandler) run(ctx context.Context, rows []domain.ImportRow, opts engine.ImportOptions) (*ImportOutput, error) {
	report, err := h.importer.Import(ctx, rows, opts)
	if err != nil {
		return nil, importError(err, report)
	}
	return &ImportOutput{Body: *report}, nil
}

// RegisterImportRoutes registers import endpoints with the Huma API.
func RegisterImportRoutes(api huma.API, h *ImportHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "import-rows",
		Method:      http.MethodPost,
		Path:        "/api/v1/imports",
		Summary:     "Import rows",
		Description: "Reconciles a batch of rows into the inventory, in order. " +
			"Rows committed before a failure stay committed; the error body carries their report.",
		Tags:   []string{"imports"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.ImportRows)

	huma.Register(api, huma.Operation{
		OperationID:  "import-sheet",
		Method:       http.MethodPost,
		Path:         "/api/v1/imports/xlsx",
		Summary:      "Import a spreadsheet",
		Description:  "Reads the first (or selected) worksheet of an .xlsx upload and imports its rows.",
		Tags:         []string{"imports"},
		MaxBodyBytes: h.maxUpload,
		Errors:       []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.ImportSheet)
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/store"
)

// apiError maps an engine error onto an HTTP problem response.
func apiError(err error) error {
	var (
		verr *engine.ValidationError
		cerr *engine.ConnectivityError
	)

	switch {
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity(verr.Error(), &huma.ErrorDetail{
			Location: fieldLocation(verr.Field),
			Message:  verr.Message,
		})
	case errors.As(err, &cerr):
		return huma.Error503ServiceUnavailable(cerr.Error())
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}

func fieldLocation(field string) string {
	switch field {
	case "":
		return "body"
	case "id":
		return "path.id"
	default:
		return "body." + field
	}
}

// ImportFailure is the problem body of a failed import. It carries the
// report of the rows committed before the failure.
type ImportFailure struct {
	huma.ErrorModel
	Report *engine.ImportReport `json:"report,omitempty"`
}

// importError maps an import error, keeping the partial report in the body.
func importError(err error, report *engine.ImportReport) error {
	var (
		rowErr *engine.ImportRowError
		cerr   *engine.ConnectivityError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &rowErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &cerr):
		status = http.StatusServiceUnavailable
	}

	return &ImportFailure{
		ErrorModel: huma.ErrorModel{
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		},
		Report: report,
	}
}

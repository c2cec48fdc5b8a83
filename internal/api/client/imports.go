package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/donaldgifford/stock-tracker/internal/engine"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportRowsRequest is a JSON import batch. Row keys are column headers.
type ImportRowsRequest struct {
	Source          string              `json:"source,omitempty"`
	SkipInvalidRows *bool               `json:"skip_invalid_rows,omitempty"`
	Rows            []map[string]string `json:"rows"`
}

// SheetParams tunes a workbook upload.
type SheetParams struct {
	Sheet       string
	Source      string
	SkipInvalid *bool
}

// ImportRows sends a JSON batch. When the batch fails the returned report
// covers the rows the server committed before the failure.
func (c *Client) ImportRows(ctx context.Context, req *ImportRowsRequest) (*engine.ImportReport, error) {
	var report engine.ImportReport
	if err := c.post(ctx, "/api/v1/imports", req, &report); err != nil {
		return failedReport(err), err
	}
	return &report, nil
}

// ImportSheet uploads an .xlsx workbook.
func (c *Client) ImportSheet(ctx context.Context, body io.Reader, params *SheetParams) (*engine.ImportReport, error) {
	q := url.Values{}
	if params != nil {
		if params.Sheet != "" {
			q.Set("sheet", params.Sheet)
		}
		if params.Source != "" {
			q.Set("source", params.Source)
		}
		if params.SkipInvalid != nil {
			q.Set("skip_invalid", strconv.FormatBool(*params.SkipInvalid))
		}
	}

	path := "/api/v1/imports/xlsx"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var report engine.ImportReport
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		raw:         body,
		contentType: xlsxContentType,
	}, &report)
	if err != nil {
		return failedReport(err), err
	}
	return &report, nil
}

// failedReport extracts the partial report from an import failure body.
func failedReport(err error) *engine.ImportReport {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	var failure struct {
		Report *engine.ImportReport `json:"report"`
	}
	if json.Unmarshal(apiErr.Body, &failure) != nil {
		return nil
	}
	return failure.Report
}

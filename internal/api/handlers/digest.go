package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/stock-tracker/internal/engine"
)

// DigestSender sends the stock digest on demand.
type DigestSender interface {
	SendDigest(ctx context.Context) error
}

// DigestHandler handles manual digest requests.
type DigestHandler struct {
	sender DigestSender
}

// NewDigestHandler creates a new DigestHandler.
func NewDigestHandler(s DigestSender) *DigestHandler {
	return &DigestHandler{sender: s}
}

// DigestOutput is the response body for the digest endpoint.
type DigestOutput struct {
	Body struct {
		Status string `json:"status" example:"digest processed" doc:"Digest status"`
	}
}

// Send triggers a digest now. A healthy inventory sends nothing and still
// reports success.
func (h *DigestHandler) Send(ctx context.Context, _ *struct{}) (*DigestOutput, error) {
	if err := h.sender.SendDigest(ctx); err != nil {
		var cerr *engine.ConnectivityError
		if errors.As(err, &cerr) {
			return nil, apiError(err)
		}
		return nil, huma.Error502BadGateway("digest failed: " + err.Error())
	}

	resp := &DigestOutput{}
	resp.Body.Status = "digest processed"
	return resp, nil
}

// RegisterDigestRoutes registers the digest trigger with the Huma API.
func RegisterDigestRoutes(api huma.API, h *DigestHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "send-digest",
		Method:      http.MethodPost,
		Path:        "/api/v1/digest",
		Summary:     "Send stock digest",
		Description: "Sends the low-stock and broken summary to the configured notifiers.",
		Tags:        []string{"digest"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Send)
}

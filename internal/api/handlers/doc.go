// Package handlers implements the HTTP handlers of the stock tracker API.
// Inventory routes are registered on a Huma API; probes are plain Echo
// handlers.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// EquipmentInput is a record sent to add or modify. Status is free text and
// is normalized by the server.
type EquipmentInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier,omitempty"`
	Note     string `json:"note,omitempty"`
	Status   string `json:"status,omitempty"`
}

// EquipmentPage is one page of the inventory listing.
type EquipmentPage struct {
	Equipment []engine.Listing `json:"equipment"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}

// AlertsResponse is the filtered alert view.
type AlertsResponse struct {
	Equipment         []engine.Listing `json:"equipment"`
	LowStockThreshold int              `json:"low_stock_threshold"`
}

// SummaryResponse is the aggregate alert state.
type SummaryResponse struct {
	domain.StockSummary
	Healthy           bool `json:"healthy"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// ListParams defines query parameters for listing equipment.
type ListParams struct {
	Name    string
	Type    string
	Status  string
	Limit   int
	Offset  int
	OrderBy string
}

// ListEquipment returns the inventory rows matching params.
func (c *Client) ListEquipment(ctx context.Context, params *ListParams) (*EquipmentPage, error) {
	q := url.Values{}
	if params != nil {
		if params.Name != "" {
			q.Set("name", params.Name)
		}
		if params.Type != "" {
			q.Set("type", params.Type)
		}
		if params.Status != "" {
			q.Set("status", params.Status)
		}
		if params.Limit > 0 {
			q.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.Offset > 0 {
			q.Set("offset", strconv.Itoa(params.Offset))
		}
		if params.OrderBy != "" {
			q.Set("order_by", params.OrderBy)
		}
	}

	path := "/api/v1/equipment"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page EquipmentPage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Alerts returns the rows that need attention.
func (c *Client) Alerts(ctx context.Context) (*AlertsResponse, error) {
	var resp AlertsResponse
	if err := c.get(ctx, "/api/v1/equipment/alerts", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary returns the aggregate alert state.
func (c *Client) Summary(ctx context.Context) (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := c.get(ctx, "/api/v1/summary", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEquipment returns one row by id.
func (c *Client) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	var e domain.Equipment
	if err := c.get(ctx, fmt.Sprintf("/api/v1/equipment/%d", id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// AddEquipment merges in into its bucket or inserts a new row.
func (c *Client) AddEquipment(ctx context.Context, in *EquipmentInput) (*engine.Outcome, error) {
	var out engine.Outcome
	if err := c.post(ctx, "/api/v1/equipment", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModifyEquipment overwrites row id.
func (c *Client) ModifyEquipment(ctx context.Context, id int64, in *EquipmentInput) (*domain.Equipment, error) {
	var e domain.Equipment
	if err := c.put(ctx, fmt.Sprintf("/api/v1/equipment/%d", id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEquipment deletes row id. The request is always confirmed; callers
// ask the operator first.
func (c *Client) DeleteEquipment(ctx context.Context, id int64) (bool, error) {
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.del(ctx, fmt.Sprintf("/api/v1/equipment/%d?confirm=true", id), &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// SendDigest asks the server to send the stock digest now.
func (c *Client) SendDigest(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/api/v1/digest", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

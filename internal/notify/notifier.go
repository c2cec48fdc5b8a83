// Package notify defines the notification interface and its delivery
// backends for stock alerts.
package notify

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// DefaultDisplayLimit is how many broken items are spelled out before the
// rest are folded into a "... and N more" line.
const DefaultDisplayLimit = 10

// BrokenItemsPayload reports equipment that arrived broken in one import.
// Items is the full list; backends truncate for display.
type BrokenItemsPayload struct {
	Source       string
	Items        []domain.BrokenItem
	DisplayLimit int
}

// Shown returns the items to spell out and how many were left out.
func (p *BrokenItemsPayload) Shown() ([]domain.BrokenItem, int) {
	limit := p.DisplayLimit
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	if len(p.Items) <= limit {
		return p.Items, 0
	}
	return p.Items[:limit], len(p.Items) - limit
}

// Lines returns one "- name (type)" line per shown item plus the overflow
// line, if any.
func (p *BrokenItemsPayload) Lines() []string {
	shown, more := p.Shown()

	lines := make([]string, 0, len(shown)+1)
	for _, it := range shown {
		lines = append(lines, "- "+it.String())
	}
	if more > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", more))
	}
	return lines
}

// Title is the headline shared by every backend.
func (p *BrokenItemsPayload) Title() string {
	if p.Source == "" {
		return "Broken equipment imported"
	}
	return "Broken equipment imported from " + p.Source
}

// Text renders the payload as a plain-text message body.
func (p *BrokenItemsPayload) Text() string {
	var b strings.Builder
	b.WriteString(p.Title())
	b.WriteString(":\n\n")
	b.WriteString(strings.Join(p.Lines(), "\n"))
	fmt.Fprintf(&b, "\n\nThey were recorded with status %q.", domain.StatusBroken)
	return b.String()
}

// SummaryPayload is a stock digest.
type SummaryPayload struct {
	Summary domain.StockSummary
	// Alerts are the rows behind the summary counts, in display order.
	Alerts       []domain.Equipment
	DisplayLimit int
}

// Lines returns one line per shown alert row plus the overflow line, if any.
func (p *SummaryPayload) Lines() []string {
	limit := p.DisplayLimit
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}

	lines := make([]string, 0, min(len(p.Alerts), limit)+1)
	for i, e := range p.Alerts {
		if i == limit {
			lines = append(lines, fmt.Sprintf("... and %d more", len(p.Alerts)-limit))
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %d [%s]", e.Name, e.Type, e.Quantity, e.Status))
	}
	return lines
}

// Text renders the digest as a plain-text message body.
func (p *SummaryPayload) Text() string {
	head := fmt.Sprintf("Stock digest: %d rows, %d low stock, %d broken.",
		p.Summary.Total, p.Summary.LowStock, p.Summary.Broken)
	lines := p.Lines()
	if len(lines) == 0 {
		return head
	}
	return head + "\n\n" + strings.Join(lines, "\n")
}

// Notifier delivers stock alerts.
type Notifier interface {
	SendBrokenItems(ctx context.Context, p *BrokenItemsPayload) error
	SendSummary(ctx context.Context, p *SummaryPayload) error
}

package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendBrokenItems logs and discards a broken-items alert.
func (n *NoOpNotifier) SendBrokenItems(_ context.Context, p *BrokenItemsPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"source", p.Source,
		"broken_items", len(p.Items),
	)
	return nil
}

// SendSummary logs and discards a digest.
func (n *NoOpNotifier) SendSummary(_ context.Context, p *SummaryPayload) error {
	n.log.Debug("digest discarded (no backend configured)",
		"low_stock", p.Summary.LowStock,
		"broken", p.Summary.Broken,
	)
	return nil
}

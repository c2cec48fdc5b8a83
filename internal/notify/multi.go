package notify

import (
	"context"
	"errors"
)

// Multi fans a notification out to every backend. All backends are tried;
// failures are joined.
type Multi []Notifier

// SendBrokenItems implements Notifier.
func (m Multi) SendBrokenItems(ctx context.Context, p *BrokenItemsPayload) error {
	var errs []error
	for _, n := range m {
		if err := n.SendBrokenItems(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendSummary implements Notifier.
func (m Multi) SendSummary(ctx context.Context, p *SummaryPayload) error {
	var errs []error
	for _, n := range m {
		if err := n.SendSummary(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

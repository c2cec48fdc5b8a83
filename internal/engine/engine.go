package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
	"github.com/donaldgifford/stock-tracker/internal/notify"
	"github.com/donaldgifford/stock-tracker/internal/store"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Engine runs the inventory operations: reconciliation, manual edits, import
// batches and alert aggregation. Every operation opens its own store session
// and closes it before returning.
type Engine struct {
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	rules              AlertRules
	brokenDisplayLimit int
}

// NewEngine creates a new Engine with injected dependencies. A nil notifier
// discards alerts.
func NewEngine(s store.Store, n notify.Notifier, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:              s,
		notifier:           n,
		log:                slog.Default(),
		rules:              DefaultAlertRules(),
		brokenDisplayLimit: notify.DefaultDisplayLimit,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.notifier == nil {
		eng.notifier = notify.NewNoOpNotifier(eng.log)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithLowStockThreshold sets the quantity below which rows are low stock.
// Non-positive values keep the default.
func WithLowStockThreshold(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.rules.LowStockThreshold = n
		}
	}
}

// WithBrokenDisplayLimit sets how many broken items a notification spells
// out.
func WithBrokenDisplayLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.brokenDisplayLimit = n
		}
	}
}

// Rules returns the alert rules in use.
func (eng *Engine) Rules() AlertRules {
	return eng.rules
}

// Listing is a row decorated with its alert bucket.
type Listing struct {
	domain.Equipment
	Alert domain.AlertBucket `json:"alert,omitempty"`
}

func (eng *Engine) withSession(ctx context.Context, fn func(store.Session) error) error {
	sess, err := eng.store.Open(ctx)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			eng.log.Warn("closing store session", "error", cerr)
		}
	}()
	return fn(sess)
}

// Reconcile applies the import merge rule to a single candidate.
func (eng *Engine) Reconcile(ctx context.Context, c Candidate) (*Outcome, error) {
	e, err := c.prepare()
	if err != nil {
		return nil, err
	}

	var out Outcome
	err = eng.withSession(ctx, func(sess store.Session) error {
		var rerr error
		out, rerr = reconcile(ctx, sess, e)
		if rerr != nil {
			return rerr
		}
		eng.refresh(ctx, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("reconcile").Inc()
	return &out, nil
}

// Add merges c into the row with the same name, type and status, or inserts
// it when there is none.
func (eng *Engine) Add(ctx context.Context, c Candidate) (*Outcome, error) {
	e, err := c.prepare()
	if err != nil {
		return nil, err
	}

	var out Outcome
	err = eng.withSession(ctx, func(sess store.Session) error {
		var merr error
		out, merr = mergeByKey(ctx, sess, e)
		if merr != nil {
			return merr
		}
		eng.refresh(ctx, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("add").Inc()
	eng.log.Info("equipment saved",
		"action", out.Action,
		"id", out.ID,
		"name", e.Name,
		"type", e.Type,
		"status", e.Status,
		"quantity", out.Quantity,
	)
	return &out, nil
}

// Modify overwrites every field of row id with c. It does not look for a
// merge-equivalent row, so it can leave two rows sharing a merge key.
func (eng *Engine) Modify(ctx context.Context, id int64, c Candidate) (*domain.Equipment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	e, err := c.prepare()
	if err != nil {
		return nil, err
	}
	e.ID = id

	err = eng.withSession(ctx, func(sess store.Session) error {
		if oerr := sess.Overwrite(ctx, &e); oerr != nil {
			return fmt.Errorf("modifying equipment %d: %w", id, oerr)
		}
		eng.refresh(ctx, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("modify").Inc()
	eng.log.Info("equipment modified", "id", id, "name", e.Name, "status", e.Status)
	return &e, nil
}

// Delete removes row id when confirmed is true. An unconfirmed delete is a
// no-op and reports false with a nil error.
func (eng *Engine) Delete(ctx context.Context, id int64, confirmed bool) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	if !confirmed {
		eng.log.Debug("delete not confirmed", "id", id)
		return false, nil
	}

	err := eng.withSession(ctx, func(sess store.Session) error {
		if derr := sess.Delete(ctx, id); derr != nil {
			return fmt.Errorf("deleting equipment %d: %w", id, derr)
		}
		eng.refresh(ctx, sess)
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.MutationsTotal.WithLabelValues("delete").Inc()
	eng.log.Info("equipment deleted", "id", id)
	return true, nil
}

// Get returns one row.
func (eng *Engine) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	var e *domain.Equipment
	err := eng.withSession(ctx, func(sess store.Session) error {
		var gerr error
		e, gerr = sess.Get(ctx, id)
		if gerr != nil {
			return fmt.Errorf("getting equipment %d: %w", id, gerr)
		}
		return nil
	})
	return e, err
}

// List returns the rows matching q, each tagged with its alert bucket.
func (eng *Engine) List(ctx context.Context, q *store.ListQuery) ([]Listing, error) {
	rows, err := eng.list(ctx, q)
	if err != nil {
		return nil, err
	}
	return eng.classify(rows), nil
}

// Alerts returns the rows that need attention: low quantity or broken.
func (eng *Engine) Alerts(ctx context.Context) ([]Listing, error) {
	rows, err := eng.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	return eng.classify(eng.rules.FilterAlertable(rows)), nil
}

// Summary aggregates the whole inventory.
func (eng *Engine) Summary(ctx context.Context) (domain.StockSummary, error) {
	rows, err := eng.list(ctx, nil)
	if err != nil {
		return domain.StockSummary{}, err
	}
	s := eng.rules.Aggregate(rows)
	eng.setGauges(s)
	return s, nil
}

// SendDigest sends the current summary and alert rows to the notifier. A
// healthy inventory sends nothing.
func (eng *Engine) SendDigest(ctx context.Context) error {
	rows, err := eng.list(ctx, nil)
	if err != nil {
		metrics.DigestRunsTotal.WithLabelValues("failed").Inc()
		return err
	}

	s := eng.rules.Aggregate(rows)
	eng.setGauges(s)
	if s.Healthy() {
		metrics.DigestRunsTotal.WithLabelValues("skipped").Inc()
		eng.log.Debug("digest skipped, nothing to report", "total", s.Total)
		return nil
	}

	payload := &notify.SummaryPayload{
		Summary:      s,
		Alerts:       eng.rules.FilterAlertable(rows),
		DisplayLimit: eng.brokenDisplayLimit,
	}
	if err := eng.notifier.SendSummary(ctx, payload); err != nil {
		metrics.DigestRunsTotal.WithLabelValues("failed").Inc()
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("sending digest: %w", err)
	}

	metrics.DigestRunsTotal.WithLabelValues("sent").Inc()
	metrics.NotificationsSentTotal.Inc()
	eng.log.Info("digest sent", "low_stock", s.LowStock, "broken", s.Broken)
	return nil
}

// Ping checks that a session can be opened.
func (eng *Engine) Ping(ctx context.Context) error {
	if err := eng.store.Ping(ctx); err != nil {
		return &ConnectivityError{Err: err}
	}
	return nil
}

func (eng *Engine) list(ctx context.Context, q *store.ListQuery) ([]domain.Equipment, error) {
	var rows []domain.Equipment
	err := eng.withSession(ctx, func(sess store.Session) error {
		var lerr error
		rows, lerr = sess.List(ctx, q)
		if lerr != nil {
			return fmt.Errorf("listing equipment: %w", lerr)
		}
		return nil
	})
	return rows, err
}

func (eng *Engine) classify(rows []domain.Equipment) []Listing {
	out := make([]Listing, len(rows))
	for i := range rows {
		out[i] = Listing{Equipment: rows[i], Alert: eng.rules.Classify(&rows[i])}
	}
	return out
}

// refresh re-derives the alert summary after a mutation. It only feeds
// gauges, so a failure is logged and not returned.
func (eng *Engine) refresh(ctx context.Context, sess store.Session) {
	rows, err := sess.List(ctx, nil)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			eng.log.Warn("refreshing stock summary", "error", err)
		}
		return
	}
	eng.setGauges(eng.rules.Aggregate(rows))
}

func (eng *Engine) setGauges(s domain.StockSummary) {
	metrics.EquipmentRows.Set(float64(s.Total))
	metrics.LowStockItems.Set(float64(s.LowStock))
	metrics.BrokenItems.Set(float64(s.Broken))
}

func (eng *Engine) notifyBroken(ctx context.Context, source string, items []domain.BrokenItem) {
	payload := &notify.BrokenItemsPayload{
		Source:       source,
		Items:        items,
		DisplayLimit: eng.brokenDisplayLimit,
	}
	if err := eng.notifier.SendBrokenItems(ctx, payload); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		eng.log.Error("broken items notification failed",
			"source", source,
			"items", len(items),
			"error", err,
		)
		return
	}
	metrics.NotificationsSentTotal.Inc()
}

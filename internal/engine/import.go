package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
	"github.com/donaldgifford/stock-tracker/internal/store"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Import column names, after header normalization.
const (
	ColumnName     = "nom"
	ColumnType     = "type"
	ColumnQuantity = "quantite"
	ColumnSupplier = "fournisseur"
	ColumnNote     = "remarque"
	ColumnStatus   = "statut"
)

// RequiredColumns must be present in every import source.
var RequiredColumns = []string{ColumnName, ColumnType, ColumnQuantity}

// ImportOptions tunes one import batch.
type ImportOptions struct {
	// SkipInvalidRows records rows with unusable data in the report and
	// carries on. By default the first such row stops the batch.
	SkipInvalidRows bool

	// Source names the input (usually a file name) in notifications.
	Source string
}

// SkippedRow is a row left out of a batch run with SkipInvalidRows.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportReport summarizes an import batch. On a failed batch it covers the
// rows committed before the failure.
type ImportReport struct {
	Processed   int                 `json:"processed"`
	Inserted    int                 `json:"inserted"`
	Merged      int                 `json:"merged"`
	BrokenItems []domain.BrokenItem `json:"broken_items"`
	Skipped     []SkippedRow        `json:"skipped,omitempty"`
}

func (r *ImportReport) record(o Outcome) {
	r.Processed++
	switch o.Action {
	case ActionMerged:
		r.Merged++
		metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeMerged).Inc()
	case ActionInserted:
		r.Inserted++
		metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeInserted).Inc()
	}
}

// Import reconciles rows in order. Every reconciled row is committed as it
// goes; there is no batch transaction. A row with unusable data returns the
// report so far with an *ImportRowError, unless opts.SkipInvalidRows is set.
// Store failures always stop the batch.
//
// After a successful batch that contained broken equipment the notifier is
// told; a notification failure is logged and does not fail the import.
func (eng *Engine) Import(
	ctx context.Context,
	rows []domain.ImportRow,
	opts ImportOptions,
) (*ImportReport, error) {
	start := time.Now()
	defer func() {
		metrics.ImportDuration.Observe(time.Since(start).Seconds())
	}()

	report := &ImportReport{BrokenItems: []domain.BrokenItem{}}

	err := eng.withSession(ctx, func(sess store.Session) error {
		defer eng.refresh(ctx, sess)
		return eng.importRows(ctx, sess, rows, opts, report)
	})

	if len(report.BrokenItems) > 0 {
		metrics.BrokenItemsImportedTotal.Add(float64(len(report.BrokenItems)))
	}

	if err != nil {
		metrics.ImportBatchesTotal.WithLabelValues("failed").Inc()
		eng.log.Warn("import stopped",
			"source", opts.Source,
			"processed", report.Processed,
			"error", err,
		)
		return report, err
	}

	metrics.ImportBatchesTotal.WithLabelValues("success").Inc()
	eng.log.Info("import complete",
		"source", opts.Source,
		"processed", report.Processed,
		"inserted", report.Inserted,
		"merged", report.Merged,
		"broken", len(report.BrokenItems),
		"skipped", len(report.Skipped),
	)

	if len(report.BrokenItems) > 0 {
		eng.notifyBroken(ctx, opts.Source, report.BrokenItems)
	}

	return report, nil
}

func (eng *Engine) importRows(
	ctx context.Context,
	sess store.Session,
	rows []domain.ImportRow,
	opts ImportOptions,
	report *ImportReport,
) error {
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := importRow(ctx, sess, &rows[i])
		if res.broken != nil {
			report.BrokenItems = append(report.BrokenItems, *res.broken)
		}

		var rowErr *ImportRowError
		switch {
		case errors.As(err, &rowErr) && opts.SkipInvalidRows:
			report.Skipped = append(report.Skipped, SkippedRow{Line: rowErr.Line, Reason: rowErr.Err.Error()})
			metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
			eng.log.Debug("import row skipped", "line", rowErr.Line, "error", rowErr.Err)
			continue
		case err != nil:
			metrics.ImportRowsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			return err
		}

		report.record(res.outcome)
	}
	return nil
}

// rowResult is what one import row produced. broken is set once the row's
// status is known to be broken, even if reconciliation then fails.
type rowResult struct {
	outcome Outcome
	broken  *domain.BrokenItem
}

func importRow(ctx context.Context, sess store.Session, row *domain.ImportRow) (rowResult, error) {
	c, err := parseRow(row)
	if err != nil {
		return rowResult{}, &ImportRowError{Line: row.Line, Err: err}
	}

	e, err := c.prepare()
	if err != nil {
		return rowResult{}, &ImportRowError{Line: row.Line, Err: err}
	}

	var res rowResult
	if e.Status == domain.StatusBroken {
		res.broken = &domain.BrokenItem{Name: e.Name, Type: e.Type}
	}

	res.outcome, err = reconcile(ctx, sess, e)
	var verr *ValidationError
	if errors.As(err, &verr) {
		return res, &ImportRowError{Line: row.Line, Err: err}
	}
	if err != nil {
		return res, fmt.Errorf("row %d: %w", row.Line, err)
	}
	return res, nil
}

// parseRow extracts a candidate from an import row. Name, type and quantity
// columns must be present; supplier, note and status default to empty.
func parseRow(row *domain.ImportRow) (Candidate, error) {
	var c Candidate

	for _, col := range RequiredColumns {
		if _, ok := row.Get(col); !ok {
			return c, &ValidationError{Field: col, Message: "is required"}
		}
	}

	c.Name, _ = row.Get(ColumnName)
	c.Type, _ = row.Get(ColumnType)
	c.Supplier, _ = row.Get(ColumnSupplier)
	c.Note, _ = row.Get(ColumnNote)
	c.Status, _ = row.Get(ColumnStatus)

	raw, _ := row.Get(ColumnQuantity)
	qty, err := ParseQuantity(raw)
	if err != nil {
		return c, err
	}
	c.Quantity = qty

	return c, nil
}

// ParseQuantity reads a spreadsheet quantity cell. Whole numbers are taken as
// is; decimal values are truncated toward zero. A comma is read as the decimal
// separator unless three digits follow it ("1,000"), which is thousands
// grouping and rejected. Empty, non-numeric and out-of-range cells are
// rejected.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &ValidationError{Field: ColumnQuantity, Message: "is required"}
	}
	notANumber := &ValidationError{Field: ColumnQuantity, Message: fmt.Sprintf("%q is not a number", raw)}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > MaxQuantity || n < -MaxQuantity {
			return 0, quantityOutOfRange(raw)
		}
		return int(n), nil
	}

	if whole, frac, ok := strings.Cut(s, ","); ok {
		if strings.ContainsAny(whole, ".,") || strings.Contains(frac, ",") || len(frac) == 3 {
			return 0, notANumber
		}
		s = whole + "." + frac
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, notANumber
	}
	if math.Abs(f) > MaxQuantity {
		return 0, quantityOutOfRange(raw)
	}

	return int(math.Trunc(f)), nil
}

func quantityOutOfRange(raw string) error {
	return &ValidationError{Field: ColumnQuantity, Message: fmt.Sprintf("%q exceeds %d", raw, MaxQuantity)}
}

// Package cli holds the terminal rendering shared by the stock-tracker and
// stockctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool {
	return f == FormatTable || f == FormatJSON
}

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// alertLabel is the ALERT column text.
func alertLabel(a domain.AlertBucket) string {
	switch a {
	case domain.AlertLowStock:
		return "LOW STOCK"
	case domain.AlertOutOfService:
		return "OUT OF SERVICE"
	default:
		return ""
	}
}

// PrintEquipmentTable writes one line per row.
func PrintEquipmentTable(w io.Writer, rows []engine.Listing) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tTYPE\tQTY\tSTATUS\tSUPPLIER\tALERT\n")
	for i := range rows {
		r := &rows[i]
		tw.writef("%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID,
			Truncate(r.Name, 40),
			r.Type,
			r.Quantity,
			r.Status,
			Truncate(r.Supplier, 24),
			alertLabel(r.Alert),
		)
	}
	return tw.finish()
}

// PrintEquipmentDetail writes every field of one row.
func PrintEquipmentDetail(w io.Writer, e *domain.Equipment) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", e.ID)
	tw.writef("Name:\t%s\n", e.Name)
	tw.writef("Type:\t%s\n", e.Type)
	tw.writef("Quantity:\t%d\n", e.Quantity)
	tw.writef("Status:\t%s\n", e.Status)
	tw.writef("Supplier:\t%s\n", e.Supplier)
	tw.writef("Note:\t%s\n", e.Note)
	return tw.finish()
}

// PrintSummary writes the aggregate alert state.
func PrintSummary(w io.Writer, s domain.StockSummary, threshold int) error {
	tw := newTabWriter(w)
	tw.writef("Rows:\t%d\n", s.Total)
	tw.writef("Low stock (< %d):\t%d\n", threshold, s.LowStock)
	tw.writef("Broken or in maintenance:\t%d\n", s.Broken)
	if s.Healthy() {
		tw.writef("State:\thealthy\n")
	} else {
		tw.writef("State:\tneeds attention\n")
	}
	return tw.finish()
}

// PrintOutcome reports a manual add.
func PrintOutcome(w io.Writer, o *engine.Outcome) error {
	var err error
	switch o.Action {
	case engine.ActionMerged:
		_, err = fmt.Fprintf(w, "Merged into row %d, quantity now %d.\n", o.ID, o.Quantity)
	default:
		_, err = fmt.Fprintf(w, "Inserted row %d with quantity %d.\n", o.ID, o.Quantity)
	}
	return err
}

// PrintImportReport writes the counts of a batch, then any skipped rows and
// broken items.
func PrintImportReport(w io.Writer, r *engine.ImportReport) error {
	tw := newTabWriter(w)
	tw.writef("Processed:\t%d\n", r.Processed)
	tw.writef("Inserted:\t%d\n", r.Inserted)
	tw.writef("Merged:\t%d\n", r.Merged)
	tw.writef("Broken items:\t%d\n", len(r.BrokenItems))
	tw.writef("Skipped:\t%d\n", len(r.Skipped))
	if err := tw.finish(); err != nil {
		return err
	}

	if len(r.Skipped) > 0 {
		tw = newTabWriter(w)
		tw.writef("\nLINE\tREASON\n")
		for _, s := range r.Skipped {
			tw.writef("%d\t%s\n", s.Line, s.Reason)
		}
		if err := tw.finish(); err != nil {
			return err
		}
	}

	if len(r.BrokenItems) > 0 {
		if _, err := fmt.Fprintln(w, "\nArrived broken:"); err != nil {
			return err
		}
		for _, b := range r.BrokenItems {
			if _, err := fmt.Fprintf(w, "  - %s\n", b); err != nil {
				return err
			}
		}
	}
	return nil
}

// OutputJSON writes v as indented JSON.
func OutputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Truncate shortens s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

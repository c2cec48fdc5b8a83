// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and only reference known metrics.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/stock-tracker/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are printed.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// histogramSuffixes are the series a histogram exports under its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses expr and checks the metric names it selects. where names the
// expression in messages.
func Expr(r *Result, where, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: %v", where, err)
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			r.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard validates every Prometheus target of every panel, including
// panels nested in rows.
func Dashboard(d dashboard.Dashboard, known map[string]bool) *Result {
	r := &Result{}

	for i, p := range d.Panels {
		switch {
		case p.Panel != nil:
			panel(r, p.Panel, known)
		case p.RowPanel != nil:
			if len(p.RowPanel.Panels) == 0 {
				r.warnf("row %d has no panels", i)
			}
			for j := range p.RowPanel.Panels {
				panel(r, &p.RowPanel.Panels[j], known)
			}
		}
	}

	return r
}

func panel(r *Result, p *dashboard.Panel, known map[string]bool) {
	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		r.warnf("panel %q has no targets", title)
	}

	for _, t := range p.Targets {
		q, ok := t.(*prometheus.Dataquery)
		if !ok {
			r.warnf("panel %q: skipping non-Prometheus target %T", title, t)
			continue
		}
		Expr(r, fmt.Sprintf("panel %q", title), q.Expr, known)
	}
}

// Rules validates every expression of a PrometheusRule CR. Recording rule
// names must themselves be known so dashboards can rely on them.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	r := &Result{}

	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Alert
			if rule.Record != "" {
				name = rule.Record
				if !known[rule.Record] {
					r.errorf("recording rule %q is not in the known metrics", rule.Record)
				}
			}
			Expr(r, fmt.Sprintf("%s/%s", g.Name, name), rule.Expr, known)
		}
	}

	return r
}

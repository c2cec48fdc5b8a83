package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "stock-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "stock-recording",
					Rules: []Rule{
						{
							Record: "stock:http_requests:rate5m",
							Expr:   `sum(rate(stock_http_requests_total[5m]))`,
						},
						{
							Record: "stock:http_errors:rate5m",
							Expr:   `sum(rate(stock_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "stock:import_rows:rate5m",
							Expr:   `sum by (outcome) (rate(stock_import_rows_total[5m]))`,
						},
						{
							Record: "stock:import_failed_batches:rate5m",
							Expr:   `sum(rate(stock_import_batches_total{result="failed"}[5m]))`,
						},
						{
							Record: "stock:notification_failures:rate5m",
							Expr:   `rate(stock_notification_failures_total[5m])`,
						},
						{
							Record: "stock:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(stock_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}

package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// stock-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "stock-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "stock-alerts",
					Rules: []Rule{
						{
							Alert: "StockTrackerDown",
							Expr:  `absent(up{job="stock-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Stock Tracker is down",
								"description": "The stock-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "StockReadinessDown",
							Expr:  `stock_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Stock Tracker cannot reach its database",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "StockHighErrorRate",
							Expr:  `stock:http_errors:rate5m / stock:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Stock Tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "StockImportFailures",
							Expr:  `increase(stock_import_batches_total{result="failed"}[1h]) > 2`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Repeated import failures",
								"description": "More than two import batches failed in the last hour. Check the import reports for the offending rows.",
							},
						},
						{
							Alert: "StockOutOfService",
							Expr:  `stock_broken_items > 0`,
							For:   "72h",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Equipment has been out of service for three days",
								"description": "Some stock rows have stayed broken or in maintenance for more than 72 hours.",
							},
						},
						{
							Alert: "StockLowStock",
							Expr:  `stock_low_stock_items > 0`,
							For:   "24h",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Equipment is low on stock",
								"description": "Some functional rows have been below the low-stock threshold for more than a day.",
							},
						},
						{
							Alert: "StockNotificationFailures",
							Expr:  `increase(stock_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more notifications (Discord webhook or SendGrid e-mail) have failed to send.",
							},
						},
						{
							Alert: "StockDigestFailing",
							Expr:  `increase(stock_digest_runs_total{result="failed"}[1d]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Scheduled stock digest failed",
								"description": "A scheduled digest could not be built or delivered in the last day.",
							},
						},
					},
				},
			},
		},
	}
}

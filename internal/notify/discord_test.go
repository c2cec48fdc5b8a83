package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func unlimited() DiscordOption {
	return WithRateLimiter(rate.NewLimiter(rate.Inf, 1))
}

func TestDiscordNotifier_SendBrokenItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		items      int
		statusCode int
		wantErr    bool
		errMsg     string
		wantMore   bool
	}{
		{
			name:       "few items are all listed",
			items:      3,
			statusCode: http.StatusNoContent,
		},
		{
			name:       "more than ten items are truncated",
			items:      14,
			statusCode: http.StatusNoContent,
			wantMore:   true,
		},
		{
			name:       "discord returns 429 rate limited",
			items:      1,
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			items:      1,
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				_ = json.NewDecoder(r.Body).Decode(&received)
				w.WriteHeader(tt.statusCode)
				if tt.statusCode >= 400 {
					_, _ = w.Write([]byte(`{"message": "error"}`))
				}
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, unlimited())
			err := d.SendBrokenItems(context.Background(), &BrokenItemsPayload{
				Source: "stock.xlsx",
				Items:  brokenItems(tt.items),
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, "Broken equipment imported from stock.xlsx", embed.Title)
			assert.Equal(t, colorRed, embed.Color)
			assert.Contains(t, embed.Description, "- Routeur 1 (Cisco)")
			if tt.wantMore {
				assert.Contains(t, embed.Description, "... and 4 more")
				assert.NotContains(t, embed.Description, "Routeur 11")
			} else {
				assert.NotContains(t, embed.Description, "more")
			}
		})
	}
}

func TestDiscordNotifier_SendSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		summary   domain.StockSummary
		wantColor int
	}{
		{name: "broken is red", summary: domain.StockSummary{Broken: 1, LowStock: 4, Total: 9}, wantColor: colorRed},
		{name: "low stock is orange", summary: domain.StockSummary{LowStock: 2, Total: 9}, wantColor: colorOrange},
		{name: "healthy is green", summary: domain.StockSummary{Total: 9}, wantColor: colorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&received)
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, unlimited())
			require.NoError(t, d.SendSummary(context.Background(), &SummaryPayload{Summary: tt.summary}))

			require.Len(t, received.Embeds, 1)
			assert.Equal(t, "Stock digest", received.Embeds[0].Title)
			assert.Equal(t, tt.wantColor, received.Embeds[0].Color)
			require.Len(t, received.Embeds[0].Fields, 3)
		})
	}
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url", unlimited())
	err := d.SendBrokenItems(context.Background(), &BrokenItemsPayload{Items: brokenItems(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestDiscordNotifier_RateLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDiscordNotifier("http://127.0.0.1:0", WithRateLimiter(limiter))
	err := d.SendSummary(ctx, &SummaryPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendBrokenItems_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL, unlimited())
	require.NoError(t, d.SendBrokenItems(context.Background(), &BrokenItemsPayload{Items: brokenItems(1)}))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

const (
	colorRed    = 0xE74C3C // broken items
	colorOrange = 0xE67E22 // low stock only
	colorGreen  = 0x2ECC71 // healthy
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewDiscordNotifier creates a new DiscordNotifier. Posts are paced at one
// every two seconds with a burst of five, under Discord's webhook limit.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithRateLimiter replaces the webhook pacing limiter.
func WithRateLimiter(l *rate.Limiter) DiscordOption {
	return func(d *DiscordNotifier) {
		d.limiter = l
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendBrokenItems posts the broken items as a single embed listing the
// first DisplayLimit items.
func (d *DiscordNotifier) SendBrokenItems(ctx context.Context, p *BrokenItemsPayload) error {
	embed := discordEmbed{
		Title:       p.Title(),
		Color:       colorRed,
		Description: strings.Join(p.Lines(), "\n"),
		Fields: []discordEmbedField{
			{Name: "Items", Value: strconv.Itoa(len(p.Items)), Inline: true},
			{Name: "Recorded as", Value: string(domain.StatusBroken), Inline: true},
		},
	}

	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

// SendSummary posts the stock digest as a single embed.
func (d *DiscordNotifier) SendSummary(ctx context.Context, p *SummaryPayload) error {
	embed := discordEmbed{
		Title:       "Stock digest",
		Color:       summaryColor(p.Summary),
		Description: strings.Join(p.Lines(), "\n"),
		Fields: []discordEmbedField{
			{Name: "Rows", Value: strconv.Itoa(p.Summary.Total), Inline: true},
			{Name: "Low stock", Value: strconv.Itoa(p.Summary.LowStock), Inline: true},
			{Name: "Broken", Value: strconv.Itoa(p.Summary.Broken), Inline: true},
		},
	}

	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

func summaryColor(s domain.StockSummary) int {
	switch {
	case s.Broken > 0:
		return colorRed
	case s.LowStock > 0:
		return colorOrange
	default:
		return colorGreen
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for discord rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

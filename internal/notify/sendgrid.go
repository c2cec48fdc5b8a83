package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
	senderName       = "Stock Tracker"
)

// EmailNotifier implements Notifier by sending plain-text mail through the
// SendGrid v3 API.
type EmailNotifier struct {
	apiKey string
	from   string
	to     []string
	host   string
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithSendGridHost points the notifier at another API host. Used by tests.
func WithSendGridHost(host string) EmailOption {
	return func(n *EmailNotifier) {
		n.host = host
	}
}

// NewEmailNotifier creates an EmailNotifier sending from one address to one
// or more recipients.
func NewEmailNotifier(apiKey, from string, to []string, opts ...EmailOption) *EmailNotifier {
	n := &EmailNotifier{
		apiKey: apiKey,
		from:   from,
		to:     to,
		host:   sendGridHost,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendBrokenItems mails the broken-items alert.
func (n *EmailNotifier) SendBrokenItems(ctx context.Context, p *BrokenItemsPayload) error {
	return n.send(ctx, "[stock] "+p.Title(), p.Text())
}

// SendSummary mails the stock digest.
func (n *EmailNotifier) SendSummary(ctx context.Context, p *SummaryPayload) error {
	subject := fmt.Sprintf("[stock] digest: %d low stock, %d broken", p.Summary.LowStock, p.Summary.Broken)
	return n.send(ctx, subject, p.Text())
}

func (n *EmailNotifier) send(ctx context.Context, subject, body string) error {
	if n.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if n.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if len(n.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	request := sendgrid.GetRequest(n.apiKey, sendGridEndpoint, n.host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(n.message(subject, body))

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}

	return nil
}

func (n *EmailNotifier) message(subject, body string) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(senderName, n.from))
	m.Subject = subject

	personalization := mail.NewPersonalization()
	for _, addr := range n.to {
		personalization.AddTos(mail.NewEmail("", addr))
	}
	m.AddPersonalizations(personalization)
	m.AddContent(mail.NewContent("text/plain", body))

	return m
}

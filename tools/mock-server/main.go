// Package main implements a mock notification sink for local development.
// It accepts Discord webhook posts and SendGrid mail sends, logs them, and
// lists what it received so notifications can be checked without real
// credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

type discordPayload struct {
	Embeds []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"embeds"`
}

type sendGridPayload struct {
	Subject          string `json:"subject"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// message is one notification received by the mock.
type message struct {
	Channel    string    `json:"channel"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Recipients []string  `json:"recipients,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// inbox keeps received messages in arrival order.
type inbox struct {
	mu       sync.Mutex
	messages []message
}

func (b *inbox) add(m message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
}

func (b *inbox) list() []message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]message(nil), b.messages...)
}

func (b *inbox) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	discordStatus := flag.Int("discord-status", http.StatusNoContent, "status returned to webhook posts (429 to test rate limiting)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock notification server", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost%s/webhook", addr),
		"sendgrid_host", fmt.Sprintf("http://localhost%s", addr),
	)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, &inbox{}, *discordStatus)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, box *inbox, discordStatus int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", webhookHandler(logger, box, discordStatus))
	mux.HandleFunc("POST /v3/mail/send", sendGridHandler(logger, box))
	mux.HandleFunc("GET /messages", messagesHandler(box))
	mux.HandleFunc("DELETE /messages", resetHandler(box))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func webhookHandler(logger *slog.Logger, box *inbox, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p discordPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || len(p.Embeds) == 0 {
			logger.Warn("invalid webhook payload", "error", err)
			http.Error(w, `{"message":"Cannot send an empty message","code":50006}`, http.StatusBadRequest)
			return
		}

		if status == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(status)
			return
		}

		for _, e := range p.Embeds {
			box.add(message{
				Channel:    "discord",
				Title:      e.Title,
				Body:       e.Description,
				ReceivedAt: time.Now(),
			})
			logger.Info("discord embed", "title", e.Title, "lines", strings.Count(e.Description, "\n")+1)
		}
		w.WriteHeader(status)
	}
}

func sendGridHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate the bearer token is present (don't verify it).
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			logger.Warn("mail send missing bearer token")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]string{{"message": "The provided authorization grant is invalid, expired, or revoked"}},
			})
			return
		}

		var p sendGridPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		m := message{Channel: "email", Title: p.Subject, ReceivedAt: time.Now()}
		for _, pers := range p.Personalizations {
			for _, to := range pers.To {
				m.Recipients = append(m.Recipients, to.Email)
			}
		}
		for _, c := range p.Content {
			if c.Type == "text/plain" {
				m.Body = c.Value
			}
		}
		box.add(m)

		logger.Info("mail", "subject", m.Title, "to", m.Recipients)
		w.WriteHeader(http.StatusAccepted)
	}
}

func messagesHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		msgs := box.list()
		if msgs == nil {
			msgs = []message{}
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(msgs)
	}
}

func resetHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		box.reset()
		w.WriteHeader(http.StatusNoContent)
	}
}

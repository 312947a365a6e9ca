// Package contact relays storefront contact-form submissions to the external
// contact API — the one real network call the storefront makes — and builds
// the WhatsApp deep link offered as a fallback channel.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/yourusername/docemila/configs"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// Relay posts contact messages to the configured endpoint.
type Relay struct {
	cfg    configs.ContactConfig
	client *http.Client
	logger *zap.Logger
}

// NewRelay creates a relay with its own timeout-bounded HTTP client.
func NewRelay(cfg configs.ContactConfig, logger *zap.Logger) *Relay {
	return &Relay{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// upstreamMessage is the wire shape the external contact API accepts: Portuguese
// keys, with the subject and phone folded into the message text.
type upstreamMessage struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Mensagem string `json:"mensagem"`
}

// Send posts the message to the external endpoint in its expected shape.
// Any non-2xx response is reported as ErrRelayFailed.
func (r *Relay) Send(ctx context.Context, req model.ContactRequest) error {
	body, err := json.Marshal(upstreamMessage{
		Nome:     req.Name,
		Email:    req.Email,
		Mensagem: fmt.Sprintf("[Assunto: %s] - %s (Tel: %s)", req.Subject, req.Message, req.Phone),
	})
	if err != nil {
		return fmt.Errorf("failed to encode contact message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "contact endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("contact relay rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("endpoint", r.cfg.Endpoint))
		return fmt.Errorf("%w: status %d", errors.ErrRelayFailed, resp.StatusCode)
	}

	r.logger.Info("contact message relayed", zap.String("email", req.Email))
	return nil
}

// WhatsAppURL builds the wa.me deep link carrying the message text, used by
// the storefront as the direct-contact fallback.
func (r *Relay) WhatsAppURL(req model.ContactRequest) string {
	text := fmt.Sprintf("*NOVO CONTATO* 🚀\n\n*Nome:* %s\n*Assunto:* %s\n*Mensagem:* %s",
		req.Name, req.Subject, req.Message)
	return fmt.Sprintf("https://wa.me/%s?text=%s", r.cfg.WhatsAppNumber, url.QueryEscape(text))
}

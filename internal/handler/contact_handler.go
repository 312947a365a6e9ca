package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/docemila/internal/contact"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/model"
)

// ContactHandler serves the contact-form relay route.
type ContactHandler struct {
	relay   *contact.Relay
	metrics *metrics.Metrics
}

// NewContactHandler creates a contact handler over the given relay.
func NewContactHandler(relay *contact.Relay, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{relay: relay, metrics: m}
}

// Send handles POST /api/contact. The message is forwarded to the external
// contact API; the response also carries the WhatsApp fallback link the
// storefront offers when the relay is down.
func (h *ContactHandler) Send(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.relay.Send(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "failed to deliver message",
			"whatsapp_url": h.relay.WhatsAppURL(req),
		})
		return
	}

	h.metrics.RecordContactRelay()
	c.JSON(http.StatusOK, gin.H{
		"message":      "mensagem enviada com sucesso",
		"whatsapp_url": h.relay.WhatsAppURL(req),
	})
}

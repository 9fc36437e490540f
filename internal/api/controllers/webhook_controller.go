package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"influhub/internal/payments"
	"influhub/internal/services"
	"influhub/pkg/logging"
)

const signatureHeader = "Payment-Signature"

type WebhookController struct {
	webhookService services.WebhookServiceInterface
	webhookSecret  string
}

func NewWebhookController(webhookService services.WebhookServiceInterface, webhookSecret string) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
		webhookSecret:  webhookSecret,
	}
}

// HandlePaymentEvent verifies and dispatches a processor webhook. The
// body must be read raw; any re-serialization would break the
// signature check.
func (w *WebhookController) HandlePaymentEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	event, err := payments.ConstructEvent(payload, c.GetHeader(signatureHeader), w.webhookSecret)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) || errors.Is(err, payments.ErrStaleTimestamp) {
			logging.L().Warn("webhook signature rejected", logging.Err(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	if err := w.webhookService.ProcessEvent(c.Request.Context(), &event); err != nil {
		// A non-2xx tells the processor to redeliver later.
		logging.L().Error("webhook processing failed",
			zap.String("event_id", event.ID), zap.String("type", string(event.Type)), logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

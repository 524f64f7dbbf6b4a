package webhook

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"mergebot/internal/event"
	"mergebot/pkg/response"
)

// HandleGitHub receives a GitHub webhook delivery, validates it, parses
// it into a typed event, and dispatches it synchronously. The provider
// retries on non-2xx, so transient failures surface as 5xx and lookup
// misses as 404.
// @Summary Receive GitHub webhook
// @Description Validates and dispatches a GitHub webhook delivery
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "GitHub event type"
// @Param X-Hub-Signature-256 header string true "HMAC-SHA256 payload signature"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /webhook/github [post]
func (h *Handler) HandleGitHub(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHub: %v", err)
		response.Unauthorized(c)
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHub: %v", err)
		response.Error(c, err, nil)
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHub: failed to read body: %v", err)
		response.Error(c, fmt.Errorf("failed to read request body"), nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateGitHubSignature(payload, signature); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHub: %v", err)
		response.Unauthorized(c)
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")
	deliveryID := c.GetHeader("X-GitHub-Delivery")

	ev, known, err := h.parser.Parse(eventType, payload)
	if err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHub: delivery %s: %v", deliveryID, err)
		response.Error(c, err, nil)
		return
	}
	if !known {
		h.l.Debugf(ctx, "webhook.HandleGitHub: ignoring event type %q (delivery %s)", eventType, deliveryID)
		response.OK(c, gin.H{"status": "ignored"})
		return
	}

	if err := h.uc.Handle(ctx, ev); err != nil {
		switch {
		case errors.Is(err, event.ErrInstallationNotFound),
			errors.Is(err, event.ErrProjectNotFound),
			errors.Is(err, event.ErrPatchNotFound):
			h.l.Warnf(ctx, "webhook.HandleGitHub: delivery %s: %v", deliveryID, err)
			response.NotFound(c, err)
		default:
			h.l.Errorf(ctx, "webhook.HandleGitHub: delivery %s: %v", deliveryID, err)
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, gin.H{"status": "processed"})
}

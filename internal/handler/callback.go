package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jazzypay/internal/repository"
	"jazzypay/internal/service"
)

// CallbackHandler handles the browser redirect the processor issues after
// payment completes or is abandoned. The response is either a single 3xx
// redirect or an empty body; nothing else is ever emitted to this caller.
type CallbackHandler struct {
	checkoutService *service.CheckoutService
	logger          *zap.SugaredLogger
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(checkoutService *service.CheckoutService, logger *zap.SugaredLogger) *CallbackHandler {
	return &CallbackHandler{checkoutService: checkoutService, logger: logger}
}

// HandleCallback handles GET /callback
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	cb := service.Callback{
		Gateway: c.Query("gateway"),
		OrderID: c.Query("order_id"),
		Status:  c.Query("status"),
	}

	redirectURL, err := h.checkoutService.HandleCallback(c.Request.Context(), cb)
	switch {
	case errors.Is(err, service.ErrMalformedCallback):
		// Intentionally ignored rather than surfaced: the processor owns
		// the redirect contract and a guessed error page would break it.
		h.logger.Warnw("ignoring malformed payment callback",
			"order_id", cb.OrderID,
			"status", cb.Status,
			"gateway", cb.Gateway,
		)
		c.Status(http.StatusOK)
		return

	case errors.Is(err, repository.ErrNotFound):
		h.logger.Warnw("payment callback for unknown order", "order_id", cb.OrderID)
		c.Status(http.StatusOK)
		return

	case err != nil:
		h.logger.Errorw("payment callback failed",
			"order_id", cb.OrderID,
			"status", cb.Status,
			"error", err,
		)
		c.Status(http.StatusInternalServerError)
		return
	}

	if redirectURL == "" {
		// Unrecognized status: no transition, no redirect.
		c.Status(http.StatusOK)
		return
	}

	c.Redirect(http.StatusFound, redirectURL)
}

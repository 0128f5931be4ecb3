package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jazzypay/internal/service"
)

// CheckoutHandler handles HTTP requests for payment initiation.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// InitiateRequest is the HTTP request body for initiating a payment.
type InitiateRequest struct {
	OrderID string `json:"order_id"`
}

// InitiateResponse is the HTTP response for a successful initiation. The
// storefront redirects the buyer's browser to RedirectURL.
type InitiateResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// Initiate handles POST /v1/checkout
func (h *CheckoutHandler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_id is required"})
		return
	}

	redirectURL, err := h.checkoutService.Initiate(c.Request.Context(), req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, InitiateResponse{RedirectURL: redirectURL})
}

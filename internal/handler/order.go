package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jazzypay/internal/repository"
	"jazzypay/internal/service"
)

// OrderHandler handles HTTP requests for order state the storefront polls.
type OrderHandler struct {
	orders        repository.OrderRepository
	noticeService *service.NoticeService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders repository.OrderRepository, noticeService *service.NoticeService) *OrderHandler {
	return &OrderHandler{orders: orders, noticeService: noticeService}
}

// OrderResponse is the HTTP response for order lookups.
type OrderResponse struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
}

// NoticeResponse is a buyer-visible notice pending for an order.
type NoticeResponse struct {
	ID      string `json:"id"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, OrderResponse{
		ID:       order.ID,
		Currency: order.Currency,
		Total:    order.Total,
		Status:   string(order.Status),
	})
}

// GetNotices handles GET /v1/orders/:id/notices
//
// Draining is destructive: the storefront renders each notice once.
func (h *OrderHandler) GetNotices(c *gin.Context) {
	notices, err := h.noticeService.Pending(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]NoticeResponse, 0, len(notices))
	for _, n := range notices {
		resp = append(resp, NoticeResponse{ID: n.ID, Level: n.Level, Message: n.Message})
	}

	respondJSON(c, http.StatusOK, resp)
}

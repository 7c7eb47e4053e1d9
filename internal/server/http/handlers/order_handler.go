package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints. It needs the restaurant
// facade too: order detail access is granted to the customer or to staff of
// the restaurant the order sits at.
type OrderHandler struct {
	facade OrderingFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderingFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/restaurants/:id/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: order.ID})
}

// Transition handles POST /api/orders/:id/status: the customer-facing,
// unscoped form.
func (h *OrderHandler) Transition(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.transition(c, nil, orderID)
}

// ScopedTransition handles POST /api/restaurants/:id/orders/:order/status:
// the staff-facing form, where the restaurant id scopes the order lookup.
func (h *OrderHandler) ScopedTransition(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	orderID, ok := pathID(c, "order")
	if !ok {
		return
	}
	h.transition(c, &restaurantID, orderID)
}

func (h *OrderHandler) transition(c *gin.Context, restaurantScope *int64, orderID int64) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	target := model.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	err := h.facade.TransitionOrder(c.Request.Context(), CurrentUser(c), restaurantScope, orderID, target)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// ModifyItem handles POST /api/orders/:id/items/:item. Only the customer may
// edit their cart.
func (h *OrderHandler) ModifyItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	var req dto.ModifyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.facade.OrderCustomer(c.Request.Context(), orderID)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	if customer != CurrentUser(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}

	if err := h.facade.ModifyItemQuantity(c.Request.Context(), orderID, itemID, req.Delta); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// History handles GET /api/orders.
func (h *OrderHandler) History(c *gin.Context) {
	summaries, err := h.facade.OrderHistory(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	response := make([]dto.OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, dto.OrderSummaryResponse{
			OrderResponse:  toOrderResponse(summary.Order),
			RestaurantName: summary.RestaurantName,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/orders/:id.
func (h *OrderHandler) Detail(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.facade.OrderDetail(c.Request.Context(), orderID)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	viewer := CurrentUser(c)
	if detail.Customer != viewer {
		employed, err := h.facade.IsEmployee(c.Request.Context(), detail.RestaurantID, viewer)
		if err != nil {
			respondRefusal(c, h.logger, err)
			return
		}
		if !employed {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
			return
		}
	}

	response := dto.OrderDetailResponse{
		OrderResponse:  toOrderResponse(detail.Order),
		RestaurantName: detail.RestaurantName,
		Lines:          make([]dto.OrderLineResponse, 0, len(detail.Lines)),
	}
	pending := detail.Status == model.OrderStatusPending
	for _, line := range detail.Lines {
		out := dto.OrderLineResponse{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
		}
		if pending {
			out.Price = formatCents(line.PriceCents)
		}
		response.Lines = append(response.Lines, out)
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:           order.ID,
		RestaurantID: order.RestaurantID,
		Customer:     order.Customer,
		Status:       string(order.Status),
		Address:      order.Address,
		CreatedAt:    order.CreatedAt,
	}
	if order.Status != model.OrderStatusPending {
		response.Total = formatCents(order.TotalCents)
	}
	return response
}

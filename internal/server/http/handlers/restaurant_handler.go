package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/server/http/dto"
	"github.com/servery/servery/internal/usecase"
)

// RestaurantHandler manages restaurant, staff, and menu endpoints.
type RestaurantHandler struct {
	facade RestaurantFacade
	logger *slog.Logger
}

// NewRestaurantHandler constructs RestaurantHandler.
func NewRestaurantHandler(facade RestaurantFacade, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{facade: facade, logger: logger}
}

// List handles GET /api/restaurants.
func (h *RestaurantHandler) List(c *gin.Context) {
	restaurants, err := h.facade.Restaurants(c.Request.Context())
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	response := make([]dto.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		response = append(response, toRestaurantResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/restaurants.
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name, err := usecase.ValidateRestaurantName(req.Name)
	if err != nil {
		badRequest(c, err)
		return
	}

	restaurant, err := h.facade.CreateRestaurant(c.Request.Context(), CurrentUser(c), name)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: restaurant.ID})
}

// Detail handles GET /api/restaurants/:id. The viewer is resolved by the
// optional auth middleware; anonymous viewers get the public sections only.
func (h *RestaurantHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.facade.RestaurantDetail(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}

	response := dto.RestaurantDetailResponse{
		ID:        detail.Restaurant.ID,
		Name:      detail.Restaurant.Name,
		Owner:     detail.Restaurant.Owner,
		Menu:      make([]dto.MenuItemResponse, 0, len(detail.Menu)),
		Employees: detail.Employees,
	}
	for _, item := range detail.Menu {
		response.Menu = append(response.Menu, toMenuItemResponse(item))
	}
	for _, order := range detail.ActiveOrders {
		response.ActiveOrders = append(response.ActiveOrders, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, response)
}

// Rename handles PUT /api/restaurants/:id.
func (h *RestaurantHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	name, err := usecase.ValidateRestaurantName(req.Name)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.facade.RenameRestaurant(c.Request.Context(), CurrentUser(c), id, name); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /api/restaurants/:id.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteRestaurant(c.Request.Context(), CurrentUser(c), id); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// AddEmployee handles POST /api/restaurants/:id/employees.
func (h *RestaurantHandler) AddEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	username, err := usecase.ValidateUsername(req.Username)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.facade.AddEmployee(c.Request.Context(), CurrentUser(c), id, username); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// RemoveEmployee handles DELETE /api/restaurants/:id/employees/:user.
func (h *RestaurantHandler) RemoveEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.RemoveEmployee(c.Request.Context(), CurrentUser(c), id, c.Param("user")); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// AddMenuItem handles POST /api/restaurants/:id/menu.
func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	name, priceCents, ok := h.bindMenuItem(c)
	if !ok {
		return
	}

	item, err := h.facade.AddMenuItem(c.Request.Context(), CurrentUser(c), id, name, priceCents)
	if err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toMenuItemResponse(*item))
}

// UpdateMenuItem handles PUT /api/restaurants/:id/menu/:item.
func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	name, priceCents, ok := h.bindMenuItem(c)
	if !ok {
		return
	}

	if err := h.facade.UpdateMenuItem(c.Request.Context(), CurrentUser(c), id, itemID, name, priceCents); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteMenuItem handles DELETE /api/restaurants/:id/menu/:item.
func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	if err := h.facade.DeleteMenuItem(c.Request.Context(), CurrentUser(c), id, itemID); err != nil {
		respondRefusal(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *RestaurantHandler) bindMenuItem(c *gin.Context) (string, int64, bool) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", 0, false
	}
	name, err := usecase.ValidateMenuItemName(req.Name)
	if err != nil {
		badRequest(c, err)
		return "", 0, false
	}
	priceCents, err := usecase.ParsePrice(req.Price)
	if err != nil {
		badRequest(c, err)
		return "", 0, false
	}
	return name, priceCents, true
}

func toRestaurantResponse(r model.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{ID: r.ID, Name: r.Name, Owner: r.Owner}
}

func toMenuItemResponse(item model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{ID: item.ID, Name: item.Name, Price: formatCents(item.PriceCents)}
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/service"
)

// InventoryHandler handles pantry item requests
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler instance
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
	}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/inventory")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.POST("/bulk", h.CreateBulk)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}

type inventoryItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	CategoryID  *string  `json:"category_id"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	IsAvailable *bool    `json:"is_available"`
	IsStaple    bool     `json:"is_staple"`
}

func (r *inventoryItemRequest) toModel(userID uuid.UUID) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		UserID:      userID,
		Name:        r.Name,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		IsAvailable: true,
		IsStaple:    r.IsStaple,
	}
	if r.IsAvailable != nil {
		item.IsAvailable = *r.IsAvailable
	}
	if r.CategoryID != nil {
		categoryID, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = &categoryID
	}
	return item, nil
}

// List returns the user's pantry.
func (h *InventoryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.inventory.ListItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create adds one pantry item.
func (h *InventoryHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := req.toModel(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	created, err := h.inventory.CreateItem(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": created})
}

// CreateBulk adds many pantry items at once, used after a confirmed
// receipt scan.
func (h *InventoryHandler) CreateBulk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Items []inventoryItemRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items := make([]models.InventoryItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := itemReq.toModel(userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		items = append(items, *item)
	}

	created, err := h.inventory.CreateItems(c.Request.Context(), items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create items"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": created})
}

// Update replaces an item's editable fields.
func (h *InventoryHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := req.toModel(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	item.ID = itemID

	updated, err := h.inventory.UpdateItem(c.Request.Context(), userID, item)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": updated})
}

// Delete removes an item.
func (h *InventoryHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.inventory.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.Status(http.StatusNoContent)
}

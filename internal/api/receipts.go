package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/types"
)

// ReceiptHandler handles receipt scanning requests
type ReceiptHandler struct {
	llm       service.LLMProvider
	usage     service.UsageLimiter
	images    service.ReceiptImageStore
	inventory *service.InventoryService
}

// NewReceiptHandler creates a new ReceiptHandler instance
func NewReceiptHandler(llm service.LLMProvider, usage service.UsageLimiter, images service.ReceiptImageStore, inventory *service.InventoryService) *ReceiptHandler {
	return &ReceiptHandler{
		llm:       llm,
		usage:     usage,
		images:    images,
		inventory: inventory,
	}
}

// RegisterRoutes registers the receipt routes
func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	receipts := router.Group("/receipts")
	{
		receipts.POST("/scan", h.Scan)
		receipts.GET("/image-url", h.ImageURL)
	}
}

// ImageURL returns a temporary view URL for a stored receipt image. The
// key must belong to the requesting user.
func (h *ReceiptHandler) ImageURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key := c.Query("key")
	if !strings.HasPrefix(key, fmt.Sprintf("receipts/%s/", userID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "key does not belong to user"})
		return
	}

	url, err := h.images.PresignReceiptImage(c.Request.Context(), key)
	if err != nil {
		log.Printf("Presign failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to presign receipt image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type scanReceiptRequest struct {
	// Image is a base64 data URL of the photographed receipt. Either Image
	// or ImageURL must be set.
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
}

type scanReceiptResponse struct {
	Items   []types.ReceiptItem           `json:"items"`
	Matches []types.IngredientMatchResult `json:"matches"`
	Usage   types.RateLimitStatus         `json:"usage"`
}

// Scan runs the receipt flow: quota check, image upload, vision extraction,
// inventory matching, then the usage increment. The increment happens only
// after the LLM call succeeds so a failed scan is never billed.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req scanReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Image == "" && req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image or image_url is required"})
		return
	}

	ctx := c.Request.Context()

	status, err := h.usage.CheckRateLimit(ctx, userID, types.FeatureReceiptScan)
	if err != nil {
		log.Printf("Rate limit check failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check usage limit"})
		return
	}
	if !status.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "daily receipt scan limit exceeded",
			"used":      status.Used,
			"limit":     status.Limit,
			"remaining": status.Remaining,
		})
		return
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL, err = h.images.UploadReceiptImage(ctx, userID, req.Image)
		if err != nil {
			log.Printf("Receipt image upload failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store receipt image"})
			return
		}
	}

	items, err := h.llm.ScanReceipt(ctx, imageURL)
	if err != nil {
		log.Printf("Receipt scan failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "receipt scanning failed"})
		return
	}

	inventory, err := h.inventory.ListForMatching(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return
	}

	ingredients := make([]types.RecipeIngredient, 0, len(items))
	for _, item := range items {
		ingredients = append(ingredients, types.RecipeIngredient{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}
	matches := service.MatchIngredients(ingredients, inventory)

	used, err := h.usage.IncrementUsage(ctx, userID, types.FeatureReceiptScan)
	if err != nil {
		// The scan already happened; surface the accounting failure rather
		// than handing out an unmetered result.
		log.Printf("Usage increment failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record usage"})
		return
	}

	remaining := status.Limit - used
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, scanReceiptResponse{
		Items:   items,
		Matches: matches,
		Usage: types.RateLimitStatus{
			Allowed:   used < status.Limit,
			Used:      used,
			Limit:     status.Limit,
			Remaining: remaining,
		},
	})
}

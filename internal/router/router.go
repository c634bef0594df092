package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spizarnia/backend/internal/api"
	"github.com/spizarnia/backend/internal/middleware"
)

// Handlers bundles the route handlers wired by SetupRouter.
type Handlers struct {
	Auth          *api.AuthHandler
	Profile       *api.ProfileHandler
	Inventory     *api.InventoryHandler
	Receipts      *api.ReceiptHandler
	Substitutions *api.SubstitutionHandler
	Recipes       *api.RecipeHandler
	Usage         *api.UsageHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, aiBurst *middleware.BurstLimiter) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		h.Profile.RegisterRoutes(protected)
		h.Inventory.RegisterRoutes(protected)
		h.Recipes.RegisterRoutes(protected)
		h.Usage.RegisterRoutes(protected)

		// AI routes get a short-window limiter on top of the daily quota.
		ai := protected.Group("")
		if aiBurst != nil {
			ai.Use(aiBurst.Middleware())
		}
		h.Receipts.RegisterRoutes(ai)
		h.Substitutions.RegisterRoutes(ai)
	}

	return router
}

package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spizarnia/backend/config"
	"github.com/spizarnia/backend/internal/api"
	"github.com/spizarnia/backend/internal/database"
	"github.com/spizarnia/backend/internal/middleware"
	"github.com/spizarnia/backend/internal/router"
	"github.com/spizarnia/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
}

// New wires the database, Redis, S3 and services into a ready-to-start
// server.
func New(cfg *config.Config) (*Server, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The burst limiter fails open without Redis, so the server can
		// still come up. The daily quota in the database keeps gating.
		log.Printf("redis unavailable, burst limiting disabled: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		return nil, err
	}

	llm, err := service.NewLLMService(cfg)
	if err != nil {
		return nil, err
	}

	auth := service.NewAuthService(db, cfg.JWTSecret)
	profiles := service.NewProfileService(db)
	inventory := service.NewInventoryService(db)
	recipes := service.NewRecipeService(db)
	usage := service.NewUsageService(db, cfg.RateLimits)
	warnings := service.NewWarningGenerator()
	images := service.NewImageService(s3Config)

	handlers := router.Handlers{
		Auth:          api.NewAuthHandler(auth),
		Profile:       api.NewProfileHandler(profiles),
		Inventory:     api.NewInventoryHandler(inventory),
		Receipts:      api.NewReceiptHandler(llm, usage, images, inventory),
		Substitutions: api.NewSubstitutionHandler(llm, usage, inventory, profiles, warnings),
		Recipes:       api.NewRecipeHandler(llm, recipes, inventory, profiles, warnings),
		Usage:         api.NewUsageHandler(usage),
	}

	var aiBurst *middleware.BurstLimiter
	if redisClient != nil {
		aiBurst = middleware.NewAIBurstLimiter(redisClient)
	}

	engine := router.SetupRouter(handlers, auth, aiBurst)

	return &Server{
		cfg:    cfg,
		engine: engine,
	}, nil
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

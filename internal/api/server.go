package api

import (
	"fmt"
	"log"
	"net/http"

	"carebook/internal/cache"
	"carebook/internal/config"
	"carebook/internal/database"
	"carebook/internal/external"
	"carebook/internal/handlers"
	"carebook/internal/messaging"
	"carebook/internal/middleware"
	"carebook/internal/repository"
	"carebook/internal/search"
	"carebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server
type Server struct {
	router         *gin.Engine
	config         *config.Config
	db             *database.DB
	nats           *messaging.NATSClient
	valkey         *cache.ValkeyClient
	services       *service.Services
	checkoutClient *external.CheckoutClient
}

// NewServer wires up storage, messaging and external clients
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	// Cache and search are best effort; the API works without them
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		log.Printf("Valkey unavailable, catalog cache disabled: %v", err)
		valkeyClient = nil
	}

	var searchIndex service.SearchIndex
	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		log.Printf("Elasticsearch unavailable, catalog search disabled: %v", err)
	} else {
		searchIndex = esClient
	}

	checkoutClient := external.NewCheckoutClient(cfg.Checkout)

	repos := repository.NewRepositories(db)

	services := service.NewServices(
		repos.Bookings, repos.Services, repos.Users,
		checkoutClient, natsClient, searchIndex, cfg.AppURL)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:         router,
		config:         cfg,
		db:             db,
		nats:           natsClient,
		valkey:         valkeyClient,
		services:       services,
		checkoutClient: checkoutClient,
	}

	server.setupRoutes()

	return server
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)
	ph := handlers.NewPaymentHandlers(h, s.checkoutClient)

	authRequired := middleware.Auth(s.config.AuthSecret)

	api := s.router.Group("/api")
	{
		// Public catalog endpoints
		services := api.Group("/services")
		{
			services.GET("", h.ListServices)
			services.GET("/:id", h.GetService)
			services.POST("", authRequired, middleware.RequireAdmin(), h.CreateService)
		}

		// Bookings endpoints, all tied to the verified caller
		bookings := api.Group("/bookings")
		bookings.Use(authRequired)
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.PATCH("/:id/cancel", h.CancelBooking)
		}

		// Checkout and reconciliation
		api.POST("/checkout", authRequired, ph.InitiateCheckout)

		payments := api.Group("/payments")
		{
			payments.POST("/verify", authRequired, ph.VerifyPayment)
			// Signed webhook from the processor, no bearer token
			payments.POST("/notifications", ph.OnPaymentUpdates)
		}

		// Users
		api.GET("/users/role", authRequired, h.GetUserRole)
		api.POST("/admin/promote", authRequired, middleware.RequireAdmin(), h.PromoteUser)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck reports service and database health
func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "carebook-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			log.Printf("Error closing Valkey connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}

// main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"gorm.io/gorm"

	"github.com/rambilabs/rambi-api/auth"
	"github.com/rambilabs/rambi-api/cache"
	"github.com/rambilabs/rambi-api/gallery"
	"github.com/rambilabs/rambi-api/generate"
	"github.com/rambilabs/rambi-api/internal/config"
	"github.com/rambilabs/rambi-api/internal/platform"
	"github.com/rambilabs/rambi-api/processing"
	"github.com/rambilabs/rambi-api/store"
	"github.com/rambilabs/rambi-api/tmdb"
	"github.com/rambilabs/rambi-api/validations"
)

type Server struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
	Gen    *processing.Service
}

func NewServer() *Server {
	cfg := config.Load()

	// Use the shared connection initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	// The model client is built once and injected everywhere; there is no
	// per-request client state.
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	client := openai.NewClient(opts...)

	var descriptions *cache.Descriptions
	if cfg.UseCache {
		descriptions = cache.NewDescriptions(rdb, cfg.CacheTTL)
		log.Println("Poster description cache enabled")
	}

	server := &Server{
		Cfg:    cfg,
		DB:     db,
		Redis:  rdb,
		Router: gin.Default(),
		Gen:    processing.NewService(client, descriptions),
	}
	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Health check (no auth required)
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Rambi Movie Mashup API v1"})
	})

	movieStore := store.NewMovies(s.DB)
	validationStore := store.NewValidations(s.DB)
	tmdbClient := tmdb.NewClient(s.Cfg.TMDBEndpoint, s.Cfg.SubscriptionKey)

	authHandler := auth.NewHandler(s.Cfg.SubscriptionKey)
	galleryHandler := gallery.NewHandler(movieStore, validationStore, s.Redis)
	validationHandler := validations.NewHandler(validationStore, s.Gen)
	generateHandler := generate.NewHandler(tmdbClient, s.Gen, movieStore, s.Redis)

	// Auth routes (public)
	s.Router.POST("/auth/token", authHandler.IssueToken)

	// Read surfaces are public
	s.Router.GET("/movies", galleryHandler.ListMovies)
	s.Router.GET("/movies/:id", galleryHandler.GetMovie)
	s.Router.GET("/validations", validationHandler.ListValidations)
	s.Router.GET("/validations/:movie_id", validationHandler.GetValidation)
	s.Router.GET("/posters/describe/:title", generateHandler.DescribePoster)

	// Mutating routes require a bearer token
	protected := s.Router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/movies/generate", generateHandler.GenerateMovie)
		protected.POST("/movies", galleryHandler.AddMovie)
		protected.DELETE("/movies/:id", galleryHandler.DeleteMovie)
		protected.POST("/validate", validationHandler.Validate)
		protected.DELETE("/validations/:movie_id", validationHandler.DeleteValidation)
	}
}

func main() {
	server := NewServer()
	log.Printf("API listening on %s", server.Cfg.Addr())
	if err := server.Router.Run(server.Cfg.Addr()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/e-signature-api/internal/config"
	"github.com/yukikurage/e-signature-api/internal/database"
	"github.com/yukikurage/e-signature-api/internal/handlers"
	"github.com/yukikurage/e-signature-api/internal/logger"
	"github.com/yukikurage/e-signature-api/internal/middleware"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/services"
	"github.com/yukikurage/e-signature-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	log := logger.New(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatal().Err(err).Msg("failed to add indexes")
		}
	}

	// Artifact store
	store := storage.NewStore(cfg.UploadDir, log)

	// Repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	docRepo := repository.NewDocumentRepository(database.GetDB())
	sigRepo := repository.NewSignatureRepository(database.GetDB())
	signedRepo := repository.NewSignedDocumentRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo, store, cfg.JWTSecret, cfg.TokenLifetime)
	documentService := services.NewDocumentService(docRepo, store, cfg)
	signatureService := services.NewSignatureService(sigRepo, store)
	signingService := services.NewSigningService(docRepo, sigRepo, signedRepo, store, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	signatureHandler := handlers.NewSignatureHandler(signatureService)
	signedHandler := handlers.NewSignedDocumentHandler(signingService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "E-Signature API is running",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.DELETE("/me", requireAuth, authHandler.DeleteAccount)
		}

		// Document routes (protected)
		documents := api.Group("/documents")
		documents.Use(requireAuth)
		{
			documents.POST("/upload", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.GET("/:id", documentHandler.Get)
			documents.GET("/:id/download", documentHandler.Download)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		// Signature routes (protected)
		signatures := api.Group("/signatures")
		signatures.Use(requireAuth)
		{
			signatures.POST("", signatureHandler.Create)
			signatures.GET("", signatureHandler.List)
			signatures.GET("/:id", signatureHandler.Get)
			signatures.DELETE("/:id", signatureHandler.Delete)
		}

		// Signed document routes (protected)
		signed := api.Group("/signed")
		signed.Use(requireAuth)
		{
			signed.POST("/apply", signedHandler.Apply)
			signed.GET("/:id", signedHandler.Get)
			signed.GET("/:id/download", signedHandler.Download)
			signed.GET("/document/:id", signedHandler.ListVersions)
		}
	}

	// Start server
	log.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

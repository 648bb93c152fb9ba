package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tinymath/internal/config"
	"tinymath/internal/database"
	"tinymath/internal/handlers"
	"tinymath/internal/repository"
	"tinymath/internal/security"
	"tinymath/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize collaborators
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	tokenSigner := security.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, emailService, tokenSigner, cfg.Policy)
	accountService := service.NewAccountService(userRepo)
	childService := service.NewChildService(childRepo, userRepo)

	// Initialize handlers
	middleware := handlers.NewMiddleware(security.NewRateLimiter(10, time.Minute))
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	childHandler := handlers.NewChildHandler(childService)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Health)

	// Auth routes
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /verify-email", middleware.RateLimit(authHandler.VerifyEmail))
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /resend-code", middleware.RateLimit(authHandler.ResendCode))
	mux.HandleFunc("POST /forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Account routes
	mux.HandleFunc("GET /user/{id}", accountHandler.GetUser)
	mux.HandleFunc("PUT /update-profile", accountHandler.UpdateProfile)
	mux.HandleFunc("PUT /update-progress", accountHandler.UpdateProgress)

	// Child profile routes
	mux.HandleFunc("POST /add-child", childHandler.AddChild)
	mux.HandleFunc("GET /children/{parentId}", childHandler.GetChildren)
	mux.HandleFunc("PUT /update-child-progress", childHandler.UpdateChildProgress)
	mux.HandleFunc("DELETE /child/{id}", childHandler.DeleteChild)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewnet-backend/internal/config"
	"brewnet-backend/internal/handlers"
	"brewnet-backend/internal/middleware"
	"brewnet-backend/internal/repository"
	"brewnet-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from database")
		}
	}()

	// Test database connection
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	beerRepo := repository.NewBeerRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(
		tokenRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.AccessTTL),
		time.Duration(cfg.JWT.RefreshTTL),
	)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	beerService := services.NewBeerService(beerRepo)
	locationService := services.NewLocationService(locationRepo)
	postService := services.NewPostService(postRepo, commentRepo)
	mediaService, err := services.NewMediaService(
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	beerHandler := handlers.NewBeerHandler(beerService)
	locationHandler := handlers.NewLocationHandler(locationService)
	postHandler := handlers.NewPostHandler(postService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password/{token}", authHandler.ResetPassword)

		r.Get("/beers", beerHandler.List)
		r.Get("/beers/search", beerHandler.Search)
		r.Get("/beers/top-rated", beerHandler.TopRated)
		r.Get("/beers/new", beerHandler.Newest)
		r.Get("/beers/{id}", beerHandler.Get)

		r.Get("/locations", locationHandler.List)
		r.Get("/locations/search", locationHandler.Search)
		r.Get("/locations/top-rated", locationHandler.TopRated)
		r.Get("/locations/{id}", locationHandler.Get)

		r.Get("/posts", postHandler.List)
		r.Get("/posts/{id}", postHandler.Get)
		r.Get("/posts/{id}/comments", postHandler.Comments)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Put("/auth/credentials", authHandler.UpdateCredentials)

			r.Get("/users", userHandler.List)
			r.Put("/users/profile", userHandler.UpdateProfile)
			r.Get("/users/{id}", userHandler.Get)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Post("/users/{id}/follow", userHandler.Follow)
			r.Delete("/users/{id}/follow", userHandler.Unfollow)
			r.Get("/users/{id}/followers", userHandler.Followers)
			r.Get("/users/{id}/following", userHandler.Following)

			r.Post("/beers", beerHandler.Create)
			r.Put("/beers/{id}", beerHandler.Update)
			r.Delete("/beers/{id}", beerHandler.Delete)
			r.Post("/beers/{id}/like", beerHandler.Like)
			r.Delete("/beers/{id}/like", beerHandler.Unlike)
			r.Post("/beers/{id}/rate", beerHandler.Rate)
			r.Post("/beers/{id}/reviews", beerHandler.AddReview)
			r.Put("/beers/{id}/reviews/{reviewId}", beerHandler.EditReview)
			r.Delete("/beers/{id}/reviews/{reviewId}", beerHandler.DeleteReview)
			r.Post("/beers/{id}/reviews/{reviewId}/like", beerHandler.LikeReview)
			r.Post("/beers/{id}/reviews/{reviewId}/replies", beerHandler.AddReply)
			r.Post("/beers/{id}/reviews/{reviewId}/replies/{replyId}/like", beerHandler.LikeReply)

			r.Post("/locations", locationHandler.Create)
			r.Put("/locations/{id}", locationHandler.Update)
			r.Delete("/locations/{id}", locationHandler.Delete)
			r.Post("/locations/{id}/comments", locationHandler.AddComment)
			r.Put("/locations/{id}/comments/{commentId}", locationHandler.EditComment)
			r.Delete("/locations/{id}/comments/{commentId}", locationHandler.DeleteComment)
			r.Post("/locations/{id}/favorite", locationHandler.ToggleFavorite)

			r.Post("/posts", postHandler.Create)
			r.Put("/posts/{id}", postHandler.Update)
			r.Delete("/posts/{id}", postHandler.Delete)
			r.Post("/posts/{id}/reactions", postHandler.React)
			r.Delete("/posts/{id}/reactions", postHandler.Unreact)
			r.Post("/posts/{id}/visit", postHandler.Visit)
			r.Post("/posts/{id}/comments", postHandler.AddComment)

			r.Post("/media/upload-url", mediaHandler.UploadURL)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/beers/beer-of-day", beerHandler.BeerOfDay)
			})
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Periodically drop revocation entries for tokens that already expired
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := tokenRepo.PurgeExpired(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to purge expired tokens")
			}
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

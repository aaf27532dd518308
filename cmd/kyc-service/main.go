package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kycflow/kycflow-backend/internal/auth/blacklist"
	authhandler "github.com/kycflow/kycflow-backend/internal/auth/handler"
	"github.com/kycflow/kycflow-backend/internal/auth/jwt"
	authmw "github.com/kycflow/kycflow-backend/internal/auth/middleware"
	authservice "github.com/kycflow/kycflow-backend/internal/auth/service"
	identityhandler "github.com/kycflow/kycflow-backend/internal/identity/handler"
	"github.com/kycflow/kycflow-backend/internal/identity/repository"
	identityservice "github.com/kycflow/kycflow-backend/internal/identity/service"
	"github.com/kycflow/kycflow-backend/internal/notify"
	"github.com/kycflow/kycflow-backend/internal/storage"
	"github.com/kycflow/kycflow-backend/internal/verification/extract"
	verificationhandler "github.com/kycflow/kycflow-backend/internal/verification/handler"
	"github.com/kycflow/kycflow-backend/internal/verification/matcher"
	verificationservice "github.com/kycflow/kycflow-backend/internal/verification/service"
	"github.com/kycflow/kycflow-backend/pkg/config"
	"github.com/kycflow/kycflow-backend/pkg/database"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
	"github.com/kycflow/kycflow-backend/pkg/logger"
	"github.com/kycflow/kycflow-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("kyc-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("kyc-service", cfg.Server.Environment)
	log.Info().Msg("starting KYC Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeKYCEvents, "kyc-service", log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Token revocation list
	tokenBlacklist := blacklist.NewRedisBlacklist(cfg.Redis)
	defer tokenBlacklist.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Object store for documents and profile photos
	objectStore, err := storage.NewMinioStore(startupCtx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object store")
	}

	// Document analysis and face detection providers
	awsCfg, err := awsconfig.LoadDefaultConfig(startupCtx,
		awsconfig.WithRegion(cfg.AWS.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, "")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS config")
	}
	analyzer := extract.NewTextractAnalyzer(textract.NewFromConfig(awsCfg))
	detector := extract.NewRekognitionDetector(rekognition.NewFromConfig(awsCfg))

	// Outbound mail
	mailer, err := notify.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)

	// Services
	jwtManager := jwt.NewManager(&cfg.JWT)
	authSvc := authservice.New(userRepo, jwtManager, tokenBlacklist, log)
	identitySvc := identityservice.New(userRepo, objectStore, publisher, log)
	verificationSvc := verificationservice.New(
		userRepo,
		extract.NewTextExtractor(analyzer),
		extract.NewFaceExtractor(detector),
		matcher.New(cfg.Verification.MatchThreshold),
		objectStore,
		mailer,
		publisher,
		log,
	)

	// Handlers
	authHandler := authhandler.NewHandler(authSvc, log)
	identityHandler := identityhandler.NewHandler(identitySvc, cfg.Verification.MaxUploadBytes, log)
	verificationHandler := verificationhandler.NewHandler(verificationSvc, cfg.Verification.MaxUploadBytes, log)

	// Create router
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "kyc-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/signup", identityHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authmw.Authenticate(jwtManager))

			r.Post("/logout", authHandler.Logout)
			r.Get("/user-profile", identityHandler.Profile)
			r.Get("/kyc-status", identityHandler.KYCStatus)
			r.Post("/upload-document", verificationHandler.UploadDocument)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAdmin())

				r.Get("/admin/users", identityHandler.ListUsers)
				r.Post("/admin/approve-kyc/{userID}", identityHandler.ApproveKYC)
				r.Post("/admin/reject-kyc/{userID}", identityHandler.RejectKYC)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

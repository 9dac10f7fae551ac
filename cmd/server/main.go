package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "github.com/ice-solution/bniwedding-application/internal/api/http"
	"github.com/ice-solution/bniwedding-application/internal/classifier"
	"github.com/ice-solution/bniwedding-application/internal/config"
	"github.com/ice-solution/bniwedding-application/internal/jobs"
	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/mirror"
	"github.com/ice-solution/bniwedding-application/internal/repository/postgres"
	"github.com/ice-solution/bniwedding-application/internal/scheduler"
	"github.com/ice-solution/bniwedding-application/internal/security"
	"github.com/ice-solution/bniwedding-application/internal/service"
	"github.com/ice-solution/bniwedding-application/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BNI Wedding member registration backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.TokenExpiryHours)*time.Hour,
	)

	ctx := context.Background()

	// Initialize Storage
	var fileStorage storage.Storage
	var fallback storage.Storage
	var staticDir string

	switch cfg.Storage.Type {
	case "", "local":
		logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
		local, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		fileStorage = local
		staticDir = local.Root()
	case "gcs":
		logger.Info("Using cloud storage", "bucket", cfg.Storage.Bucket)
		gcsStorage, err := storage.NewGCSStorage(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize cloud storage", "error", err)
			log.Fatalf("Failed to initialize cloud storage: %v", err)
		}
		fileStorage = gcsStorage

		if cfg.Storage.LocalFallback {
			local, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
			if err != nil {
				logger.Error("Failed to initialize fallback storage", "error", err)
				log.Fatalf("Failed to initialize fallback storage: %v", err)
			}
			fallback = local
			staticDir = local.Root()
		}
	}

	// Initialize Notifier
	var notifier service.Notifier
	if cfg.SendGrid.APIKey != "" {
		notifier = service.NewSendGridNotifier(
			cfg.SendGrid.APIKey,
			cfg.SendGrid.FromEmail,
			cfg.SendGrid.FromName,
			cfg.Admin.NotificationEmail,
		)
		logger.Info("Admin notifications enabled", "to", cfg.Admin.NotificationEmail)
	} else {
		logger.Warn("SendGrid API key not configured, admin notifications disabled")
	}

	// Initialize Sheet Mirror
	var sheetMirror service.SubmissionMirror
	if cfg.Google.SpreadsheetID != "" {
		m, err := mirror.NewSheetMirror(ctx, cfg.Google.CredentialsFile, cfg.Google.SpreadsheetID)
		if err != nil {
			logger.Error("Failed to initialize sheet mirror", "error", err)
			log.Fatalf("Failed to initialize sheet mirror: %v", err)
		}
		sheetMirror = m
		logger.Info("Sheet mirroring enabled", "spreadsheet_id", cfg.Google.SpreadsheetID)
	} else {
		logger.Warn("Spreadsheet ID not configured, sheet mirroring disabled")
	}

	// Initialize Classifier
	var categoryClassifier classifier.Classifier
	if cfg.Classifier.Endpoint != "" {
		categoryClassifier = classifier.NewLLMClassifier(
			cfg.Classifier.Endpoint,
			cfg.Classifier.APIKey,
			cfg.Classifier.Model,
		)
		logger.Info("Category analysis enabled", "model", cfg.Classifier.Model)
	} else {
		logger.Warn("Classifier endpoint not configured, category analysis disabled")
	}

	// Initialize Services
	memberSvc := service.NewMemberService(store.MemberRepository, notifier, sheetMirror)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Members:   httpapi.NewMemberHandler(memberSvc, categoryClassifier),
		Uploads:   httpapi.NewUploadHandler(fileStorage, fallback, cfg.Storage.MaxFileSizeMB<<20),
		Auth:      httpapi.NewAuthHandler(cfg.Admin.Email, cfg.Admin.PasswordHash, tokenManager),
		Admin:     httpapi.NewAuthMiddleware(tokenManager),
		StaticDir: staticDir,
	})

	// Initialize Scheduler for the nightly roster export
	if cfg.Google.DriveFolderID != "" {
		uploader, err := mirror.NewDriveUploader(ctx, cfg.Google.CredentialsFile, cfg.Google.DriveFolderID)
		if err != nil {
			logger.Error("Failed to initialize drive uploader", "error", err)
			log.Fatalf("Failed to initialize drive uploader: %v", err)
		}
		jobRunner := jobs.NewJobRunner(store.MemberRepository, uploader, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
		logger.Info("Roster export scheduled", "cron", cfg.Scheduler.ExportRoster)
	} else {
		logger.Warn("Drive folder ID not configured, roster export disabled")
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

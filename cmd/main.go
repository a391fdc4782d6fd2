// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_vocab_art/internal/config"
	"go_vocab_art/internal/handlers"
	"go_vocab_art/internal/middleware"
	"go_vocab_art/internal/model"
	"go_vocab_art/internal/repository"
	"go_vocab_art/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar) // 動的に変更可能なレベル変数
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. Dependency Injection
	repo := repository.NewGormScopeWordRepository()

	detailsProvider := service.NewOpenAIDetailsProvider(service.OpenAIDetailsConfig{
		APIKey:  config.Cfg.OpenAI.APIKey,
		Model:   config.Cfg.OpenAI.Model,
		BaseURL: config.Cfg.OpenAI.BaseURL,
	})
	imageBackend := service.NewComfyBackend(config.Cfg.ComfyUI.BaseURL, nil)
	imageStore := service.NewS3ImageStore(&config.Cfg)

	enrichmentService := service.NewEnrichmentService(db, repo, detailsProvider, imageBackend, imageStore, service.PollingPolicy{
		Attempts: uint(config.Cfg.Polling.Attempts),
		Interval: time.Duration(config.Cfg.Polling.IntervalMs) * time.Millisecond,
	})

	examHandler := handlers.NewScopeWordHandler(enrichmentService, model.ScopeTypeExam, "exam", logger)
	gradeHandler := handlers.NewScopeWordHandler(enrichmentService, model.ScopeTypeGrade, "grade", logger)
	subjectHandler := handlers.NewScopeWordHandler(enrichmentService, model.ScopeTypeSubject, "subject", logger)
	globalHandler := handlers.NewGlobalWordHandler(enrichmentService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	// 割り当てバッチは画像生成完了を数分ポーリングするため、タイムアウトは分単位で確保する
	r.Use(chimiddleware.Timeout(time.Duration(config.Cfg.Server.RequestTimeoutMin) * time.Minute))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/exams", func(r chi.Router) {
			r.Post("/upload", examHandler.UploadWords)
			r.Post("/assign", examHandler.AssignImages)
			r.Get("/", examHandler.GetWords)
		})
		r.Route("/grades", func(r chi.Router) {
			r.Post("/upload", gradeHandler.UploadWords)
			r.Post("/assign", gradeHandler.AssignImages)
			r.Get("/", gradeHandler.GetWords)
		})
		r.Route("/subjects", func(r chi.Router) {
			r.Post("/upload", subjectHandler.UploadWords)
			r.Post("/assign", subjectHandler.AssignImages)
			r.Get("/", subjectHandler.GetWords)
		})
		r.Route("/words", func(r chi.Router) {
			r.Post("/upload", globalHandler.UploadWords)
			r.Post("/images", globalHandler.AssignImages)
			r.Get("/", globalHandler.GetWords)
			r.Delete("/", globalHandler.DeleteWord)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:        config.Cfg.Server.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

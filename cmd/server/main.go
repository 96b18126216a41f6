package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/config"
	areaH "github.com/pharmatrack/stock-service/internal/area/handler"
	areaRepoPkg "github.com/pharmatrack/stock-service/internal/area/repository"
	areaUCPkg "github.com/pharmatrack/stock-service/internal/area/usecase"
	"github.com/pharmatrack/stock-service/internal/database"
	"github.com/pharmatrack/stock-service/internal/logger"
	"github.com/pharmatrack/stock-service/internal/metrics"
	movRepoPkg "github.com/pharmatrack/stock-service/internal/movement/repository"
	movUCPkg "github.com/pharmatrack/stock-service/internal/movement/usecase"
	scanH "github.com/pharmatrack/stock-service/internal/scan/handler"
	scanListenerPkg "github.com/pharmatrack/stock-service/internal/scan/listener"
	scanSessionPkg "github.com/pharmatrack/stock-service/internal/scan/session"
	tagRepoPkg "github.com/pharmatrack/stock-service/internal/tag/repository"
	tagResolverPkg "github.com/pharmatrack/stock-service/internal/tag/resolver"
	"github.com/pharmatrack/stock-service/internal/webhook"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.Connect(cfg.Sqlite)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Could not run migrations", zap.Error(err))
	}
	appLogger.Info("Connected to SQLite database", zap.String("dsn", cfg.Sqlite.DSN))

	// 4. Initialize Metrics
	reg := metrics.NewRegistry()

	// 5. Initialize Repositories
	tagRepo := tagRepoPkg.NewSqliteRepository(db)
	movRepo := movRepoPkg.NewSqliteRepository(db)
	areaRepo := areaRepoPkg.NewSqliteRepository(db)

	// 6. Initialize Webhook Dispatcher
	var dispatcher webhook.Dispatcher
	if cfg.Webhook.Endpoint != "" {
		dispatcher = webhook.NewHTTPDispatcher(cfg.Webhook.Endpoint, cfg.Webhook.Secret, cfg.Webhook.Timeout, appLogger)
		appLogger.Info("Webhook dispatcher enabled", zap.String("endpoint", cfg.Webhook.Endpoint))
	} else {
		appLogger.Info("Webhook dispatcher disabled (no endpoint configured)")
	}

	// 7. Initialize UseCases
	resolver := tagResolverPkg.NewTagResolver(tagRepo, appLogger)
	movUC := movUCPkg.NewMovementUseCase(movRepo, dispatcher, reg, appLogger)
	areaUC := areaUCPkg.NewAreaUseCase(areaRepo, appLogger)

	// 8. Initialize Scan Sessions
	sessions := scanSessionPkg.NewManager(resolver, movUC, reg, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8.5 Initialize Scan Feed Listener
	if cfg.Kafka.Enabled {
		scanListener := scanListenerPkg.NewScanListener(cfg.Kafka, sessions, appLogger)
		defer scanListener.Close()
		appLogger.Info("Scan feed listener enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
		go scanListener.Start(ctx)
	}

	// 9. Initialize Handlers and Router
	scanHandler := scanH.NewScanHandler(sessions, movUC, appLogger)
	areaHandler := areaH.NewAreaHandler(areaUC, appLogger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", reg.Handler())
	r.Mount("/", scanHandler.Routes())
	r.Mount("/areas", areaHandler.Routes())

	// 10. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{Addr: port, Handler: r}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/docs"
	"github.com/fkhayef/warikan/internal/calculation"
	"github.com/fkhayef/warikan/internal/config"
	"github.com/fkhayef/warikan/internal/database"
	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/logging"
	"github.com/fkhayef/warikan/internal/override"
	"github.com/fkhayef/warikan/internal/roster"
	mw "github.com/fkhayef/warikan/pkg/middleware"
)

// @title        Warikan API
// @version      1.0
// @description  Role-weighted bill splitting with rounded shares.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("driver", string(db.Dialect())))

	solverOpts, err := cfg.Solver.SolverOptions()
	if err != nil {
		logger.Fatal("Invalid solver configuration", zap.Error(err))
	}
	weights := solverOpts.Weights
	if weights == nil {
		weights = fairshare.DefaultWeights()
	}

	matchMode, err := override.ParseMatchMode(cfg.OverrideMatchMode)
	if err != nil {
		logger.Fatal("Invalid override configuration", zap.Error(err))
	}

	// Override rule feature
	overrideRepo := override.NewRepository(db)
	overrideService := override.NewService(overrideRepo, override.NewMatcher(matchMode), logger.Named("override"))
	overrideHandler := override.NewHandler(overrideService)

	// Roster feature
	rosterRepo := roster.NewRepository(db)
	rosterService := roster.NewService(rosterRepo, weights)
	rosterHandler := roster.NewHandler(rosterService)

	// Calculation feature (rosters and override rules injected)
	calculationRepo := calculation.NewRepository(db)
	calculationService, err := calculation.NewService(
		calculationRepo,
		solverOpts,
		rosterService,
		overrideService,
		calculation.Defaults{
			RoundingUnit: cfg.Solver.RoundingUnit,
			MaxRounds:    cfg.Solver.MaxRounds,
		},
		logger.Named("calculation"),
	)
	if err != nil {
		logger.Fatal("Failed to initialize calculation service", zap.Error(err))
	}
	calculationHandler := calculation.NewHandler(calculationService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	docs.SwaggerInfo.Host = ""
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/overrides", overrideHandler.Routes())
		r.Mount("/rosters", rosterHandler.Routes())
		r.Mount("/calculations", calculationHandler.Routes())
		r.Get("/roles", calculationHandler.Roles)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

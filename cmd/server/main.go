package main

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/adapters/cache"
	"delivery-zone-service/internal/adapters/repositories"
	"delivery-zone-service/internal/adapters/storedir"
	"delivery-zone-service/internal/api"
	"delivery-zone-service/internal/config"
	"delivery-zone-service/internal/platform/db"
	"delivery-zone-service/internal/platform/metrics"
	platformredis "delivery-zone-service/internal/platform/redis"
	"delivery-zone-service/internal/ports"
	"delivery-zone-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (SQL, HTTP directory, Redis) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	database, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	// Initialize schema and seed demo stores on startup for local runs.
	if err := initAndSeed(ctx, database, cfg.SeedPath); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repo := repositories.NewSQLStoreRepository(database)

	rdb, err := platformredis.Open(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	directory, err := buildDirectory(cfg, repo, rdb, m)
	if err != nil {
		return err
	}

	sessions, err := services.NewSessionRegistry(services.RegistryConfig{
		Zone:         cfg.Zone,
		Directory:    directory,
		FetchTimeout: cfg.StoreFetchTimeout,
		IdleTTL:      cfg.SessionIdleTTL,
		Metrics:      m,
	})
	if err != nil {
		return err
	}
	defer sessions.Close()

	router := api.NewRouter(api.RouterConfig{
		Stores:        repo,
		Sessions:      sessions,
		Metrics:       m,
		Gatherer:      reg,
		AllowedOrigin: cfg.CORSAllowedOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sessions.RunSweeper(gctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildDirectory picks where sessions load their store pins from: the remote
// directory when a base URL is configured, else the local repository.
// A Redis cache is layered on top of the remote directory when available.
func buildDirectory(
	cfg *config.Config,
	repo *repositories.SQLStoreRepository,
	rdb *goredis.Client,
	m *metrics.Metrics,
) (ports.StoreDirectory, error) {
	if cfg.StoreDirectoryBaseURL == "" {
		log.Println("STORE_DIRECTORY_BASE_URL not set; sessions read the local store repository")
		return repo, nil
	}

	remote, err := storedir.NewHTTPStoreDirectory(
		cfg.StoreDirectoryBaseURL,
		storedir.WithHTTPClient(&http.Client{Timeout: cfg.StoreFetchTimeout}),
	)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		return remote, nil
	}

	return cache.NewRedisStoreCache(rdb, remote, remote.BaseURL(), cfg.StoreCacheTTL, m)
}

func initAndSeed(ctx context.Context, database *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file %q not found; skipping seed", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, database, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

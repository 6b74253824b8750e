package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/eventnudges/internal/cache"
	"github.com/geocoder89/eventnudges/internal/config"
	"github.com/geocoder89/eventnudges/internal/db"
	httpx "github.com/geocoder89/eventnudges/internal/http"
	"github.com/geocoder89/eventnudges/internal/http/handlers"
	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/geocoder89/eventnudges/internal/repo/cached"
	"github.com/geocoder89/eventnudges/internal/repo/memory"
	mongorepo "github.com/geocoder89/eventnudges/internal/repo/mongo"
	"github.com/geocoder89/eventnudges/internal/uploads"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env, cfg.ServiceName)
	slog.SetDefault(log)

	if cfg.TracingEnabled() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Env:         cfg.Env,
			SampleRatio: cfg.TraceSampleRatio,
		})
		cancel()
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps := httpx.Deps{Prom: prom, Gatherer: reg}

	// wire up repositories
	var events handlers.EventsStore

	switch cfg.Store {
	case config.StoreMemory:
		eventsRepo := memory.NewEventsRepo()
		events = eventsRepo
		deps.Nudges = memory.NewNudgesRepo()
		deps.Ping = eventsRepo.Ping

		log.Warn("using in-memory store, data is lost on restart")

	case config.StoreMongo:
		client, err := db.Connect(cfg.MongoURI)
		if err != nil {
			log.Error("mongo connect failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error("mongo disconnect failed", "err", err)
			}
		}()

		database := client.Database(cfg.MongoDB)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		err = db.EnsureIndexes(ctx, database)
		cancel()
		if err != nil {
			log.Error("index setup failed", "err", err)
			os.Exit(1)
		}

		events = mongorepo.NewEventsRepo(database, prom)
		deps.Nudges = mongorepo.NewNudgesRepo(database, prom)
		deps.Ping = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	default:
		log.Error("unknown STORE", "store", cfg.Store)
		os.Exit(1)
	}

	// optional read-through cache in front of events
	switch cfg.CacheBackend {
	case config.CacheMemory:
		events = cached.NewEventsRepo(events, cache.New(cfg.CacheTTL), cfg.CacheTTL, prom, log)

	case config.CacheRedis:
		rc := cache.NewRedis(cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rc.Close()

		ctx, cancel := config.WithTimeout(2 * time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis not reachable, cache reads will miss until it is", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()

		events = cached.NewEventsRepo(events, rc, cfg.CacheTTL, prom, log)

	case config.CacheNone:
	default:
		log.Warn("unknown CACHE_BACKEND, caching disabled", "backend", cfg.CacheBackend)
	}
	deps.Events = events

	store, err := uploads.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir setup failed", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}
	deps.Uploads = store

	// set up routers with the log
	router := httpx.NewRouter(log, deps, cfg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store, "cache", cfg.CacheBackend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/cache"
	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/handler"
	"github.com/MikhailRaia/link-shortener/internal/middleware"
	"github.com/MikhailRaia/link-shortener/internal/proto"
	"github.com/MikhailRaia/link-shortener/internal/scheduler"
	"github.com/MikhailRaia/link-shortener/internal/service"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/storage/file"
	"github.com/MikhailRaia/link-shortener/internal/storage/memory"
	"github.com/MikhailRaia/link-shortener/internal/storage/postgres"
	"github.com/MikhailRaia/link-shortener/internal/validator"
	"github.com/MikhailRaia/link-shortener/internal/worker"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// App wires storage, the link service and both API servers together.
type App struct {
	config     *config.Config
	handler    http.Handler
	grpcServer *grpc.Server
	clicks     *worker.ClickWorkerPool
	cleanup    *scheduler.CleanupScheduler
	closers    []func()
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{config: cfg}

	store, pinger, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{}

	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisCache.Close() })
		opts = append(opts, service.WithCache(redisCache))
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis redirect cache")
	}

	a.clicks = worker.NewClickWorkerPool(store, worker.DefaultConfig())
	a.clicks.Start()
	opts = append(opts, service.WithClickRecorder(a.clicks))

	linkService := service.NewLinkService(store, validator.New(cfg.MaxURLLength, cfg.BlockedDomains), service.Config{
		BaseURL:                cfg.BaseURL,
		DefaultExpirationHours: cfg.DefaultExpirationHours,
		MaxExpirationHours:     cfg.MaxExpirationHours,
		CodeLength:             cfg.CodeLength,
	}, opts...)

	a.handler = handler.NewHandler(linkService, pinger).RegisterRoutes()

	a.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(middleware.UnaryLoggingInterceptor))
	proto.RegisterLinkServiceServer(a.grpcServer, handler.NewLinkGRPCServer(linkService))

	a.cleanup = scheduler.NewCleanupScheduler(linkService, cfg.CleanupInterval)

	return a, nil
}

// openStorage picks postgres when a DSN is set, then the file log, then memory.
func (a *App) openStorage(ctx context.Context) (storage.LinkStorage, handler.DBPinger, error) {
	switch {
	case a.config.DatabaseDSN != "":
		pg, err := postgres.NewStorage(ctx, a.config.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening postgres storage: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		log.Info().Msg("Using PostgreSQL storage")
		return pg, pg, nil

	case a.config.FileStoragePath != "":
		fs, err := file.NewStorage(a.config.FileStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening file storage: %w", err)
		}
		log.Info().Str("path", a.config.FileStoragePath).Msg("Using file storage")
		return fs, nil, nil

	default:
		log.Info().Msg("Using in-memory storage")
		return memory.NewStorage(), nil, nil
	}
}

// Run serves HTTP and gRPC until ctx is cancelled or a server fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	httpServer := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", a.config.ServerAddress).Str("baseURL", a.config.BaseURL).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.config.GRPCAddress != "" {
		lis, err := net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", a.config.GRPCAddress, err)
		}

		g.Go(func() error {
			log.Info().Str("addr", a.config.GRPCAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return a.cleanup.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
		defer cancel()

		a.grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close flushes pending clicks and releases storage and cache connections.
func (a *App) Close() {
	if a.clicks != nil {
		timeout := a.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		log.Debug().Int("queued", a.clicks.Stats().QueueSize).Msg("Draining click queue")
		if err := a.clicks.Shutdown(timeout); err != nil {
			log.Error().Err(err).Msg("Click worker pool did not drain in time")
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

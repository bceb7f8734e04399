package app

import (
	"context"
	"fmt"

	"messageboard/internal/app/board"
	"messageboard/internal/app/health"
	"messageboard/internal/app/reply"
	"messageboard/internal/app/thread"
	"messageboard/internal/config"
	"messageboard/internal/db"
	"messageboard/internal/db/seeder"
	"messageboard/internal/gateways/websocket"
	"messageboard/internal/middleware"
	"messageboard/internal/providers/redis"
	"messageboard/internal/router"
	"messageboard/internal/utils"

	"go.uber.org/zap"
)

type Application struct {
	Router *router.Router
	Hub    *websocket.Hub
	Repo   board.Repository

	closers []func(ctx context.Context) error
}

// Bootstrap wires the store selected by cfg.StoreDriver, the cache and every
// HTTP route. The websocket hub runs until ctx is done.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	utils.RegisterValidators()

	application := &Application{}

	repo, err := application.openStore(ctx, cfg, logger)
	if err != nil {
		application.Close(context.Background())
		return nil, err
	}
	application.Repo = repo

	checker := &utils.HealthChecker{StoreName: storeName(cfg.StoreDriver), Store: repo}

	var cache redis.Cache
	if cfg.RedisURL != "" {
		redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
		application.closers = append(application.closers, func(context.Context) error {
			return redisProvider.Close()
		})
		checker.Redis = redisProvider.Client
		cache = redisProvider
	} else {
		logger.Info("REDIS_URL not set, using in-process cache")
		cache = redis.NewMemoryCache(cfg.RedisTTL)
	}

	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	eventBus := utils.NewEventBus()
	for _, event := range utils.Events {
		eventBus.Subscribe(event, middleware.CountBoardEvent)
	}

	seed := seeder.NewSeeder(repo, hasher, logger)
	if err := seed.Seed(ctx, cfg.SeedBoards); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	boardService := board.NewService(repo)
	threadService := thread.NewService(repo, cache, hasher, eventBus, logger, thread.Limits{
		Threads:        cfg.ThreadListLimit,
		RepliesPerView: cfg.ReplyPreviewLimit,
	})
	replyService := reply.NewService(repo, cache, hasher, eventBus, logger)

	hub := websocket.NewHub(logger, eventBus)
	go hub.Run(ctx)

	healthHandler := health.NewHandler(health.NewService(checker))
	boardHandler := board.NewHandler(boardService)
	threadHandler := thread.NewHandler(threadService)
	replyHandler := reply.NewHandler(replyService)

	r := router.NewRouter(logger, cfg.FrontendURL)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterThreadRoutes(threadHandler)
	r.RegisterReplyRoutes(replyHandler)
	r.RegisterMetricsRoutes()
	r.RegisterSwaggerRoutes()

	application.Router = r
	application.Hub = hub
	return application, nil
}

func (a *Application) openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (board.Repository, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		dbConn, err := db.Connect(cfg, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := dbConn.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		if err := db.Migrate(dbConn, logger); err != nil {
			return nil, err
		}
		return board.NewRepository(dbConn), nil

	case config.StoreMongo:
		client, database, err := db.ConnectMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		return board.NewMongoRepository(database), nil

	case config.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return board.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases store and cache connections in reverse order of opening.
func (a *Application) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func storeName(driver string) string {
	switch driver {
	case config.StorePostgres:
		return "PostgreSQL"
	case config.StoreMongo:
		return "MongoDB"
	default:
		return "Memory"
	}
}

package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"github.com/gdugdh24/devconnector-backend/internal/delivery/http"
	"github.com/gdugdh24/devconnector-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/devconnector-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/database"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/messaging"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/server"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/gdugdh24/devconnector-backend/internal/repository/memory"
	"github.com/gdugdh24/devconnector-backend/internal/repository/postgres"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/auth"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/guard"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/post"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	NATS   *nats.Conn
	Server *server.Server
}

// Repositories groups the document store adapters
type Repositories struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Posts    repository.PostRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	repos, err := c.initStorage(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	postCache := cache.PostCache(cache.Noop{})
	if cfg.RedisEnabled() {
		c.Redis, err = database.NewRedisClient(ctx, &cfg.Redis, log)
		if err != nil {
			log.Warn("redis unavailable, post cache disabled", zap.Error(err))
		} else {
			postCache = cache.NewRedisPostCache(c.Redis, cfg.Cache.PostsTTL)
		}
	}

	publisher := messaging.Publisher(messaging.Noop{})
	if cfg.NATSEnabled() {
		c.NATS, err = messaging.Connect(cfg.NATS.URL)
		if err != nil {
			log.Warn("nats unavailable, events disabled", zap.Error(err))
		} else {
			publisher = messaging.NewNATSPublisher(c.NATS)
		}
	}

	if err := http.RegisterValidators(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := NewRouter(repos, postCache, publisher, cfg, log)
	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)

	return c, nil
}

// NewRouter wires use cases and handlers on top of repos
func NewRouter(
	repos Repositories,
	postCache cache.PostCache,
	publisher messaging.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *http.Router {
	parentGuard := guard.NewGuard(repos.Posts, repos.Profiles)

	authUseCase := auth.NewAuthUseCase(
		repos.Users,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryMin)*time.Minute,
	)
	profileUseCase := profile.NewProfileUseCase(
		repos.Profiles,
		repos.Users,
		parentGuard,
		publisher,
		log,
	)
	postUseCase := post.NewPostUseCase(
		repos.Posts,
		parentGuard,
		postCache,
		publisher,
		log,
	)

	return http.NewRouter(
		handler.NewAuthHandler(authUseCase, log),
		handler.NewProfileHandler(profileUseCase, log),
		handler.NewPostHandler(postUseCase, log),
		middleware.NewAuthMiddleware(authUseCase),
		log,
	)
}

func (c *Container) initStorage(ctx context.Context) (Repositories, error) {
	switch c.Config.Storage.Type {
	case config.StorageMemory:
		c.Log.Info("using in-memory storage")
		store := memory.NewStore()
		return Repositories{
			Users:    memory.NewUserRepository(store),
			Profiles: memory.NewProfileRepository(store),
			Posts:    memory.NewPostRepository(store),
		}, nil
	default:
		db, err := database.NewPostgresDB(ctx, &c.Config.Database, c.Log)
		if err != nil {
			return Repositories{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		if err := database.Migrate(ctx, db); err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Users:    postgres.NewUserRepository(db),
			Profiles: postgres.NewProfileRepository(db),
			Posts:    postgres.NewPostRepository(db),
		}, nil
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.NATS != nil {
		if err := c.NATS.Drain(); err != nil {
			c.Log.Warn("error draining nats", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

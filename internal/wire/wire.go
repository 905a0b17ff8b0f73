// Package wire provides dependency injection for the monitor application.
// It builds the object graph from configuration, once per process.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	cliadapter "github.com/example/monitor/internal/adapters/cli"
	redisadapter "github.com/example/monitor/internal/adapters/redis"
	"github.com/example/monitor/internal/adapters/sqlite"
	"github.com/example/monitor/internal/app"
	"github.com/example/monitor/internal/config"
	"github.com/example/monitor/internal/db"
	"github.com/example/monitor/internal/feed"
	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/primary"
	"github.com/example/monitor/internal/ports/secondary"
)

// Container holds every long-lived dependency.
type Container struct {
	Config  config.Config
	Logger  logger.Logger
	DB      *sql.DB
	Redis   *goredis.Client // nil when the cache is disabled
	Cache   *redisadapter.StatusCache
	Feed    *feed.Broker
	Service primary.ServiceStatusService
}

// New opens the database, optionally connects to Redis and assembles the
// service graph.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*Container, error) {
	database, err := db.Open(cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		DB:     database,
		Feed:   feed.NewBroker(feed.DefaultBuffer, log),
	}

	var cache secondary.StatusCache
	if cfg.Redis.Enabled() {
		client, err := redisadapter.Connect(ctx, redisadapter.ConnectOptions{
			Addr:           cfg.Redis.Addr,
			User:           cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DB:             cfg.Redis.DB,
			ConnectTimeout: cfg.Redis.ConnectTimeout,
			RetryInterval:  cfg.Redis.RetryInterval,
			MaxWait:        cfg.Redis.MaxWait,
			PingTimeout:    cfg.Redis.PingTimeout,
			WarnThreshold:  3,
		}, log)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = client
		c.Cache = redisadapter.NewStatusCache(client, cfg.Redis.CacheTTL)
		cache = c.Cache
	} else {
		log.Info("redis not configured, latest-status cache disabled")
	}

	c.Service = app.NewServiceStatusService(
		sqlite.NewServiceRepository(database),
		sqlite.NewStatusLogRepository(database),
		cache,
		c.Feed,
		log,
	)

	return c, nil
}

// Ready reports whether the backing stores answer.
func (c *Container) Ready(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases the database and Redis connections.
func (c *Container) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.DB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ServiceAdapter returns a new ServiceAdapter writing to out.
func (c *Container) ServiceAdapter(out io.Writer) *cliadapter.ServiceAdapter {
	return cliadapter.NewServiceAdapter(c.Service, out)
}

// StatusAdapter returns a new StatusAdapter writing to out.
func (c *Container) StatusAdapter(out io.Writer) *cliadapter.StatusAdapter {
	return cliadapter.NewStatusAdapter(c.Service, out)
}

var (
	configPath string
	container  *Container
	once       sync.Once
)

// SetConfigPath selects the config file used by Default. It must be called
// before the first Default call.
func SetConfigPath(path string) {
	configPath = path
}

// Default returns the process-wide container, building it on first use.
func Default() *Container {
	once.Do(initContainer)
	return container
}

func initContainer() {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	container, err = New(context.Background(), cfg, lg)
	if err != nil {
		lg.Error("failed to initialize services", logger.Error(err))
		os.Exit(1)
	}
}

// ServiceAdapter returns a new ServiceAdapter writing to stdout.
func ServiceAdapter() *cliadapter.ServiceAdapter {
	return Default().ServiceAdapter(os.Stdout)
}

// StatusAdapter returns a new StatusAdapter writing to stdout.
func StatusAdapter() *cliadapter.StatusAdapter {
	return Default().StatusAdapter(os.Stdout)
}

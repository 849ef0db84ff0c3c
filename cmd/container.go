package main

import (
	"context"
	"os"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/dbx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Gateway dbx.Gateway
	Redis   *redis.Client

	// Services
	JobService *jobsrv.JobService

	// API Handlers
	JobHandlers *jobapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initLogging()
	c.initInfrastructure(ctx)
	c.initServices()
	return c
}

func (c *Container) initLogging() {
	logx.SetOutput(os.Stderr, c.Config.Logging.Format == "console")
	logx.SetLevel(logx.ParseLevel(c.Config.Logging.Level))
}

func (c *Container) initInfrastructure(ctx context.Context) {
	// 1. Database
	if c.Config.Database.MigrateOnStart {
		if err := dbx.Migrate(ctx, c.Config.Database); err != nil {
			logx.Fatalf("Failed to migrate database: %v", err)
		}
	}

	db, err := dbx.Open(ctx, c.Config.Database)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	c.DB = db
	c.Gateway = dbx.NewSQLXGateway(db,
		dbx.WithSlowQueryThreshold(c.Config.Logging.SlowQueryThreshold),
		dbx.WithStatementLogging(c.Config.IsLocal()),
	)

	// 2. Redis
	if !c.Config.Redis.Enabled {
		logx.Info("Redis disabled, job details are not cached")
		return
	}
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}
}

func (c *Container) initServices() {
	jobRepo := jobinfra.NewPostgresJobRepository(c.Gateway)

	var jobCache job.Cache
	if c.Redis != nil {
		jobCache = jobinfra.NewRedisJobCache(c.Redis, c.Config.Redis.CacheTTL)
	}

	c.JobService = jobsrv.NewJobService(jobRepo, jobCache)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
}

// Close releases the database pool and the Redis client
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
}

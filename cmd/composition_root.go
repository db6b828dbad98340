package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "agu/internal/adapters/in/http"
	"agu/internal/adapters/out/postgres"
	"agu/internal/adapters/out/prediction"
	"agu/internal/adapters/out/provider"
	"agu/internal/adapters/out/redislock"
	"agu/internal/core/application/ingestion"
	"agu/internal/core/application/queries"
	"agu/internal/core/application/services"
	"agu/internal/core/application/tx"
	"agu/internal/core/ports"
	"agu/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	tx         *tx.Manager
	scheduler  *jobs.IngestionScheduler
	predictor  *services.PredictionService
	redisLock  *redislock.Lock
	jobManager *jobs.JobManager
}

// NewCompositionRoot wires the application. It connects to redis when
// config.RedisAddr is set.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	m, err := tx.NewManager(postgres.NewGormUnitOfWorkFactory(gormDB, logger))
	if err != nil {
		return nil, err
	}
	c := &CompositionRoot{config: config, gormDB: gormDB, logger: logger, tx: m}

	var lock ports.FetchLock
	if config.RedisAddr != "" {
		c.redisLock, err = redislock.NewFromAddr(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		lock = c.redisLock
	}

	pipeline := ingestion.NewPipeline(
		m,
		provider.NewHTTPFetcher(config.FetchTimeout),
		services.SystemClock,
		logger,
		provider.NewGasParser(),
		provider.NewTemperatureParser(),
	)
	c.scheduler = jobs.NewIngestionScheduler(pipeline, lock, config.CycleTimeout, logger)
	c.predictor = services.NewPredictionService(
		m,
		prediction.NewClient(config.PredictionServiceURL, config.PredictionTimeout),
		services.SystemClock,
		logger,
	)
	c.jobManager = jobs.NewJobManager(
		c.scheduler,
		jobs.NewPredictionJob(c.predictor, config.PredictionSchedule, config.PredictionDays, logger),
	)
	return c, nil
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) CreateGetAGUsBasicInfoQueryHandler() queries.GetAGUsBasicInfoQueryHandler {
	return queries.NewGetAGUsBasicInfoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingLoadsQueryHandler() queries.GetPendingLoadsQueryHandler {
	return queries.NewGetPendingLoadsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAGUService() *services.AGUService {
	return services.NewAGUService(
		c.tx,
		c.scheduler,
		c.CreateGetAGUsBasicInfoQueryHandler(),
		c.logger,
		services.WithDefaultFrequency(c.config.DefaultFrequency),
	)
}

// CreateServer builds the HTTP adapter over every application service.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Services{
		AGUs:               c.CreateAGUService(),
		Tanks:              services.NewTankService(c.tx, c.logger),
		Contacts:           services.NewContactService(c.tx, c.logger),
		DNOs:               services.NewDNOService(c.tx, c.logger),
		TransportCompanies: services.NewTransportCompanyService(c.tx, c.logger),
		Alerts:             services.NewAlertService(c.tx, services.SystemClock, c.logger),
		Loads:              services.NewLoadService(c.tx, services.SystemClock, c.logger),
		Predictions:        c.predictor,
		PendingLoads:       c.CreateGetPendingLoadsQueryHandler(),
	}, services.SystemClock)
}

// Close releases the connections opened by NewCompositionRoot.
func (c *CompositionRoot) Close() error {
	if c.redisLock != nil {
		return c.redisLock.Close()
	}
	return nil
}

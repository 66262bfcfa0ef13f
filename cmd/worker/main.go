package main

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/drivers/database"
	"appointment-service/internal/app/drivers/logger"
	"appointment-service/internal/app/drivers/messaging"
	"appointment-service/internal/app/services/core/appointments"
	"appointment-service/internal/app/services/core/audit"
	"appointment-service/internal/app/services/core/countries"
	"appointment-service/internal/app/services/core/fanout"
	"appointment-service/internal/app/services/shared/eventbus"
	"appointment-service/internal/app/services/shared/locker"
	redisRepository "appointment-service/internal/app/services/shared/redis"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runner is anything that consumes a queue until its context ends.
type runner interface {
	Run(ctx context.Context) error
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig, "worker")

	bootstrap := &config.Bootstrap{
		Mongo:          database.NewMongoDB(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.PendingAudit.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runners, err := bootstrapingTheWorkers(ctx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the workers", zap.Error(err))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, r := range runners {
		r := r
		group.Go(func() error {
			return r.Run(groupCtx)
		})
	}
	log.Info("Workers started", zap.Int("consumers", len(runners)))

	err = group.Wait()
	if err != nil {
		log.Error("Worker stopped with error", zap.Error(err))
	}

	log.Info("Waiting for background workers to stop..")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Worker exiting")
}

func bootstrapingTheWorkers(ctx context.Context, bootstrap *config.Bootstrap) ([]runner, error) {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger
	hardened := internalConfig.Country.BookingHardened

	setupCtx, cancel := context.WithTimeout(ctx, time.Duration(internalConfig.MongoDB.OperationTimeoutInSec)*time.Second)
	defer cancel()

	// Messaging
	topology := eventbus.NewTopology(internalConfig.RabbitMQ, internalConfig.Country.Codes)
	bus, err := eventbus.NewRabbitMQBus(bootstrap.RabbitMQ, log, topology, internalConfig.RabbitMQ, internalConfig.Consumer)
	if err != nil {
		return nil, err
	}
	err = bus.DeclareTopology(setupCtx)
	if err != nil {
		return nil, err
	}
	bootstrap.WorkerStop = func() { _ = bus.Close() }
	outcomeFactPublisher := eventbus.NewOutcomeFactPublisher(bus, topology, log)

	// Countries
	registry := countries.NewRegistry()
	router := fanout.NewRouter(log)
	for _, countryCode := range internalConfig.Country.Codes {
		queue, ok := topology.CountryQueue(countryCode)
		if !ok {
			continue
		}
		dbName := fmt.Sprintf(internalConfig.MongoDB.CountryDBNameFormat, strings.ToLower(countryCode))
		countryRepository := countries.NewCountryBookingMongoRepository(bootstrap.Mongo, dbName, countryCode)
		err = countryRepository.EnsureIndexes(setupCtx, hardened)
		if err != nil {
			return nil, err
		}
		registry.Register(countries.NewCountryBookingUsecase(countryCode, hardened, countryRepository, outcomeFactPublisher, log))
		router.Register(countryCode, eventbus.NewCountryChannel(bus, queue))
	}

	confirmationWorkers, err := countries.NewConfirmationWorkers(log, bus, topology.CountryQueues, registry)
	if err != nil {
		return nil, err
	}

	// Appointment
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.Mongo, internalConfig.MongoDB.CoreDBName)
	err = appointmentMongoRepository.EnsureIndexes(setupCtx)
	if err != nil {
		return nil, err
	}
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		eventbus.NewCreationFactPublisher(bus, topology, log),
		log,
	)

	runners := []runner{
		fanout.NewWorker(log, bus, topology.AppointmentCreatedQueue, router),
		appointments.NewStatusUpdateWorker(log, bus, topology.StatusUpdateQueue, appointmentUsecase),
	}
	for _, worker := range confirmationWorkers {
		runners = append(runners, worker)
	}

	// Pending audit
	if internalConfig.PendingAudit.Enabled && bootstrap.Redis != nil {
		var lockerService contracts.LockerService = locker.NewLockService(redisRepository.NewRedisRepository(bootstrap.Redis), log)
		auditWorker := audit.NewWorker(log, internalConfig.PendingAudit, lockerService, appointmentUsecase)
		auditWorker.Start(ctx)
		bootstrap.AuditWorkerStop = auditWorker.Stop
		log.Info("Pending audit worker scheduled",
			zap.String("cron_spec", internalConfig.PendingAudit.CronSpec),
		)
	}

	return runners, nil
}

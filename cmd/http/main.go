package main

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/app/delivery/http/controllers"
	"appointment-service/internal/app/delivery/http/middlewares"
	"appointment-service/internal/app/delivery/http/routers"
	"appointment-service/internal/app/drivers/database"
	"appointment-service/internal/app/drivers/logger"
	"appointment-service/internal/app/drivers/messaging"
	"appointment-service/internal/app/services/core/appointments"
	"appointment-service/internal/app/services/shared/eventbus"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig, "http")

	mongoDB := database.NewMongoDB(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Mongo:          mongoDB,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(internalConfig.MongoDB.OperationTimeoutInSec)*time.Second)
	defer cancel()

	// Messaging
	topology := eventbus.NewTopology(internalConfig.RabbitMQ, internalConfig.Country.Codes)
	bus, err := eventbus.NewRabbitMQBus(bootstrap.RabbitMQ, log, topology, internalConfig.RabbitMQ, internalConfig.Consumer)
	if err != nil {
		return err
	}
	err = bus.DeclareTopology(ctx)
	if err != nil {
		return err
	}
	creationFactPublisher := eventbus.NewCreationFactPublisher(bus, topology, log)

	// Appointment
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.Mongo, internalConfig.MongoDB.CoreDBName)
	err = appointmentMongoRepository.EnsureIndexes(ctx)
	if err != nil {
		return err
	}
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentMongoRepository, creationFactPublisher, log)
	appointmentController := controllers.NewAppointmentController(
		log,
		appointmentUsecase,
		time.Duration(internalConfig.App.RequestTimeoutInSeconds)*time.Second,
	)

	// Health
	healthController := controllers.NewHealthController(internalConfig.App.Name)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, appointmentController, healthController)
	return nil
}

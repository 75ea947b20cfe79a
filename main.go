package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agritrack/internal/config"
	"agritrack/internal/database"
	"agritrack/internal/logging"
	"agritrack/internal/repositories"
	"agritrack/internal/server"
	"agritrack/internal/services"
	"agritrack/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// --- Storage ---
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer closeStore()

	// --- Events (optional) ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []services.Option{services.WithLogger(log)}
	if cfg.AMQPURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQPURL}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		opts = append(opts, services.WithEvents(mqClient))

		if cfg.ConsumeEvents {
			if err := mqClient.ConsumeEvents(ctx, rabbitmq.LogEvents(log.WithField("component", "events"))); err != nil {
				log.WithError(err).Warn("Failed to start RabbitMQ consumer")
			}
		}
	} else {
		log.Info("AMQP_URL not set, domain events disabled")
	}

	// --- HTTP ---
	svc := server.NewServices(store, cfg.JWTSecret, cfg.TokenLifetime, opts...)
	app := server.New(cfg, svc, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}

// openStore connects the backend named by DB_DRIVER and returns its repositories
// with a func that releases the connection.
func openStore(cfg *config.Config, log *logrus.Logger) (*repositories.Store, func(), error) {
	if cfg.DBDriver == database.DriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.WithField("database", cfg.MongoDBName).Info("Connected to MongoDB")

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Error("Failed to disconnect MongoDB")
			}
		}
		return repositories.NewMongoStore(db, cfg.DBTimeout), closeFn, nil
	}

	db, err := database.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("driver", cfg.DBDriver).Info("Connected to database")

	closeFn := func() {
		if err := database.CloseGORM(db); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}
	return repositories.NewGORMStore(db, cfg.DBTimeout), closeFn, nil
}

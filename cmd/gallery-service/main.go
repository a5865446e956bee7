package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/app"
)

func main() {
	// .env is a local convenience; absence is the normal deployed case.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}

	setupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, readConfig()); err != nil {
		log.WithError(err).Fatal("gallery service exited with error")
	}
	log.Info("gallery service stopped")
}

func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if os.Getenv("GALLERY_LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}
}

func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("GALLERY_CONFIG_PATH"); v != "" {
		cfg.ConfigPath = v
	}
	if v := os.Getenv("GALLERY_SECRETS_PATH"); v != "" {
		cfg.SecretsPath = v
	}
	if v := os.Getenv("GALLERY_OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	return cfg
}

// Command migrate applies, rolls back or reports schema migrations against
// the gallery database. The service applies pending migrations on startup;
// this tool exists for operators who need to run them by hand.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/config"
	"github.com/aoyamagallery/backend/internal/storage/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	direction := flag.String("direction", "up", "migration direction: up, down or status")
	steps := flag.Int("steps", 0, "number of migrations to apply (0 = all for up, 1 for down)")
	dsn := flag.String("dsn", "", "postgres DSN; falls back to GALLERY_POSTGRES_DSN, then the config file")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := postgres.Open(ctx, resolveDSN(*dsn))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer func() { _ = store.Close() }()

	switch *direction {
	case "up":
		if err := store.MigrateUp(ctx, *steps); err != nil {
			log.WithError(err).Fatal("migrate up failed")
		}
		log.Info("migrations applied")
	case "down":
		if err := store.MigrateDown(ctx, *steps); err != nil {
			log.WithError(err).Fatal("migrate down failed")
		}
		log.Info("migrations rolled back")
	case "status":
		version, pending, err := store.MigrationStatus(ctx)
		if err != nil {
			log.WithError(err).Fatal("migration status failed")
		}
		log.Infof("schema version %d, %d pending", version, pending)
	default:
		log.Fatalf("unknown direction %q, want up, down or status", *direction)
	}
}

// resolveDSN prefers the explicit flag, then the env var, then the same
// config files the service uses.
func resolveDSN(flagDSN string) string {
	if flagDSN != "" {
		return flagDSN
	}
	if env := os.Getenv("GALLERY_POSTGRES_DSN"); env != "" {
		return env
	}

	configPath := os.Getenv("GALLERY_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	secretsPath := os.Getenv("GALLERY_SECRETS_PATH")
	if secretsPath == "" {
		secretsPath = "config/secrets.yaml.encrypted"
	}

	cfg, err := config.Load(configPath, secretsPath)
	if err != nil {
		log.WithError(err).Fatal("no DSN given and config could not be loaded")
	}
	return cfg.DSN()
}

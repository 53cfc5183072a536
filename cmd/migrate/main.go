package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/transitops/backend/internal/infrastructure/config"
	"github.com/transitops/backend/internal/infrastructure/logger"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL(&cfg.Database))
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Error("Error closing migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			log.Error("Error closing migration database", zap.Error(dbErr))
		}
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migration up failed", zap.Error(err))
		}
		log.Info("Migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migration down failed", zap.Error(err))
		}
		log.Info("Rolled back one migration")
	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version", zap.String("version", args[1]))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
		log.Info("Forced migration version", zap.Int("version", v))
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info("No migrations applied yet")
				return
			}
			log.Fatal("Failed to read version", zap.Error(err))
		}
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		printUsage()
		os.Exit(1)
	}
}

// databaseURL builds the URL form of the connection string golang-migrate
// expects.
func databaseURL(c *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up        Apply all pending migrations
  down      Roll back the most recent migration
  force <v> Set the migration version without running migrations
  version   Print the current migration version

Flags:
  -path       Path to migrations directory (default "migrations")
  -log-level  Log level (default "info")`)
}

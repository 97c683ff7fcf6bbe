package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "solar_cleaner/docs"
	"solar_cleaner/internal/handlers"
	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/repository"
	"solar_cleaner/internal/repository/db"
	"solar_cleaner/internal/server"
	"solar_cleaner/internal/service"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "SOLAR_CLEANER"
	shutdownTimeout = 10 * time.Second
)

// @title                       Solar Cleaner API
// @version                     1.0
// @description                 Control panel, ML damage-detection batches and cleaning schedule of a solar panel cleaner.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml before the logger so log.level applies
	cfgErr := loadConfig()

	log := logger.Init(logger.Config{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	loc, err := time.LoadLocation(viper.GetString("scheduler.timezone"))
	if err != nil {
		log.Fatalw("invalid scheduler.timezone", "err", err, "timezone", viper.GetString("scheduler.timezone"))
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		SigningKey:       viper.GetString("auth.signing_key"),
		TokenTTL:         viper.GetDuration("auth.token_ttl"),
		CleaningDuration: viper.GetDuration("scheduler.cleaning_duration"),
		Location:         loc,
		Logger:           log,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		AuthEnabled: viper.GetBool("auth.enabled"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if viper.GetBool("seed.demo") {
		n, err := services.Batches.SeedDemo(ctx)
		if err != nil {
			log.Fatalw("failed to seed demo batches", "err", err)
		}
		if n > 0 {
			log.Infow("seeded demo batches", "count", n)
		}
	}

	go services.Scheduler.Run(ctx, viper.GetDuration("scheduler.tick"))

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// loadConfig reads configs/config.yml; SOLAR_CLEANER_* env vars override it
// (e.g. SOLAR_CLEANER_DB_PATH for db.path).
func loadConfig() error {
	setDefaults()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("port", server.DefaultPort)
	viper.SetDefault("db.path", "solar_cleaner.db")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.format", logger.ConsoleFormat)
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.token_ttl", 12*time.Hour)
	viper.SetDefault("scheduler.tick", time.Second)
	viper.SetDefault("scheduler.cleaning_duration", service.DefaultCleaningDuration)
	viper.SetDefault("scheduler.timezone", "UTC")
	viper.SetDefault("seed.demo", false)
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the scheduler
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

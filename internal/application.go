package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/websocket"
)

const (
	minimumSweepPeriod  = time.Minute
	sweepPeriodFraction = 4
)

var (
	ErrAddrNotFound  = errors.New("redis address string is empty")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	preferenceRepo, closeStore, err := openPreferenceStore(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	secretKey := conf.Session.SecretKey
	if secretKey == "" {
		if secretKey, err = pkg.GenerateNewSessionID(); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}

		log.Warn("session secret-key is empty, using a random one; sessions will not survive a restart")
	}

	preferenceService := service.NewPreferenceService(logger, preferenceRepo)
	authService := service.NewAuthService(secretKey, conf.Session.TTL)
	tables := usecase.NewTables(logger, preferenceService)

	go runSweeper(ctx, logger, tables, conf.Session.IdleTimeout)

	wsServer := websocket.New(logger, tables)

	mux := http.NewServeMux()
	rest.NewHandlers(logger, tables).Register(mux)
	mux.Handle("GET /ws", wsServer)

	sessions := rest.NewSessions(logger, authService, conf.Session.TTL)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, sessions.Middleware(mux), wsServer.CloseAll); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openPreferenceStore - connects the configured backend. When redis or sqlite cannot be reached
// the game still starts with preferences kept in memory.
func openPreferenceStore(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.PreferenceRepository, func(), error) {
	log := logger.With("component", "app", "method", "openPreferenceStore", "driver", conf.Storage.Driver)

	noop := func() {}

	switch conf.Storage.Driver {
	case config.DriverMemory, "":
		return repository.NewMemoryPreferenceRepository(), noop, nil

	case config.DriverRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			log.Warn("could not connect to redis storage, keeping preferences in memory", "error", err)
			return repository.NewMemoryPreferenceRepository(), noop, nil
		}

		closeStore := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewPreferenceRepository(redisStorage.Connection), closeStore, nil

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLiteStoragePath)
		if err != nil {
			log.Warn("could not open sqlite storage, keeping preferences in memory", "error", err)
			return repository.NewMemoryPreferenceRepository(), noop, nil
		}

		closeStore := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			closeStore()
			log.Warn("could not prepare sqlite storage, keeping preferences in memory", "error", err)
			return repository.NewMemoryPreferenceRepository(), noop, nil
		}

		return repository.NewSQLitePreferenceRepository(sqliteStorage.Connection), closeStore, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Storage.Driver)
	}
}

// runSweeper - drops tables idle for longer than idle until ctx is canceled. A zero idle disables sweeping.
func runSweeper(ctx context.Context, logger *slog.Logger, tables *usecase.Tables, idle time.Duration) {
	log := logger.With("component", "app", "method", "runSweeper")

	if idle <= 0 {
		return
	}

	period := max(idle/sweepPeriodFraction, minimumSweepPeriod)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := tables.Sweep(idle); removed > 0 {
				log.Info("swept idle tables", "removed", removed, "remaining", tables.Len())
			}
		}
	}
}

package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

func TestOpenPreferenceStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Memory driver", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: config.DriverMemory}}

		repo, closeStore, err := openPreferenceStore(ctx, logger, conf)
		require.NoError(t, err)
		defer closeStore()

		require.NoError(t, repo.Set(ctx, "s1", "ttt_theme", "light"))
		value, err := repo.Get(ctx, "s1", "ttt_theme")
		require.NoError(t, err)
		assert.Equal(t, "light", value)
	})

	t.Run("SQLite driver persists across reopen", func(t *testing.T) {
		// Given: a sqlite store in a temp directory
		conf := &config.Config{
			Storage:           config.Storage{Driver: config.DriverSQLite},
			SQLiteStoragePath: filepath.Join(t.TempDir(), "preferences.db"),
		}

		repo, closeStore, err := openPreferenceStore(ctx, logger, conf)
		require.NoError(t, err)
		require.NoError(t, repo.Set(ctx, "s1", "ttt_board_color", "green"))
		closeStore()

		// When: the store is opened again
		repo, closeStore, err = openPreferenceStore(ctx, logger, conf)
		require.NoError(t, err)
		defer closeStore()

		// Then: the value is still there
		value, err := repo.Get(ctx, "s1", "ttt_board_color")
		require.NoError(t, err)
		assert.Equal(t, "green", value)
	})

	t.Run("Unreachable redis falls back to memory", func(t *testing.T) {
		conf := &config.Config{
			Storage: config.Storage{Driver: config.DriverRedis},
			Redis:   config.Redis{Host: "127.0.0.1", Port: "1"},
		}

		repo, closeStore, err := openPreferenceStore(ctx, logger, conf)
		require.NoError(t, err)
		defer closeStore()

		_, err = repo.Get(ctx, "s1", "ttt_theme")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		require.NoError(t, repo.Set(ctx, "s1", "ttt_theme", "light"))
	})

	t.Run("Empty redis host is rejected", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: config.DriverRedis}}

		_, _, err := openPreferenceStore(ctx, logger, conf)

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown driver is rejected", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: "etcd"}}

		_, _, err := openPreferenceStore(ctx, logger, conf)

		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

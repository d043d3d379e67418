package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type PreferenceService interface {
	Load(ctx context.Context, sessionID, key, defaultValue string) string
	Save(ctx context.Context, sessionID, key, value string)

	Init(ctx context.Context, sessionID string) *entity.Appearance
	ToggleTheme(ctx context.Context, sessionID string, appearance *entity.Appearance)
	Change(ctx context.Context, sessionID string, appearance *entity.Appearance, key, value string) error
}

type preferenceRepo interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
}

type preferenceService struct {
	logger *slog.Logger

	preferenceRepo preferenceRepo
}

func NewPreferenceService(logger *slog.Logger, preferenceRepo preferenceRepo) PreferenceService {
	return &preferenceService{
		logger:         logger.With("component", "preferences"),
		preferenceRepo: preferenceRepo,
	}
}

// Load - reads key for the session. Absent, empty or unreadable values yield defaultValue.
func (that *preferenceService) Load(ctx context.Context, sessionID, key, defaultValue string) string {
	value, err := that.preferenceRepo.Get(ctx, sessionID, key)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			that.logger.Warn("failed to load preference, using default", "key", key, "error", err)
		}

		return defaultValue
	}

	if value == "" {
		return defaultValue
	}

	return value
}

// Save - writes key for the session. Store failures are logged and dropped.
func (that *preferenceService) Save(ctx context.Context, sessionID, key, value string) {
	if err := that.preferenceRepo.Set(ctx, sessionID, key, value); err != nil {
		that.logger.Warn("failed to save preference", "key", key, "error", err)
	}
}

// Init - loads every setting and applies it to a fresh appearance.
func (that *preferenceService) Init(ctx context.Context, sessionID string) *entity.Appearance {
	appearance := entity.NewAppearance()

	for _, key := range entity.PreferenceKeys {
		defaultValue, _ := entity.DefaultFor(key)
		appearance.Apply(key, that.Load(ctx, sessionID, key, defaultValue))
	}

	return appearance
}

func (that *preferenceService) ToggleTheme(ctx context.Context, sessionID string, appearance *entity.Appearance) {
	next := appearance.OppositeTheme()

	that.Save(ctx, sessionID, entity.ThemeKey, next)
	appearance.ApplyTheme(next)
}

// Change - persists and applies a single setting.
func (that *preferenceService) Change(ctx context.Context, sessionID string, appearance *entity.Appearance, key, value string) error {
	if _, ok := entity.DefaultFor(key); !ok {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownPreference, key)
	}

	that.Save(ctx, sessionID, key, value)
	appearance.Apply(key, value)

	return nil
}

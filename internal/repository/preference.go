package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// PreferenceRepository is a durable string-to-string store scoped by session.
// Get returns apperror.ErrNotFound when the key was never saved.
type PreferenceRepository interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
}

type dbPreference struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) PreferenceRepository {
	return &dbPreference{
		client: client,
	}
}

func preferencesKey(sessionID string) string {
	return "preferences:" + sessionID
}

func (that *dbPreference) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := that.client.HGet(ctx, preferencesKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}

	return value, nil
}

func (that *dbPreference) Set(ctx context.Context, sessionID, key, value string) error {
	if err := that.client.HSet(ctx, preferencesKey(sessionID), key, value).Err(); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}

	return nil
}

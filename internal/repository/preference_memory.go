package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

type memoryPreference struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewMemoryPreferenceRepository - keeps preferences for the lifetime of the process only.
func NewMemoryPreferenceRepository() PreferenceRepository {
	return &memoryPreference{
		sessions: make(map[string]map[string]string),
	}
}

func (that *memoryPreference) Get(_ context.Context, sessionID, key string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.sessions[sessionID][key]
	if !ok {
		return "", apperror.ErrNotFound
	}

	return value, nil
}

func (that *memoryPreference) Set(_ context.Context, sessionID, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	values, ok := that.sessions[sessionID]
	if !ok {
		values = make(map[string]string)
		that.sessions[sessionID] = values
	}

	values[key] = value

	return nil
}

package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var (
	errCellRequired = errors.New("cell is required")
	errKeyRequired  = errors.New("key is required")
)

func (that *Server) handleConnect(ctx context.Context, sessionID string, _ Payload) (entity.View, error) {
	return that.tables.Open(ctx, sessionID), nil
}

func (that *Server) handleActivateCell(ctx context.Context, sessionID string, payload Payload) (entity.View, error) {
	if payload.Cell == nil {
		return entity.View{}, errCellRequired
	}

	return that.tables.AttemptMove(ctx, sessionID, *payload.Cell), nil
}

func (that *Server) handleRestart(ctx context.Context, sessionID string, _ Payload) (entity.View, error) {
	return that.tables.Restart(ctx, sessionID), nil
}

func (that *Server) handleToggleTheme(ctx context.Context, sessionID string, _ Payload) (entity.View, error) {
	return that.tables.ToggleTheme(ctx, sessionID), nil
}

func (that *Server) handleChangePreference(ctx context.Context, sessionID string, payload Payload) (entity.View, error) {
	if payload.Key == "" {
		return entity.View{}, errKeyRequired
	}

	return that.tables.ChangePreference(ctx, sessionID, payload.Key, payload.Value), nil
}

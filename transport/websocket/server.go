package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
)

const maxMessageSize = 1 << 10

type tablesUseCase interface {
	Open(ctx context.Context, sessionID string) entity.View
	AttemptMove(ctx context.Context, sessionID string, cell int) entity.View
	Restart(ctx context.Context, sessionID string) entity.View
	ToggleTheme(ctx context.Context, sessionID string) entity.View
	ChangePreference(ctx context.Context, sessionID, key, value string) entity.View
}

type handlerFunc func(ctx context.Context, sessionID string, payload Payload) (entity.View, error)

// route - broadcast is set for actions that change the table; the rest answer only the caller.
type route struct {
	handle    handlerFunc
	broadcast bool
}

// Server pushes every table update to all connections of the session that caused it.
type Server struct {
	logger   *slog.Logger
	tables   tablesUseCase
	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]map[*connection]struct{}

	handlers map[string]route
}

func New(logger *slog.Logger, tables tablesUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		tables: tables,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		connections: make(map[string]map[*connection]struct{}),
		handlers:    make(map[string]route),
	}

	server.handlers["connect"] = route{handle: server.handleConnect}
	server.handlers["cell:activate"] = route{handle: server.handleActivateCell, broadcast: true}
	server.handlers["game:restart"] = route{handle: server.handleRestart, broadcast: true}
	server.handlers["theme:toggle"] = route{handle: server.handleToggleTheme, broadcast: true}
	server.handlers["preference:change"] = route{handle: server.handleChangePreference, broadcast: true}

	return server
}

// ServeHTTP - upgrades the request and processes messages until the client goes away.
// It expects the session middleware in front of it.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := rest.SessionFromContext(r.Context())
	if sessionID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	client := &connection{conn: conn}
	that.register(sessionID, client)

	defer func() {
		that.unregister(sessionID, client)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(r.Context(), sessionID, client); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, sessionID string, client *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
				errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.sendError(client, "", "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			that.sendError(client, message.Action, fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				log.Debug("failed to unmarshal payload", "error", err)
				that.sendError(client, message.Action, "malformed payload")
				continue
			}
		}

		view, err := handler.handle(ctx, sessionID, payload)
		if err != nil {
			that.sendError(client, message.Action, err.Error())
			continue
		}

		if !handler.broadcast {
			if err = client.send(message.Action, ResponsePayload{View: &view}); err != nil {
				log.Warn("failed to send view", "error", err)
			}
			continue
		}

		that.broadcast(sessionID, message.Action, view)
	}
}

func (that *Server) register(sessionID string, client *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	if that.connections[sessionID] == nil {
		that.connections[sessionID] = make(map[*connection]struct{})
	}

	that.connections[sessionID][client] = struct{}{}
}

func (that *Server) unregister(sessionID string, client *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections[sessionID], client)

	if len(that.connections[sessionID]) == 0 {
		delete(that.connections, sessionID)
	}
}

// broadcast - sends view to every connection of the session, including the one that asked.
func (that *Server) broadcast(sessionID, action string, view entity.View) {
	log := that.logger.With("method", "broadcast")

	that.connectionsMutex.RLock()
	clients := make([]*connection, 0, len(that.connections[sessionID]))
	for client := range that.connections[sessionID] {
		clients = append(clients, client)
	}
	that.connectionsMutex.RUnlock()

	for _, client := range clients {
		if err := client.send(action, ResponsePayload{View: &view}); err != nil {
			log.Warn("failed to send view", "error", err)
		}
	}
}

func (that *Server) sendError(client *connection, action, message string) {
	if err := client.send(action, ResponsePayload{Error: message}); err != nil {
		that.logger.Warn("failed to send error response", "method", "sendError", "error", err)
	}
}

// CloseAll - closes every open connection. Used on shutdown since hijacked connections outlive the HTTP server.
func (that *Server) CloseAll() {
	that.connectionsMutex.RLock()
	var clients []*connection
	for _, sessionClients := range that.connections {
		for client := range sessionClients {
			clients = append(clients, client)
		}
	}
	that.connectionsMutex.RUnlock()

	for _, client := range clients {
		client.close()
	}
}

package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

const sessionCookieName = "user_session"

type sessionKey struct{}

type authService interface {
	GenerateToken(sessionID string) (string, error)
	ParseToken(token string) (string, error)
}

// Sessions identifies the browser behind every request with a signed cookie.
type Sessions struct {
	logger *slog.Logger
	auth   authService
	ttl    time.Duration
}

func NewSessions(logger *slog.Logger, auth authService, ttl time.Duration) *Sessions {
	return &Sessions{
		logger: logger.With("component", "sessions"),
		auth:   auth,
		ttl:    ttl,
	}
}

// Middleware - resolves the session from the cookie, issuing a new one when missing or invalid.
func (that *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := that.resolve(w, r)
		if err != nil {
			that.logger.Error("failed to resolve session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID)))
	})
}

func (that *Sessions) resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionID, err := that.auth.ParseToken(cookie.Value)
		if err == nil {
			return sessionID, nil
		}

		that.logger.Info("session cookie rejected, new one created", "error", err)
	}

	sessionID, err := pkg.GenerateNewSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := that.auth.GenerateToken(sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(that.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID, nil
}

// SessionFromContext - returns the session ID stored by Middleware, or "" outside of it.
func SessionFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionKey{}).(string)
	return sessionID
}

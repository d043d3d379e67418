package rest

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const maxBodyBytes = 1 << 10

var errMissingValue = errors.New("value is required")

//go:embed templates/index.html
var templatesFS embed.FS

type tablesUseCase interface {
	Open(ctx context.Context, sessionID string) entity.View
	AttemptMove(ctx context.Context, sessionID string, cell int) entity.View
	Restart(ctx context.Context, sessionID string) entity.View
	ToggleTheme(ctx context.Context, sessionID string) entity.View
	ChangePreference(ctx context.Context, sessionID, key, value string) entity.View
}

type Handlers struct {
	logger *slog.Logger
	tables tablesUseCase
	page   *template.Template
}

type preferenceRequest struct {
	Value *string `json:"value"`
}

type pageData struct {
	View           entity.View
	Palette        []entity.Color
	Style          template.CSS
	BoardColorKey  string
	MarkerColorKey string
}

func NewHandlers(logger *slog.Logger, tables tablesUseCase) *Handlers {
	page := template.Must(template.New("index.html").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templatesFS, "templates/index.html"))

	return &Handlers{
		logger: logger.With("component", "rest"),
		tables: tables,
		page:   page,
	}
}

// Register - mounts every page and game route on mux.
func (that *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /{$}", that.Index)
	mux.HandleFunc("GET /state", that.State)
	mux.HandleFunc("POST /cells/{cell}", that.ActivateCell)
	mux.HandleFunc("POST /restart", that.Restart)
	mux.HandleFunc("POST /theme/toggle", that.ToggleTheme)
	mux.HandleFunc("POST /preferences/{key}", that.ChangePreference)
}

// Index - renders the board page for the caller's session.
func (that *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Index")

	view := that.tables.Open(r.Context(), SessionFromContext(r.Context()))

	data := pageData{
		View:           view,
		Palette:        entity.Palette,
		Style:          boardStyle(view.Appearance),
		BoardColorKey:  entity.BoardColorKey,
		MarkerColorKey: entity.MarkerColorKey,
	}

	var buf bytes.Buffer
	if err := that.page.Execute(&buf, data); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *Handlers) State(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.tables.Open(r.Context(), SessionFromContext(r.Context())))
}

// ActivateCell - attempts a move for the current player. Ignored moves still answer with the unchanged view.
func (that *Handlers) ActivateCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		that.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cell %q", r.PathValue("cell")))
		return
	}

	that.respond(w, r, that.tables.AttemptMove(r.Context(), SessionFromContext(r.Context()), cell))
}

func (that *Handlers) Restart(w http.ResponseWriter, r *http.Request) {
	that.respond(w, r, that.tables.Restart(r.Context(), SessionFromContext(r.Context())))
}

func (that *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	that.respond(w, r, that.tables.ToggleTheme(r.Context(), SessionFromContext(r.Context())))
}

// ChangePreference - accepts the value either as a form field or as a JSON body.
func (that *Handlers) ChangePreference(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	value, err := preferenceValue(r)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.respond(w, r, that.tables.ChangePreference(r.Context(), SessionFromContext(r.Context()), r.PathValue("key"), value))
}

func preferenceValue(r *http.Request) (string, error) {
	if isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("failed to parse form: %w", err)
		}

		if !r.PostForm.Has("value") {
			return "", errMissingValue
		}

		return r.PostForm.Get("value"), nil
	}

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("failed to decode request: %w", err)
	}

	if req.Value == nil {
		return "", errMissingValue
	}

	return *req.Value, nil
}

// respond - form posts come from the page and go back to it, everything else gets the view as JSON.
func (that *Handlers) respond(w http.ResponseWriter, r *http.Request, view entity.View) {
	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

func boardStyle(appearance entity.Appearance) template.CSS {
	return template.CSS(fmt.Sprintf("--boardTint: %s; --markerColor: %s;", appearance.Board.Tint, appearance.Marker.Marker)) //nolint: gosec // palette values are constants
}

package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/GabRamosBr/jogo-servidor/internal/app"
	"github.com/GabRamosBr/jogo-servidor/internal/domain"
)

// Handler handles WebSocket connections
type Handler struct {
	session  *app.Session
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(session *app.Session, logger *slog.Logger) *Handler {
	return &Handler{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests. Each connection must carry a
// non-empty display name; connections are refused outright when the game is
// in progress or the roster is full.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if !h.session.CanJoin() {
		http.Error(w, "Cannot join this game", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	playerID := uuid.New().String()
	client := NewClient(conn, h.session, playerID, h.logger)

	// Register before joining so the client receives its own join broadcast
	h.session.RegisterClient(playerID, client)

	player, err := h.session.Join(playerID, name)
	if err != nil {
		// Lost the race for the last roster slot
		h.session.UnregisterClient(playerID)
		if err == domain.ErrGameFull {
			client.sendError(ErrCodeInternalError, "Game is full")
		} else {
			client.sendError(ErrCodeInternalError, "Cannot join this game")
		}
		client.Close()
		return
	}

	h.logger.Info("websocket connected", "playerID", playerID, "name", name)

	client.sendConnected(player.Name, player.Color)
	client.Run()
}

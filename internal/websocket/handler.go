package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"stockdash/internal/config"
	apierrors "stockdash/internal/errors"
	"stockdash/internal/infrastructure"
	"stockdash/pkg/contracts/events"
)

// Handler upgrades GET /ws and starts a dashboard session.
type Handler struct {
	hub            *Hub
	builder        DashboardBuilder
	cfg            config.WebSocketConfig
	allowedOrigins []string
	upgrader       websocket.Upgrader
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewHandler creates the upgrade handler. An allowed origin of "*" accepts any origin;
// same-host origins are always accepted.
func NewHandler(hub *Hub, builder DashboardBuilder, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *Handler {
	h := &Handler{
		hub:            hub,
		builder:        builder,
		cfg:            withDefaults(cfg),
		allowedOrigins: allowedOrigins,
		logger:         infrastructure.WithComponent(logger, "websocket.handler"),
		errorHandler:   errorHandler,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   cfg.ReadBufferSize,
		WriteBufferSize:  cfg.WriteBufferSize,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkOrigin,
		Error:            h.upgradeError,
	}
	return h
}

// ServeHTTP handles GET /ws
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered through upgradeError.
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())
	client := NewClient(h.hub, NewConnectionWrapper(conn), h.builder, h.cfg, traceID, h.logger)
	if !h.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	connect := events.ConnectData{SessionID: client.ID()}
	ctx, cancel := context.WithTimeout(client.ctx, h.cfg.WriteWait)
	if cols, err := h.builder.Columns(ctx); err == nil {
		connect.Columns = cols
	}
	cancel()
	client.sendMessage("", events.MessageTypeConnect, connect)

	client.Start()
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.allowedOrigins, "*") || slices.Contains(h.allowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (h *Handler) upgradeError(w http.ResponseWriter, r *http.Request, status int, reason error) {
	h.logger.WarnContext(r.Context(), "websocket upgrade rejected",
		slog.Int("status", status),
		slog.String("origin", r.Header.Get("Origin")),
		slog.String("error", reason.Error()))
	h.errorHandler.HandleError(w, r, apierrors.WebSocketUpgradeError(status, reason))
}

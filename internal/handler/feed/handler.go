package feed

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-board/internal/logging"
	feedService "github.com/zhouzirui/z-board/internal/service/feed"
	"github.com/zhouzirui/z-board/pkg/utils"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	keepAlivePulse = 15 * time.Second
)

// Handler 新留言实时推送（WebSocket与SSE）
type Handler struct {
	hub      *feedService.Hub
	upgrader websocket.Upgrader
}

// New 创建实时推送处理器
func New(hub *feedService.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册实时推送路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
	r.Get("/events", h.handleEvents)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	id, entries := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)
	logger.Debug().Str("subscriber", id).Int("subscribers", h.hub.Len()).Msg("websocket opened")

	// Reads only process control frames; any error means the client is gone.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(entry); err != nil {
				logger.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondInternalError(w)
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, entries := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	ctx := r.Context()
	logger := logging.Ctx(ctx)
	logger.Debug().Str("subscriber", id).Int("subscribers", h.hub.Len()).Msg("sse stream opened")

	ticker := time.NewTicker(keepAlivePulse)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Str("subscriber", id).Msg("sse stream closed")
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, "message", entry); err != nil {
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "keep-alive"); err != nil {
				return
			}
		}
	}
}

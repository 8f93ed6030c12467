package board

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-board/internal/logging"
	boardService "github.com/zhouzirui/z-board/internal/service/board"
	"github.com/zhouzirui/z-board/pkg/utils"
)

const (
	pageIndex   = "index.html"
	pageMessage = "message.html"
	pageRead    = "read.html"
	pageError   = "error.html"
)

// Renderer produces page bodies from named templates.
type Renderer interface {
	Render(name string, data map[string]any) ([]byte, error)
}

// Handler 留言板页面的HTTP处理器
type Handler struct {
	boardSvc *boardService.Service
	renderer Renderer
}

// New 创建页面处理器
func New(boardSvc *boardService.Service, renderer Renderer) *Handler {
	return &Handler{
		boardSvc: boardSvc,
		renderer: renderer,
	}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/index.html", h.handleIndex)
	r.Get("/message.html", h.handleMessageForm)
	r.Post("/message.html", h.handlePostMessage)
	r.Get("/read.html", h.handleRead)
}

// NotFound renders the error page with code 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusNotFound, pageError, map[string]any{"code": http.StatusNotFound})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pageIndex, nil)
}

func (h *Handler) handleMessageForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pageMessage, nil)
}

// handleRead 渲染全部留言
func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	board, err := h.boardSvc.List(r.Context())
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("load board failed")
		utils.RespondInternalError(w)
		return
	}

	h.renderPage(w, r, http.StatusOK, pageRead, map[string]any{
		"messages": board,
		"entries":  board.Entries(),
	})
}

// handlePostMessage 保存留言并重定向到列表页
func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	text := r.PostFormValue("message")

	entry, err := h.boardSvc.Post(r.Context(), username, text)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("save message failed")
		utils.RespondInternalError(w)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Debug().Str("timestamp", entry.Timestamp).Msg("message saved")

	w.Header().Set("Location", "/"+pageRead)
	w.WriteHeader(http.StatusSeeOther)
}

// renderPage renders before writing anything, so a failed render still
// leaves room for the 500 response.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	body, err := h.renderer.Render(name, data)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Str("template", name).Msg("render failed")
		utils.RespondInternalError(w)
		return
	}
	utils.RespondHTML(w, status, body)
}

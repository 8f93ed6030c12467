package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-board/internal/logging"
	boardService "github.com/zhouzirui/z-board/internal/service/board"
	"github.com/zhouzirui/z-board/pkg/utils"
)

// Handler 留言板JSON接口
type Handler struct {
	boardSvc *boardService.Service
}

// New 创建JSON接口处理器
func New(boardSvc *boardService.Service) *Handler {
	return &Handler{boardSvc: boardSvc}
}

// RegisterRoutes 注册JSON接口路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.handleListMessages)
}

// handleListMessages 按时间顺序列出全部留言
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	entries, err := h.boardSvc.Entries(r.Context())
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("list messages failed")
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

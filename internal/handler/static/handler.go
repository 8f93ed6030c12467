package static

import (
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-board/internal/logging"
)

// Handler streams files found by a Resolver.
type Handler struct {
	resolver *Resolver
	notFound http.HandlerFunc
}

// New 创建静态文件处理器，未找到时交给notFound
func New(resolver *Resolver, notFound http.HandlerFunc) *Handler {
	return &Handler{resolver: resolver, notFound: notFound}
}

// RegisterRoutes 注册静态文件路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(urlPrefix+"*", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	asset, err := h.resolver.Resolve(r.URL.Path)
	if err != nil {
		h.notFound(w, r)
		return
	}

	f, err := os.Open(asset.Path)
	if err != nil {
		h.notFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Warn().Err(err).Str("asset", asset.Path).Msg("static copy interrupted")
	}
}

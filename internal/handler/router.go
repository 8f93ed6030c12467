package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-board/internal/handler/api"
	"github.com/zhouzirui/z-board/internal/handler/board"
	"github.com/zhouzirui/z-board/internal/handler/feed"
	"github.com/zhouzirui/z-board/internal/handler/static"
	"github.com/zhouzirui/z-board/internal/logging"
	boardService "github.com/zhouzirui/z-board/internal/service/board"
	feedService "github.com/zhouzirui/z-board/internal/service/feed"
)

// Deps collects what the router needs from bootstrap.
type Deps struct {
	Board    *boardService.Service
	Hub      *feedService.Hub
	Renderer board.Renderer
	Static   *static.Resolver
	Logger   zerolog.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.HTTPMiddleware(deps.Logger))
	r.Use(logging.RecoverMiddleware)

	pages := board.New(deps.Board, deps.Renderer)

	// Unknown paths and unsupported methods on known paths both get the
	// 404 page.
	r.NotFound(pages.NotFound)
	r.MethodNotAllowed(pages.NotFound)

	pages.RegisterRoutes(r)

	static.New(deps.Static, pages.NotFound).RegisterRoutes(r)

	r.Route("/api", func(sub chi.Router) {
		api.New(deps.Board).RegisterRoutes(sub)
	})

	if deps.Hub != nil {
		feed.New(deps.Hub).RegisterRoutes(r)
	}

	return r
}

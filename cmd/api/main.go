package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-board/internal/config"
	"github.com/zhouzirui/z-board/internal/handler"
	"github.com/zhouzirui/z-board/internal/handler/static"
	"github.com/zhouzirui/z-board/internal/logging"
	"github.com/zhouzirui/z-board/internal/model/message"
	"github.com/zhouzirui/z-board/internal/render"
	"github.com/zhouzirui/z-board/internal/service/board"
	"github.com/zhouzirui/z-board/internal/service/feed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "z-board",
	})
	logger := logging.L()

	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file loaded, using system environment only")
	}

	store := message.NewFileStore(cfg.Paths.StoragePath, message.WithLocking(cfg.Store.Locking))
	if err := store.Ensure(); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Paths.StoragePath).Msg("failed to prepare storage")
	}
	if !cfg.Store.Locking {
		logger.Warn().Msg("store locking disabled: concurrent posts may overwrite each other")
	}

	renderer, err := render.New(os.DirFS(cfg.Paths.TemplateDir))
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Paths.TemplateDir).Msg("failed to load templates")
	}

	hub := feed.NewHub()
	router := handler.NewRouter(handler.Deps{
		Board:    board.NewService(store, hub),
		Hub:      hub,
		Renderer: renderer,
		Static:   static.NewResolver(cfg.Paths.BaseDir),
		Logger:   logger,
	})

	startServer(ctx, logger, cfg.Server, router, hub)
}

func startServer(ctx context.Context, logger zerolog.Logger, serverCfg config.ServerConfig, router http.Handler, hub *feed.Hub) {
	srv := newServer(serverCfg.Addr(), router, hub)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", srv.Addr).Msg("failed to bind")
	}

	fmt.Printf("Serving on %s\n", serverCfg.URL())
	if err := runServer(ctx, srv, ln); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newServer(addr string, router http.Handler, hub *feed.Hub) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	// Open SSE and websocket streams never finish on their own.
	srv.RegisterOnShutdown(hub.Close)
	return srv
}

func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package server

import (
	"context"
	"fmt"
	"net"

	"github.com/valyala/fasthttp"

	"github.com/ogurasousui/staffing-readiness-engine/internal/platform/config"
)

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	httpServer *fasthttp.Server
}

// New は指定されたアドレスで待ち受ける HTTP サーバーを構築します。
func New(cfg config.ServerConfig, handler fasthttp.RequestHandler) *Server {
	srv := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		listenAddr: cfg.ListenAddr,
		httpServer: srv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		if err := s.httpServer.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	}
}

// Shutdown はサーバーを安全に停止します。
func (s *Server) Shutdown() error {
	return s.httpServer.Shutdown()
}

// Package server はHTTPサーバーの起動とグレースフルシャットダウンを提供します。
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server はHTTPサーバーのライフサイクルを管理します。
type Server struct {
	Handler         http.Handler
	Addr            string
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
}

// Run は ctx がキャンセルされるまでリクエストを受け付け、その後処理中のリクエストを待って終了します。
func (s *Server) Run(ctx context.Context) error {
	if s.Handler == nil {
		return errors.New("handler not configured")
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", s.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down http server", zap.Duration("timeout", s.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

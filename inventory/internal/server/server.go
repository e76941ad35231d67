package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/config"
	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HTTPServer, handler http.Handler) *Server {
	readTimeout, writeTimeout := cfg.ReadTimeout, cfg.WriteTimeout
	if readTimeout == 0 {
		readTimeout = defaultTimeout
	}
	if writeTimeout == 0 {
		writeTimeout = defaultTimeout
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readTimeout,
			WriteTimeout:      writeTimeout,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

// Run blocks until the server stops. A graceful Stop is not an error.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

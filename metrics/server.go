package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = time.Second

// Server exposes a Recorder on /metrics
type Server struct {
	addr string
	srv  *http.Server
	log  *zap.Logger
	done chan struct{}
	ln   net.Listener
}

// NewServer creates a server for rec listening on addr
func NewServer(addr string, rec *Recorder, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	return &Server{
		addr: addr,
		srv:  &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log:  log,
	}
}

// Name identifies the server as a service
func (s *Server) Name() string { return "metrics" }

// Addr returns the bound address, valid after Start
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	s.log.Info("serving metrics", zap.String("addr", s.Addr()))
	return nil
}

// Stop shuts the server down, waiting briefly for in-flight scrapes
func (s *Server) Stop() {
	if s.done == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
	<-s.done
}

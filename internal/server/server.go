package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	defaultPort       = "8080"
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server owns the HTTP listener lifecycle of the wiki API.
type Server struct {
	httpServer *http.Server
}

// New builds a server for port ("8080" or ":8080"; empty means 8080).
func New(port string, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              normalizeAddr(port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		// websocket streams set their own deadlines; WriteTimeout only bounds regular responses
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

func normalizeAddr(port string) string {
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Run blocks serving requests. A graceful Shutdown is not reported as an error.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package broadcast

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// Server is an embedded NATS server for single-host deployments.
type Server struct {
	ns             *server.Server
	startupTimeout time.Duration
	shutdownOnce   sync.Once
}

// NewServer creates an embedded NATS server. Port -1 picks a random port.
func NewServer(host string, port int) (*Server, error) {
	ns, err := server.NewServer(&server.Options{
		Host:   host,
		Port:   port,
		NoSigs: true, // Let the application handle signals
		NoLog:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	return &Server{ns: ns, startupTimeout: 10 * time.Second}, nil
}

// Start starts the server and waits until it accepts connections.
func (s *Server) Start() error {
	s.ns.Start()
	if !s.ns.ReadyForConnections(s.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}
	slog.Info("nats server listening", "addr", s.ns.Addr())
	return nil
}

// ClientURL returns the URL clients connect to.
func (s *Server) ClientURL() string {
	return s.ns.ClientURL()
}

// Shutdown stops the server and waits for it to finish. Repeated calls are no-ops.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.ns.Shutdown()
		s.ns.WaitForShutdown()
	})
}

package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/simonvetter/modbus"

	"github.com/tanksim/tanksim-go/pkg/register"
)

// Server defaults.
const (
	DefaultPort       = 5020
	DefaultUnitID     = 1
	DefaultTimeout    = 30 * time.Second
	DefaultMaxClients = 16
)

// ErrServerRunning is returned by Start on a running server.
var ErrServerRunning = errors.New("server already running")

// ServerConfig configures a Modbus TCP server.
type ServerConfig struct {
	// Host to bind (empty binds all interfaces).
	Host string

	// Port to listen on (default: 5020).
	Port int

	// UnitID answered by the server (default: 1).
	UnitID uint8

	// Timeout closes idle client connections (default: 30s).
	Timeout time.Duration

	// MaxClients limits concurrent client connections (default: 16).
	MaxClients uint

	// Logger for refused requests and lifecycle (optional).
	Logger *slog.Logger

	// Observer is notified of every request (optional).
	Observer Observer
}

// Server serves a register store over Modbus TCP.
type Server struct {
	config  ServerConfig
	handler *Handler
	mb      *modbus.ModbusServer
	running atomic.Bool
}

// NewServer creates a server. It does not listen until Start.
func NewServer(store register.Store, layout register.Layout, config ServerConfig) (*Server, error) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.UnitID == 0 {
		config.UnitID = DefaultUnitID
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxClients == 0 {
		config.MaxClients = DefaultMaxClients
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("register layout: %w", err)
	}

	handler := NewHandler(store, layout, config.UnitID, config.Logger, config.Observer)
	mb, err := modbus.NewServer(&modbus.ServerConfiguration{
		URL:        URL(config.Host, config.Port),
		Timeout:    config.Timeout,
		MaxClients: config.MaxClients,
	}, handler)
	if err != nil {
		return nil, fmt.Errorf("modbus server: %w", err)
	}

	return &Server{config: config, handler: handler, mb: mb}, nil
}

// URL returns the listen URL for host and port.
func URL(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return "tcp://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// Start begins accepting clients.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerRunning
	}
	if err := s.mb.Start(); err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen on %s: %w", s.URL(), err)
	}
	s.config.Logger.Info("modbus server listening",
		slog.String("url", s.URL()),
		slog.Int("unit", int(s.config.UnitID)))
	return nil
}

// Stop closes the listener and all client connections. Stopping a stopped
// server is a no-op.
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	return s.mb.Stop()
}

// Serve starts the server and stops it when ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// URL returns the listen URL.
func (s *Server) URL() string {
	return URL(s.config.Host, s.config.Port)
}

// UnitID returns the unit id answered by the server.
func (s *Server) UnitID() uint8 {
	return s.config.UnitID
}

// Handler returns the request handler.
func (s *Server) Handler() *Handler {
	return s.handler
}

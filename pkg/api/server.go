// Package api serves a read-only HTTP view of the running simulator: health,
// the latest scan cycle, raw register blocks and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tanksim/tanksim-go/pkg/log"
	"github.com/tanksim/tanksim-go/pkg/register"
	"github.com/tanksim/tanksim-go/pkg/version"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Version is reported by the health endpoint.
	Version string

	// RunID is reported by the health endpoint.
	RunID string

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger
}

// Server is the status HTTP server.
type Server struct {
	config Config
	store  register.Store
	layout register.Layout
	latest *log.Latest
	router *mux.Router
	server *http.Server
}

// NewServer creates a server reading from store and latest.
func NewServer(store register.Store, layout register.Layout, latest *log.Latest, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		config: cfg,
		store:  store,
		layout: layout,
		latest: latest,
		router: mux.NewRouter(),
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/registers", s.handleLayout).Methods(http.MethodGet)
	api.HandleFunc("/registers/{block}", s.handleBlock).Methods(http.MethodGet)

	if s.config.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	s.config.Logger.Info("status API listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// HealthResponse is the body of /api/v1/health.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	RegisterMap string `json:"register_map"`
	RunID       string `json:"run_id,omitempty"`
	Cycles      uint64 `json:"cycles"`

	// Compatible is set when the request names the register map version
	// the client was built for (?map=major.minor).
	Compatible *bool `json:"compatible,omitempty"`
}

// BlockResponse is the body of /api/v1/registers/{block}.
type BlockResponse struct {
	Block  string            `json:"block"`
	Table  string            `json:"table"`
	Base   uint16            `json:"base"`
	Values []uint16          `json:"values"`
	Fields map[string]uint16 `json:"fields"`
	Access string            `json:"access"`
}

// ErrorResponse is returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	current := version.Current()
	resp := HealthResponse{
		Status:      "ok",
		Version:     s.config.Version,
		RegisterMap: current.String(),
		RunID:       s.config.RunID,
	}
	if q := r.URL.Query().Get("map"); q != "" {
		want, err := version.Parse(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ok := want.Compatible(current)
		resp.Compatible = &ok
	}
	if ev, ok := s.latest.Get(); ok {
		resp.Cycles = ev.Cycle
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ev, ok := s.latest.Get()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no cycle has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	blocks := make([]BlockResponse, 0, 4)
	for _, spec := range s.layout.Blocks() {
		blocks = append(blocks, BlockResponse{
			Block:  spec.Block.String(),
			Table:  spec.Table.String(),
			Base:   spec.Base,
			Access: spec.Access.String(),
		})
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	block, err := register.ParseBlock(mux.Vars(r)["block"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	spec, _ := s.layout.Spec(block)

	values, err := s.store.GetValues(spec.Table, spec.Base, spec.Size)
	if err != nil {
		s.config.Logger.Warn("register read failed", "block", block, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	names := register.FieldNames(block)
	fields := make(map[string]uint16, len(values))
	for i, v := range values {
		if i < len(names) {
			fields[names[i]] = v
		}
	}

	writeJSON(w, http.StatusOK, BlockResponse{
		Block:  block.String(),
		Table:  spec.Table.String(),
		Base:   spec.Base,
		Values: values,
		Fields: fields,
		Access: spec.Access.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

package mcp

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-ops/internal/config"
	"github.com/honeycarbs/recruit-ops/internal/mcp/tools"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

// Version is reported in the MCP implementation info
var Version = "0.1.0"

// Server wraps an MCP SDK server with an HTTP listener
type Server struct {
	logger *logging.Logger

	mcp     *sdkmcp.Server
	srv     *http.Server
	tools   []string
	started atomic.Bool
}

// NewServer constructs the MCP HTTP server and registers every tool backed by res
func NewServer(log *logging.Logger, cfg config.Config, res *Resources) *Server {
	if log == nil {
		log = logging.NewNop()
	}

	impl := &sdkmcp.Implementation{
		Name:    "recruit-ops",
		Version: Version,
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	names := registerTools(mcpServer, log.Named("tools"), res)

	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp/stream", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		mcp:    mcpServer,
		srv:    httpSrv,
		tools:  names,
	}
}

// Tools returns the names of the registered tools and resources
func (s *Server) Tools() []string {
	return s.tools
}

// Handler exposes the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}

func registerTools(server *sdkmcp.Server, log *logging.Logger, res *Resources) []string {
	if res == nil {
		log.Warn("no resources configured, serving without tools")
		return nil
	}

	opts := []tools.Option{
		tools.WithJobTools(res.JobService),
		tools.WithMetricsTools(res.MetricsService),
		tools.WithRolesResource(res.Scopes),
	}
	if res.Exporter != nil {
		opts = append(opts, tools.WithSheetsExport(res.Exporter, res.JobService, res.MetricsService, res.ExportTarget))
	}
	return tools.Register(server, log, opts...)
}

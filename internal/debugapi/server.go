package debugapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appversion "github.com/dantte-lp/go-someip/internal/version"
)

// defaultRingCapacity bounds how many frame summaries Server retains.
const defaultRingCapacity = 256

// shutdownTimeout bounds how long Shutdown waits for in-flight requests
// to drain.
const shutdownTimeout = 5 * time.Second

// Server is the operator-facing debug HTTP surface: GET /healthz and
// GET /frames. It is fed frame summaries by the daemon's dispatcher via
// RecordFrame and never touches the wire protocol itself.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	ring   *frameRing
}

// NewServer builds a Server listening on addr. If logger is nil a
// silent logger is used.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), loggingMiddleware(logger))

	s := &Server{
		engine: engine,
		ring:   newFrameRing(defaultRingCapacity),
	}

	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/frames", s.handleFrames)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// RecordFrame appends a frame summary to the ring buffer surfaced by
// GET /frames. Safe for concurrent use from the dispatcher goroutine.
func (s *Server) RecordFrame(summary FrameSummary) {
	s.ring.Push(summary)
}

// Handler returns the server's http.Handler, letting tests exercise the
// routes through httptest without binding a real listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and blocks until ctx is cancelled, at
// which point it attempts a graceful shutdown bounded by
// shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("debugapi listen: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("debugapi shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": appversion.Version,
	})
}

func (s *Server) handleFrames(c *gin.Context) {
	n := defaultRingCapacity
	c.JSON(http.StatusOK, gin.H{
		"frames": s.ring.Recent(n),
	})
}

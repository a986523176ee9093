package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/config"

	"github.com/gorilla/mux"
)

type DashboardHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	srv       *http.Server
}

func NewDashboardHttpServer(router *Router, muxRouter *mux.Router, port string) *DashboardHttpServer {
	return &DashboardHttpServer{
		router:    router,
		muxRouter: muxRouter,
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           muxRouter,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *DashboardHttpServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done or the listener fails.
func (s *DashboardHttpServer) Run(ctx context.Context) error {
	s.router.RegisterRoutes()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[DashboardHttpServer] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[DashboardHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.SERVER_SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("[DashboardHttpServer] Server exiting")
	return nil
}

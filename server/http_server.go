package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type PTalkHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
}

func NewPTalkHttpServer(router *Router, muxRouter *mux.Router, addr string) *PTalkHttpServer {
	return &PTalkHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
	}
}

// Run serves until ctx is done. The error is nil after a clean shutdown.
func (s *PTalkHttpServer) Run(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[PTalkHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[PTalkHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

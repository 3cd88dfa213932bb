package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server serves the paper detail preview to a browser front end.
type Server struct {
	port    string
	handler http.Handler
}

// NewServer wraps handler with CORS and request logging.
func NewServer(port string, handler http.Handler) *Server {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
	})

	return &Server{
		port:    port,
		handler: c.Handler(RequestTimeMiddleware(handler)),
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is done or the process receives SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return err
	}

	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is done or a stop signal arrives, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	restServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting preview server on: ", l.Addr().String())
		if err := restServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("error starting preview server: %v", err)
		}
		logrus.Infof("preview server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		// clean Ctrl+C output
		fmt.Println()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := restServer.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Errorf("error stopping preview server: %v", err)
	}

	wg.Wait()

	return err
}

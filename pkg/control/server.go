package control

import (
	"bufio"
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"io"
	"net"
	"strings"
	"sync"
)

// Server is the single writer of a layout manager. Requests from all
// connections are serialized.
type Server struct {
	manager *layouts.Manager
	routes  []string
	managed map[string]struct{}
	lock    sync.Mutex
	log     *zap.SugaredLogger
}

// NewServer creates a server that only accepts requests for the given
// routes.
func NewServer(manager *layouts.Manager, routes []string, log *zap.SugaredLogger) *Server {
	managed := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		managed[route] = struct{}{}
	}

	return &Server{
		manager: manager,
		routes:  routes,
		managed: managed,
		log:     log,
	}
}

// Serve accepts connections until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				wg.Wait()
				return ctx.Err()
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				s.log.Warnw("control connection failed", "error", err)
			}
		}()
	}
}

// ServeConn answers requests on conn until the peer hangs up or ctx is done.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF) && line == "":
			return nil
		case err != nil && !errors.Is(err, io.EOF):
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from control socket: %w", err)
		}

		line = strings.TrimSuffix(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		resp := s.Handle(line)
		if _, werr := io.WriteString(conn, resp+"\n"); werr != nil {
			return fmt.Errorf("write to control socket: %w", werr)
		}

		if err != nil {
			// last line without newline
			return nil
		}
	}
}

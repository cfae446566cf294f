package main

import (
	"codeberg.org/miketth/layoutd/pkg/control"
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"codeberg.org/miketth/layoutd/pkg/layoutstore/json"
	"codeberg.org/miketth/layoutd/pkg/layoutstore/memory"
	"codeberg.org/miketth/layoutd/pkg/layoutstore/sqlite"
	"codeberg.org/miketth/layoutd/pkg/metrics"
	"codeberg.org/miketth/layoutd/pkg/presets"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

type storeCloser interface {
	layouts.Store
	Close() error
}

func run() error {
	storeKind := flag.String("store", "sqlite", "layout store backend: sqlite, json or memory")
	presetsPath := flag.String("presets", "", "path to a layout presets XML file (default: built-in presets)")
	routesFlag := flag.String("routes", "", "comma separated routes managed by the control socket (default: routes with presets)")
	socketPath := flag.String("socket", "", "control socket path (default: $XDG_RUNTIME_DIR/layoutd/control.sock)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, disabled if empty")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := loadPresets(*presetsPath)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	routes := registry.RoutePaths()
	if *routesFlag != "" {
		routes = routes[:0]
		for _, route := range strings.Split(*routesFlag, ",") {
			if route = strings.TrimSpace(route); route != "" {
				routes = append(routes, route)
			}
		}
	}

	store, err := openStore(*storeKind, log)
	if err != nil {
		return fmt.Errorf("open %s layout store: %w", *storeKind, err)
	}
	defer func() {
		// the json store writes its last changes here, after every writer is gone
		if err := store.Close(); err != nil {
			log.Errorw("failed to close layout store", "error", err)
		}
	}()

	var reg *prometheus.Registry
	if *metricsAddr != "" {
		reg = metrics.NewRegistry()
	}

	manager, err := newManager(registry, store, reg, routes, log)
	if err != nil {
		return err
	}

	if *socketPath == "" {
		*socketPath, err = control.SocketPath()
		if err != nil {
			return fmt.Errorf("get socket path: %w", err)
		}
	}
	listener, err := control.Listen(*socketPath)
	if err != nil {
		return fmt.Errorf("open control socket: %w", err)
	}
	server := control.NewServer(manager, routes, log.Named("control"))

	log.Infow("started layoutd", "store", *storeKind, "routes", routes, "socket", *socketPath)

	errChan := make(chan error, 4)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		err := server.Serve(ctx, listener)
		if err != nil {
			errChan <- fmt.Errorf("control server: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	if jsonStore, ok := store.(*json.LayoutStore); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := jsonStore.SaveLooper(ctx)
			if err != nil {
				errChan <- fmt.Errorf("json save looper: %w", err)
			}
		}()
	}

	if reg != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := serveMetrics(ctx, *metricsAddr, metrics.Handler(reg))
			if err != nil {
				errChan <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	err = <-errChan
	if errors.Is(err, context.Canceled) {
		log.Info("shutting down")
		err = nil
	}

	stop()
	wg.Wait()
	return err
}

// newManager restores the manager from presets and store and attaches every
// subscriber. The manager is not safe for concurrent use, so this has to
// happen before the control server starts serving.
func newManager(registry *presets.PresetRegistry, store layouts.Store, reg *prometheus.Registry, routes []string, log *zap.SugaredLogger) (*layouts.Manager, error) {
	stored, err := store.LoadLayouts()
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}
	active, err := store.LoadActive()
	if err != nil {
		return nil, fmt.Errorf("load active layouts: %w", err)
	}

	manager := layouts.NewManager(nil, log.Named("manager"))
	manager.Restore(append(registry.Layouts(), stored...), active)
	layouts.NewPersister(store, log.Named("persister")).Attach(manager)

	if reg != nil {
		metrics.NewLayoutMetrics(reg).Attach(manager, routes)
	}

	return manager, nil
}

func loadPresets(path string) (*presets.PresetRegistry, error) {
	if path == "" {
		return presets.Default()
	}
	return presets.ParseFile(path)
}

func openStore(kind string, log *zap.SugaredLogger) (storeCloser, error) {
	switch kind {
	case "sqlite":
		path, err := xdg.StateFile("layoutd/layouts.db")
		if err != nil {
			return nil, fmt.Errorf("get state file: %w", err)
		}
		return sqlite.NewLayoutStore(path, log.Named("sqlite"))

	case "json":
		path, err := xdg.StateFile("layoutd/layouts.json")
		if err != nil {
			return nil, fmt.Errorf("get state file: %w", err)
		}
		return json.NewLayoutStore(path)

	case "memory":
		return nopCloser{memory.NewLayoutStore()}, nil
	}

	return nil, fmt.Errorf("unknown store %q", kind)
}

type nopCloser struct {
	*memory.LayoutStore
}

func (nopCloser) Close() error { return nil }

func serveMetrics(ctx context.Context, addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Keeping your layouts in order")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}

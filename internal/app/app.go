package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/plotsync/internal/comm"
	"github.com/five82/plotsync/internal/config"
	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/prefs"
	"github.com/five82/plotsync/internal/state"
	"github.com/five82/plotsync/internal/ui"
	"github.com/five82/plotsync/internal/widget"
)

const shutdownTimeout = 5 * time.Second

// Options configure the plotsync server.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/plotsync/prefs.toml
	Demo       bool   // register the demo scene at startup
	TUI        bool   // run the inspector in the foreground
	Stderr     io.Writer
}

// Run serves the websocket endpoint until the context is cancelled or, with
// TUI set, the inspector exits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	mgr := widget.NewManager(widget.Options{
		Module:        cfg.ModelModule,
		ModuleVersion: cfg.ModelModuleVersion,
	})
	hub := comm.NewHub(mgr)
	mgr.SetSink(hub)

	if opts.Demo {
		if _, err := BuildDemo(mgr); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	logging.Logger().Info("serving", "addr", ln.Addr().String(), "path", cfg.Path)

	if opts.TUI {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		userPrefs, _ := prefs.Load(opts.PrefsPath)
		store := &state.Store{}
		StartPoller(ctx, store, mgr, hub, defaultPollInterval)
		refresh(store, mgr, hub)

		err = ui.Run(ui.Options{
			Context:   ctx,
			Manager:   mgr,
			Store:     store,
			Config:    &cfg,
			Addr:      ln.Addr().String(),
			PollTick:  defaultPollInterval,
			Prefs:     userPrefs,
			PrefsPath: opts.PrefsPath,
		})
	} else {
		select {
		case <-ctx.Done():
		case err = <-serveErr:
		}
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logging.Logger().Warn("shutdown", "error", serr)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// setupLogging installs the shared logger. The inspector owns the terminal,
// so with TUI set logs go to the log file the inspector tails.
func setupLogging(cfg config.Config, opts Options) (func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if !opts.TUI {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		logging.SetLogger(logging.NewText(w, level))
		return func() {}, nil
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logging.SetLogger(logging.NewText(file, level))
	return func() {
		logging.SetLogger(nil)
		_ = file.Close()
	}, nil
}

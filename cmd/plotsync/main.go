package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/plotsync/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override plotsync config path (optional)")
	prefsPath := flag.String("prefs", "", "override inspector prefs path (optional)")
	demo := flag.Bool("demo", false, "register a demo lines and bars scene at startup")
	headless := flag.Bool("headless", false, "serve without the terminal inspector")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Demo:       *demo,
		TUI:        !*headless,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "plotsync: %v\n", err)
		return 1
	}
	return 0
}

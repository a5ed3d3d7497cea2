package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/nudge/internal/cli"
	"github.com/alexanderramin/nudge/internal/config"
	"github.com/alexanderramin/nudge/internal/db"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logOut, closeLog, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	store := repository.NewSQLiteStore(database)

	app := &cli.App{
		Board:         service.NewBoardService(store, service.NewLogUseCaseObserver(logOut)),
		Watcher:       repository.NewSQLiteWatcher(database),
		WidgetWidth:   cfg.Widget.Width,
		WidgetRefresh: cfg.Widget.RefreshInterval.Duration,
		WatchInterval: repository.DefaultWatchInterval,
	}

	// The bare command opens the board only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// openLog returns the use-case log destination, or nil when logging is off.
func openLog(cfg config.Log) (io.Writer, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}
	if cfg.File == "" {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

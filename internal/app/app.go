package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	xterm "golang.org/x/term"

	"github.com/kobzarvs/rawline/internal/config"
	"github.com/kobzarvs/rawline/internal/editor"
	"github.com/kobzarvs/rawline/internal/logger"
	"github.com/kobzarvs/rawline/internal/term"
	"github.com/kobzarvs/rawline/internal/vt"
)

var ErrNotTerminal = errors.New("standard input is not a terminal")

type Options struct {
	// ConfigPath overrides the default config.toml location.
	ConfigPath string
	Debug      bool

	// In and Out default to os.Stdin and os.Stdout.
	In  *os.File
	Out io.Writer
}

// App is the top-level runtime for rawline.
type App struct {
	opts Options
}

func New(opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &App{opts: opts}
}

func (a *App) Run() (err error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Debug || a.opts.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		err = multierr.Append(err, logger.Close())
	}()

	fd := int(a.opts.In.Fd())
	if !xterm.IsTerminal(fd) {
		return ErrNotTerminal
	}

	ctrl := term.NewController(term.NewDevice(fd))
	guard, gerr := term.Acquire(ctrl)
	if gerr != nil {
		logger.Warn("enable raw mode failed", "err", gerr)
	}
	defer guard.Recover()

	ed := editor.New(cfg, vt.NewClient(a.opts.In, a.opts.Out), ctrl)
	ed.Run()

	if err := guard.Release(); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

func (a *App) loadConfig() (config.Config, error) {
	if a.opts.ConfigPath != "" {
		return config.LoadFile(a.opts.ConfigPath)
	}
	return config.Load()
}

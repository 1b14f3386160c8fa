// Package app wires the pickat subsystems together: configuration,
// tool launcher, plugin host, and the action dispatcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pfclarke/pickat/internal/config"
	"github.com/pfclarke/pickat/internal/dispatcher"
	"github.com/pfclarke/pickat/internal/dispatcher/handlers/picker"
	"github.com/pfclarke/pickat/internal/document"
	"github.com/pfclarke/pickat/internal/launch"
	"github.com/pfclarke/pickat/internal/plugin"
	"github.com/pfclarke/pickat/internal/process"
)

// Errors surfaced by the application layer.
var (
	// ErrNoSelections is returned when an invocation carries no selection.
	ErrNoSelections = errors.New("at least one selection is required")

	// ErrLaunchFailed is returned when a picker action did not launch anything.
	ErrLaunchFailed = errors.New("picker launch failed")
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file, "" for the default location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// NoPlugins disables plugin loading regardless of configuration.
	NoPlugins bool
}

// Option customizes application construction.
type Option func(*App)

// WithSpawner replaces the real process spawner (used in tests).
func WithSpawner(s launch.Spawner) Option {
	return func(a *App) {
		a.spawner = s
	}
}

// WithLogOutput redirects log output.
func WithLogOutput(logger *Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// App owns the wired subsystems for one host process.
type App struct {
	mu         sync.Mutex
	cfg        *config.Config
	logger     *Logger
	supervisor *process.Supervisor
	spawner    launch.Spawner
	launcher   *launch.Launcher
	dispatcher *dispatcher.Dispatcher
	plugins    *plugin.Host
}

// New creates a fully wired application.
func New(opts Options, extra ...Option) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		supervisor: process.NewSupervisor(),
	}
	for _, opt := range extra {
		opt(a)
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if a.logger == nil {
		a.logger = NewLogger(ParseLogLevel(level), os.Stderr)
	} else {
		a.logger.SetLevel(ParseLogLevel(level))
	}

	if a.spawner == nil {
		a.spawner = launch.NewSpawner(a.supervisor)
	}
	a.launcher = launch.New(a.spawner)
	a.dispatcher = dispatcher.New()
	a.plugins = plugin.NewHost(a.launcher, a.logger)

	a.applyTools(cfg)

	if !opts.NoPlugins && !cfg.Plugins.Disabled && cfg.Plugins.Dir != "" {
		if err := a.plugins.LoadAll(cfg.Plugins.Dir); err != nil {
			a.logger.Warnf("plugins: %v", err)
		}
		a.registerHandlers()
	}

	return a, nil
}

// applyTools registers configured tools and their picker actions.
func (a *App) applyTools(cfg *config.Config) {
	a.launcher.UnregisterBySource("config")
	for name, t := range cfg.Tools {
		err := a.launcher.Register(launch.Tool{
			Name:     name,
			Command:  t.Command,
			Args:     t.Args,
			Disabled: t.Disabled,
			Source:   "config",
		})
		if err != nil {
			a.logger.Warnf("tool %s: %v", name, err)
		}
	}
	a.registerHandlers()
}

// registerHandlers makes sure every registered tool has a picker action.
func (a *App) registerHandlers() {
	for _, name := range a.launcher.Names() {
		h := picker.New(name)
		if !a.dispatcher.Has(h.ActionName()) {
			a.dispatcher.Register(h.ActionName(), h)
		}
	}
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.logger
}

// Launcher returns the tool launcher.
func (a *App) Launcher() *launch.Launcher {
	return a.launcher
}

// Tools returns the registered tool names, sorted.
func (a *App) Tools() []string {
	return a.launcher.Names()
}

// LoadDocument reads a file into a document. lineEnding may be "auto"
// (or "") to detect the convention, or an explicit name accepted by
// document.ParseLineEnding.
func (a *App) LoadDocument(path, lineEnding string) (*document.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var opts []document.Option
	if lineEnding != "" && lineEnding != "auto" {
		le, err := document.ParseLineEnding(lineEnding)
		if err != nil {
			return nil, err
		}
		opts = append(opts, document.WithLineEnding(le))
	}
	return document.New(path, content, opts...), nil
}

// ParseSelections parses selection specs into a selection set. A spec
// is either a raw offset ("42") or a zero-based "row:col" pair ("3:5").
// Offsets are clamped to the document.
func ParseSelections(doc *document.Document, specs []string) (*document.SelectionSet, error) {
	if len(specs) == 0 {
		return nil, ErrNoSelections
	}

	sels := make([]document.Selection, 0, len(specs))
	for _, spec := range specs {
		offset, err := parseSelection(doc, spec)
		if err != nil {
			return nil, err
		}
		sels = append(sels, document.NewCursorSelection(offset))
	}

	set := document.NewSelectionSetFromSlice(sels)
	set.Clamp(doc.Len())
	return set, nil
}

func parseSelection(doc *document.Document, spec string) (document.Offset, error) {
	if row, col, ok := strings.Cut(spec, ":"); ok {
		r, err := strconv.ParseUint(row, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("bad selection %q: %w", spec, err)
		}
		c, err := strconv.ParseUint(col, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("bad selection %q: %w", spec, err)
		}
		return doc.PointToOffset(document.Point{Line: uint32(r), Column: uint32(c)}), nil
	}

	offset, err := strconv.ParseInt(spec, 10, 64)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("bad selection %q", spec)
	}
	return offset, nil
}

// Launch dispatches the picker action for a tool against a document and
// selection set. It returns an error when nothing was launched.
func (a *App) Launch(tool string, doc *document.Document, sels *document.SelectionSet) error {
	action := dispatcher.NewAction("picker." + tool)
	ctx := &dispatcher.Context{
		Document:   doc,
		Selections: sels,
		Launcher:   a.launcher,
		Logger:     a.logger,
	}

	result := a.dispatcher.Dispatch(action, ctx)
	switch result.Status {
	case dispatcher.StatusOK:
		a.logger.Infof("launched %s for %d selection(s)", tool, len(result.Targets))
		return nil
	case dispatcher.StatusNoOp:
		return ErrNoSelections
	default:
		if result.Err != nil {
			return result.Err
		}
		return ErrLaunchFailed
	}
}

// WatchConfig reloads tools when the configuration file changes.
// Intended for long-lived embedding hosts; the one-shot CLI has no use
// for it.
func (a *App) WatchConfig(ctx context.Context, path string) error {
	if path == "" {
		path = config.DefaultPath()
	}
	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		a.logger.Infof("configuration reloaded")
		a.mu.Lock()
		a.cfg = cfg
		a.mu.Unlock()
		a.applyTools(cfg)
	}, config.WithErrorHandler(func(err error) {
		a.logger.Errorf("config reload: %v", err)
	}))
	if err != nil {
		return err
	}
	go w.Run(ctx)
	return nil
}

// Shutdown terminates tracked picker processes. Embedding hosts call
// this on exit; the CLI deliberately does not, so spawned pickers
// outlive the command that launched them.
func (a *App) Shutdown(timeout time.Duration) {
	a.supervisor.Shutdown(timeout)
}

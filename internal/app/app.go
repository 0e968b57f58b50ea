// Package app assembles lumen's services and adapters.
//
// Commands know their flags only after parsing, so construction is deferred
// to the Factory methods rather than done once in main.
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/adapters/driven/clock"
	"github.com/custodia-labs/lumen/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lumen/internal/adapters/driven/display"
	"github.com/custodia-labs/lumen/internal/adapters/driven/status"
	"github.com/custodia-labs/lumen/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lumen/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
	"github.com/custodia-labs/lumen/internal/core/services"
	"github.com/custodia-labs/lumen/internal/logger"
)

const dataDirName = "data"

// Options configures a runtime.
type Options struct {
	// ConfigDir holds config.toml and the data directory. Empty means ~/.lumen.
	ConfigDir string

	// Verbose lowers console logging to debug.
	Verbose bool

	// Console enables console logging.
	Console bool

	// ConsoleOut overrides the console log destination.
	ConsoleOut io.Writer

	// FileLog enables the log file from settings. Only the long-running
	// scheduler should own it, since each open truncates it.
	FileLog bool

	// Overrides replace schedule times for this process only.
	Overrides PolicyOverrides

	// WatchConfig warns when config.toml changes while running.
	WatchConfig bool

	// Status receives scheduler status. Nil logs it instead.
	Status driven.StatusSurface

	// Clock, Wake and Sleep replace the system implementations when set.
	Clock driven.Clock
	Wake  driven.WakeAction
	Sleep driven.SleepAction
}

// PolicyOverrides holds "HH:MM" values; empty fields keep the configured time.
type PolicyOverrides struct {
	WakeWeekday string
	WakeWeekend string
	Sleep       string
}

// Apply returns p with the overrides parsed and substituted.
func (o PolicyOverrides) Apply(p domain.Policy) (domain.Policy, error) {
	fields := []struct {
		name  string
		value string
		dst   *domain.TimeOfDay
	}{
		{"wake-weekday", o.WakeWeekday, &p.WakeWeekday},
		{"wake-weekend", o.WakeWeekend, &p.WakeWeekend},
		{"sleep", o.Sleep, &p.Sleep},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		t, err := domain.ParseTimeOfDay(f.value)
		if err != nil {
			return p, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = t
	}
	return p, nil
}

// App is a fully wired runtime.
type App struct {
	Settings        domain.Settings
	SettingsService driving.SettingsService
	Scheduler       driving.Scheduler
	Actions         driving.ActionService
	History         driving.HistoryService
	Clock           driven.Clock
	Logger          zerolog.Logger

	closers []func() error
}

// NewApp wraps already-built services. Used by tests and by Factory.
func NewApp(settings domain.Settings, closers ...func() error) *App {
	return &App{Settings: settings, Logger: zerolog.Nop(), closers: closers}
}

// Close releases the journal and log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Factory builds services on demand.
type Factory struct{}

// Settings opens the settings service for configDir.
func (Factory) Settings(configDir string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

// History opens the on-disk journal for reading.
func (f Factory) History(configDir string) (driving.HistoryService, func() error, error) {
	dir, err := resolveDir(configDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.NewStore(filepath.Join(dir, dataDirName))
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}
	return services.NewHistoryService(store.ActionJournal()), store.Close, nil
}

// Runtime builds the scheduler and its collaborators.
func (f Factory) Runtime(opts Options) (*App, error) {
	dir, err := resolveDir(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if settings.Policy, err = opts.Overrides.Apply(settings.Policy); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	logOpts := logger.Options{
		Verbose:    opts.Verbose,
		Console:    opts.Console,
		ConsoleOut: opts.ConsoleOut,
	}
	if opts.FileLog {
		logOpts.File = settings.Log.File
	}
	log, closeLog, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	a := NewApp(*settings, closeLog)
	a.SettingsService = settingsService
	a.Logger = log

	journal := f.openJournal(a, dir)

	a.Clock = opts.Clock
	if a.Clock == nil {
		a.Clock = clock.New()
	}
	wake := opts.Wake
	if wake == nil {
		wake = display.NewWakeAction(settings.Display, settings.Timing.NudgeHold, log)
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = display.NewSleepAction(settings.Display, log)
	}
	surface := opts.Status
	if surface == nil {
		surface = status.NewLogSurface(log)
	}

	dispatcher := services.NewDispatcher(wake, sleep, journal, a.Clock, settings.Timing, settings.Journal.Keep, log)
	waiter := services.NewWaiter(a.Clock, settings.Timing.SettleBuffer, log)

	if opts.WatchConfig {
		f.watchConfig(a, store, opts.Overrides, log)
	}

	a.Actions = dispatcher
	a.History = services.NewHistoryService(journal)
	a.Scheduler = services.NewScheduler(settings.Policy, a.Clock, waiter, dispatcher, surface, log)
	return a, nil
}

// openJournal opens the sqlite journal, falling back to memory when it is
// disabled or cannot be opened. The journal is never required to schedule.
func (Factory) openJournal(a *App, dir string) driven.ActionJournal {
	if !a.Settings.Journal.Enabled {
		return memory.NewActionJournal()
	}
	store, err := sqlite.NewStore(filepath.Join(dir, dataDirName))
	if err != nil {
		a.Logger.Warn().Err(err).Msg("journal unavailable, keeping history in memory")
		return memory.NewActionJournal()
	}
	a.closers = append(a.closers, store.Close)
	return store.ActionJournal()
}

// watchConfig reports edits to config.toml. The running policy is fixed for
// the life of the process, so changes are only announced.
func (Factory) watchConfig(a *App, store *file.ConfigStore, overrides PolicyOverrides, log zerolog.Logger) {
	running := a.Settings.Policy
	settings := a.SettingsService
	w, err := file.NewWatcher(store.Path(), file.DefaultDebounce, func() {
		checkConfig(store, settings, running, overrides, log)
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("cannot watch config file")
		return
	}
	a.closers = append(a.closers, w.Close)
}

// checkConfig reloads store and reports whether the stored schedule, with
// this run's overrides applied, still matches the running one.
func checkConfig(
	store driven.ConfigStore,
	settings driving.SettingsService,
	running domain.Policy,
	overrides PolicyOverrides,
	log zerolog.Logger,
) bool {
	if err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("config file unreadable; keeping the running schedule")
		return false
	}
	stored, err := settings.Get()
	if err != nil {
		log.Warn().Err(err).Msg("config file has errors; keeping the running schedule")
		return false
	}
	policy, err := overrides.Apply(stored.Policy)
	if err != nil {
		return false
	}
	if policy == running {
		log.Debug().Msg("config file changed; schedule unchanged")
		return true
	}
	log.Warn().
		Str("wake_weekday", policy.WakeWeekday.String()).
		Str("wake_weekend", policy.WakeWeekend.String()).
		Str("sleep", policy.Sleep.String()).
		Msg("schedule changed on disk; restart lumen run to apply it")
	return false
}

func resolveDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	dir, err := file.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return dir, nil
}

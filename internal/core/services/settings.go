package services

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyWakeWeekday  = "schedule.wake_weekday"
	KeyWakeWeekend  = "schedule.wake_weekend"
	KeySleep        = "schedule.sleep"
	keySettleBuffer = "timing.settle_buffer"
	keySleepDelay   = "timing.sleep_delay"
	keyNudgeHold    = "timing.nudge_hold"
	keyWakeCommand  = "display.wake_command"
	keySleepCommand = "display.sleep_command"
	keyJournalOn    = "journal.enabled"
	keyJournalKeep  = "journal.keep"
	keyLogFile      = "log.file"
)

const (
	defaultLogFile   = "lumen.latest.log"
	durationExample  = "e.g. 5s or 1m30s"
	timeOfDayExample = "HH:MM"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings. Missing keys take their defaults; present
// but malformed values are errors rather than silently replaced.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()
	settings := defaults

	var err error
	if settings.Policy.WakeWeekday, err = s.getTimeOfDay(KeyWakeWeekday, defaults.Policy.WakeWeekday); err != nil {
		return nil, err
	}
	if settings.Policy.WakeWeekend, err = s.getTimeOfDay(KeyWakeWeekend, defaults.Policy.WakeWeekend); err != nil {
		return nil, err
	}
	if settings.Policy.Sleep, err = s.getTimeOfDay(KeySleep, defaults.Policy.Sleep); err != nil {
		return nil, err
	}

	if settings.Timing.SettleBuffer, err = s.getDuration(keySettleBuffer, defaults.Timing.SettleBuffer); err != nil {
		return nil, err
	}
	if settings.Timing.SleepDelay, err = s.getDuration(keySleepDelay, defaults.Timing.SleepDelay); err != nil {
		return nil, err
	}
	if settings.Timing.NudgeHold, err = s.getDuration(keyNudgeHold, defaults.Timing.NudgeHold); err != nil {
		return nil, err
	}

	settings.Display.WakeCommand = s.configStore.GetStringSlice(keyWakeCommand)
	settings.Display.SleepCommand = s.configStore.GetStringSlice(keySleepCommand)

	settings.Journal.Enabled = s.getBool(keyJournalOn, defaults.Journal.Enabled)
	settings.Journal.Keep = s.getInt(keyJournalKeep, defaults.Journal.Keep)

	settings.Log.File = s.getLogFile(defaults.Log.File)

	return &settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.setPolicy(settings.Policy); err != nil {
		return err
	}

	if err := s.configStore.Set(keySettleBuffer, settings.Timing.SettleBuffer.String()); err != nil {
		return fmt.Errorf("save settle buffer: %w", err)
	}
	if err := s.configStore.Set(keySleepDelay, settings.Timing.SleepDelay.String()); err != nil {
		return fmt.Errorf("save sleep delay: %w", err)
	}
	if err := s.configStore.Set(keyNudgeHold, settings.Timing.NudgeHold.String()); err != nil {
		return fmt.Errorf("save nudge hold: %w", err)
	}

	if len(settings.Display.WakeCommand) > 0 {
		if err := s.configStore.Set(keyWakeCommand, settings.Display.WakeCommand); err != nil {
			return fmt.Errorf("save wake command: %w", err)
		}
	}
	if len(settings.Display.SleepCommand) > 0 {
		if err := s.configStore.Set(keySleepCommand, settings.Display.SleepCommand); err != nil {
			return fmt.Errorf("save sleep command: %w", err)
		}
	}

	if err := s.configStore.Set(keyJournalOn, settings.Journal.Enabled); err != nil {
		return fmt.Errorf("save journal enabled: %w", err)
	}
	if err := s.configStore.Set(keyJournalKeep, settings.Journal.Keep); err != nil {
		return fmt.Errorf("save journal keep: %w", err)
	}
	if err := s.configStore.Set(keyLogFile, settings.Log.File); err != nil {
		return fmt.Errorf("save log file: %w", err)
	}

	return nil
}

// SetPolicy validates and persists only the schedule.
func (s *SettingsService) SetPolicy(policy domain.Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	return s.setPolicy(policy)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	defaults := domain.DefaultSettings()
	if path := s.configStore.Path(); filepath.IsAbs(path) {
		defaults.Log.File = filepath.Join(filepath.Dir(path), defaultLogFile)
	}
	return defaults
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) setPolicy(policy domain.Policy) error {
	if err := s.configStore.Set(KeyWakeWeekday, policy.WakeWeekday.String()); err != nil {
		return fmt.Errorf("save weekday wake: %w", err)
	}
	if err := s.configStore.Set(KeyWakeWeekend, policy.WakeWeekend.String()); err != nil {
		return fmt.Errorf("save weekend wake: %w", err)
	}
	if err := s.configStore.Set(KeySleep, policy.Sleep.String()); err != nil {
		return fmt.Errorf("save sleep: %w", err)
	}
	return nil
}

// getTimeOfDay accepts quoted strings ("06:30") as well as TOML local times
// (06:30:00), which the config store hands back as a fmt.Stringer.
func (s *SettingsService) getTimeOfDay(key string, defaultVal domain.TimeOfDay) (domain.TimeOfDay, error) {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal, nil
	}

	var val string
	switch v := raw.(type) {
	case string:
		val = v
	case fmt.Stringer:
		val = v.String()
	default:
		return domain.TimeOfDay{}, fmt.Errorf("%w: %s has type %T (%s)", domain.ErrInvalidInput, key, raw, timeOfDayExample)
	}
	if val == "" {
		return defaultVal, nil
	}
	t, err := domain.ParseTimeOfDay(val)
	if err != nil {
		return domain.TimeOfDay{}, fmt.Errorf("%s (%s): %w", key, timeOfDayExample, err)
	}
	return t, nil
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q (%s)", domain.ErrInvalidInput, key, val, durationExample)
	}
	return d, nil
}

// getInt keeps an explicit 0; only a missing key takes the default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getLogFile distinguishes a missing key (default path) from an explicit
// empty string (file logging disabled).
func (s *SettingsService) getLogFile(defaultVal string) string {
	if _, exists := s.configStore.Get(keyLogFile); !exists {
		return defaultVal
	}
	return s.configStore.GetString(keyLogFile)
}

package driving

import "github.com/custodia-labs/lumen/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	// Malformed stored values are reported as errors.
	Get() (*domain.Settings, error)

	// Save persists settings after validating them.
	Save(settings *domain.Settings) error

	// SetPolicy validates and persists a new schedule policy.
	SetPolicy(policy domain.Policy) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}

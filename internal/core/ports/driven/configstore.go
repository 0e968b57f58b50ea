package driven

// ConfigStore holds configuration as flat dot-separated keys such as
// "schedule.sleep", whatever nesting the backing file uses.
type ConfigStore interface {
	// Get returns the raw value and whether the key is present. TOML local
	// times come back as fmt.Stringer values, integers as int64.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false when the key is missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns the string elements of an array, or nil.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load rereads configuration, replacing what is held.
	Load() error

	// Path returns the backing file, or ":memory:".
	Path() string
}

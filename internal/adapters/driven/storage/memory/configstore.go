package memory

import (
	"sync"

	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// memoryPath is reported by stores without a backing file.
const memoryPath = ":memory:"

// ConfigStore keeps flattened configuration keys in a map. Values are held as
// the TOML decoder would hand them back (int64 integers, []any arrays).
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]any
	path     string
	writeErr error
}

// NewConfigStore creates an empty store reporting ":memory:" as its path.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreAt(memoryPath)
}

// NewConfigStoreAt creates an empty store that reports path, so callers
// deriving locations from the config path can be exercised.
func NewConfigStoreAt(path string) *ConfigStore {
	return &ConfigStore{values: make(map[string]any), path: path}
}

// FailWrites makes every subsequent Set and Save return err. Nil clears it.
func (s *ConfigStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Get retrieves a value by its dotted key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value if it is a string.
func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt returns the value if it is an integer of either width.
func (s *ConfigStore) GetInt(key string) int {
	if n, ok := lookup[int64](s, key); ok {
		return int(n)
	}
	n, _ := lookup[int](s, key)
	return n
}

// GetBool returns the value if it is a boolean.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetStringSlice returns string elements of a []string or []any value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if strs, ok := lookup[[]string](s, key); ok {
		return strs
	}
	items, ok := lookup[[]any](s, key)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}

// Set stores a value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = value
	return nil
}

// Save is a no-op unless writes are failing.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeErr
}

// Load is a no-op.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns the path given at construction.
func (s *ConfigStore) Path() string {
	return s.path
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := val.(T)
	return t, ok
}

package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
	assert.Equal(t, "/home/user/.lumen/config.toml", NewConfigStoreAt("/home/user/.lumen/config.toml").Path())
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("schedule.sleep")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("schedule.sleep"))
	assert.Zero(t, store.GetInt("journal.keep"))
	assert.False(t, store.GetBool("journal.enabled"))
	assert.Nil(t, store.GetStringSlice("display.wake_command"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("schedule.sleep", "22:00"))
	require.NoError(t, store.Set("journal.keep", int64(250)))
	require.NoError(t, store.Set("journal.max", 40))
	require.NoError(t, store.Set("journal.enabled", true))
	require.NoError(t, store.Set("display.wake_command", []any{"xset", 1, "dpms"}))
	require.NoError(t, store.Set("display.sleep_command", []string{"pmset", "displaysleepnow"}))

	assert.Equal(t, "22:00", store.GetString("schedule.sleep"))
	assert.Equal(t, 250, store.GetInt("journal.keep"))
	assert.Equal(t, 40, store.GetInt("journal.max"))
	assert.True(t, store.GetBool("journal.enabled"))
	assert.Equal(t, []string{"xset", "dpms"}, store.GetStringSlice("display.wake_command"))
	assert.Equal(t, []string{"pmset", "displaysleepnow"}, store.GetStringSlice("display.sleep_command"))
}

func TestConfigStore_WrongTypesReadAsZero(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("schedule.sleep", 2200))
	require.NoError(t, store.Set("journal.keep", "lots"))

	assert.Empty(t, store.GetString("schedule.sleep"))
	assert.Zero(t, store.GetInt("journal.keep"))
	assert.False(t, store.GetBool("journal.keep"))
	assert.Nil(t, store.GetStringSlice("schedule.sleep"))
}

func TestConfigStore_FailWrites(t *testing.T) {
	store := NewConfigStore()
	boom := errors.New("disk full")

	store.FailWrites(boom)
	assert.ErrorIs(t, store.Set("schedule.sleep", "23:00"), boom)
	assert.ErrorIs(t, store.Save(), boom)
	_, ok := store.Get("schedule.sleep")
	assert.False(t, ok)

	store.FailWrites(nil)
	assert.NoError(t, store.Set("schedule.sleep", "23:00"))
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "23:00", store.GetString("schedule.sleep"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("journal.keep", int64(n))
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("journal.keep")
		}()
	}
	wg.Wait()

	_, ok := store.Get("journal.keep")
	assert.True(t, ok)
}

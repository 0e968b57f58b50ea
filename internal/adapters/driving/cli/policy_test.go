package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

func TestPolicyCmd_ShowsDefaults(t *testing.T) {
	env := setupTestFactory(t, friday)

	out, _, err := execute(context.Background(), "policy", "--config-dir", env.dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Weekday wake: 06:30")
	assert.Contains(t, out, "Weekend wake: 09:00")
	assert.Contains(t, out, "Sleep:        22:00")
	assert.Contains(t, out, filepath.Join(env.dir, "config.toml"))
	assert.Contains(t, out, "Status: valid")
}

func TestPolicyCmd_InvalidStoredPolicy(t *testing.T) {
	env := setupTestFactory(t, friday)
	env.writeConfig(t, "[schedule]\nsleep = \"08:00\"\n")

	out, _, err := execute(context.Background(), "policy", "--config-dir", env.dir)

	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
	assert.Contains(t, out, "Status: invalid")
}

func TestPolicySetCmd_RequiresTwoArgs(t *testing.T) {
	setupTestFactory(t, friday)

	_, _, err := execute(context.Background(), "policy", "set", "sleep")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestPolicySetCmd_Persists(t *testing.T) {
	env := setupTestFactory(t, friday)

	out, _, err := execute(context.Background(), "policy", "set", "--config-dir", env.dir, "sleep", "23:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Set sleep to 23:30")

	out, _, err = execute(context.Background(), "policy", "set", "--config-dir", env.dir, "WAKE-WEEKEND", "10:15")
	require.NoError(t, err)
	assert.Contains(t, out, "Set wake-weekend to 10:15")

	out, _, err = execute(context.Background(), "policy", "--config-dir", env.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Weekday wake: 06:30")
	assert.Contains(t, out, "Weekend wake: 10:15")
	assert.Contains(t, out, "Sleep:        23:30")
}

func TestPolicySetCmd_Errors(t *testing.T) {
	env := setupTestFactory(t, friday)

	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown key", "bedtime", "22:00", domain.ErrInvalidInput},
		{"malformed time", "sleep", "10pm", domain.ErrInvalidInput},
		{"sleep before wake", "sleep", "06:00", domain.ErrInvalidPolicy},
		{"wake after sleep", "wake-weekday", "23:00", domain.ErrInvalidPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(context.Background(), "policy", "set", "--config-dir", env.dir, tt.key, tt.value)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	out, _, err := execute(context.Background(), "policy", "--config-dir", env.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Sleep:        22:00", "rejected changes are not saved")
}

package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/specialization"
)

func TestParseConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := ParseConfig([]byte(`
role: manager
system_id: "01:02:03:04:05:06:07:08"
request_timeout: 5s
release_timeout: 1500ms
accept_unknown_config: false
config_store_dir: ` + dir + `
log_level: debug
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, RoleManager, cfg.Role)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, cfg.SystemID)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.ReleaseTimeout)
	assert.Equal(t, DefaultManagerConfig().AssociationTimeout, cfg.AssociationTimeout)
	assert.False(t, cfg.AcceptUnknownConfig)
	assert.NotNil(t, cfg.Logger)

	store, ok := cfg.ConfigStore.(*persistence.FileStore)
	require.True(t, ok)
	_, known, err := store.Lookup(nil, specialization.ThermometerConfigID)
	require.NoError(t, err)
	assert.True(t, known)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	want := DefaultManagerConfig()
	assert.Equal(t, want.SystemID, cfg.SystemID)
	assert.Equal(t, want.RequestTimeout, cfg.RequestTimeout)
	assert.True(t, cfg.AcceptUnknownConfig)
	assert.Nil(t, cfg.ConfigStore)
	assert.Nil(t, cfg.Logger)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad role", "role: observer"},
		{"short system id", "system_id: 0102"},
		{"bad hex", "system_id: zz02030405060708"},
		{"bad level", "log_level: loud"},
		{"bad yaml", "role: [manager"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("role: agent\nrequest_timeout: 2s\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, cfg.Role)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

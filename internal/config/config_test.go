package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := writeFile(t, `
user: alice
timezone: UTC
notify:
  schedule: "30 9 * * *"
  transport: telegram
telegram:
  token: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "30 9 * * *", cfg.Notify.Schedule)
	assert.Equal(t, "telegram", cfg.Notify.Transport)
	assert.Equal(t, "GYST Reminder", cfg.Notify.Title, "unset keys keep defaults")
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "user: alice\n")
	t.Setenv("GYST_USER", "bob")
	t.Setenv("GYST_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Notify.Transport = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timezone = "Not/AZone"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Notify.Workers = 0
	assert.Error(t, cfg.Validate())
}

func TestYAMLMasksToken(t *testing.T) {
	cfg := Default()
	cfg.Telegram.Token = "123:abc"
	b, err := cfg.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "123:abc")

	var back Config
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, cfg.Notify.Schedule, back.Notify.Schedule)
}

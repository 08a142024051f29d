package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // notify.timezone defaults to America/Chicago

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. GYST_NOTIFY_SCHEDULE.
const EnvPrefix = "GYST"

// DefaultPath returns ~/.gyst/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gyst", "config.yaml")
}

// Load returns the defaults overlaid with the YAML file at path (the default
// path when empty) and GYST_* environment variables. A missing file is not an
// error; an explicitly named one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v, cfg)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindKeys registers every key with its default so AutomaticEnv can see keys
// that the file does not mention.
func bindKeys(v *viper.Viper, cfg *Config) {
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("user", cfg.User)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("notify.schedule", cfg.Notify.Schedule)
	v.SetDefault("notify.timezone", cfg.Notify.Timezone)
	v.SetDefault("notify.title", cfg.Notify.Title)
	v.SetDefault("notify.body", cfg.Notify.Body)
	v.SetDefault("notify.transport", cfg.Notify.Transport)
	v.SetDefault("notify.workers", cfg.Notify.Workers)
	v.SetDefault("telegram.token", cfg.Telegram.Token)
	v.SetDefault("server.addr", cfg.Server.Addr)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.NotifyLocation(); err != nil {
		return err
	}
	switch c.Notify.Transport {
	case "log", "telegram":
	default:
		return fmt.Errorf("notify.transport: unknown transport %q", c.Notify.Transport)
	}
	if c.Notify.Workers < 1 {
		return fmt.Errorf("notify.workers: must be at least 1, got %d", c.Notify.Workers)
	}
	return nil
}

// Location is the zone whose calendar days define task periods.
func (c *Config) Location() (*time.Location, error) {
	return loadLocation("timezone", c.Timezone)
}

func (c *Config) NotifyLocation() (*time.Location, error) {
	return loadLocation("notify.timezone", c.Notify.Timezone)
}

func loadLocation(key, name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return loc, nil
}

// YAML renders the config as it would appear in config.yaml. Secrets are masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	if out.Telegram.Token != "" {
		out.Telegram.Token = "********"
	}
	b, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return b, nil
}

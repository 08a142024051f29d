package config

// Config is the effective gyst configuration.
type Config struct {
	DBPath   string `mapstructure:"db_path" yaml:"db_path"`
	User     string `mapstructure:"user" yaml:"user"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text | json
}

// NotifyConfig drives the daily reminder job.
type NotifyConfig struct {
	Schedule  string `mapstructure:"schedule" yaml:"schedule"` // cron spec
	Timezone  string `mapstructure:"timezone" yaml:"timezone"`
	Title     string `mapstructure:"title" yaml:"title"`
	Body      string `mapstructure:"body" yaml:"body"`
	Transport string `mapstructure:"transport" yaml:"transport"` // log | telegram
	Workers   int    `mapstructure:"workers" yaml:"workers"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token" yaml:"token"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		User:     "local",
		Timezone: "Local",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Notify: NotifyConfig{
			Schedule:  "0 11 * * *",
			Timezone:  "America/Chicago",
			Title:     "GYST Reminder",
			Body:      "Time to knock out a task!",
			Transport: "log",
			Workers:   4,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

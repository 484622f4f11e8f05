package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Telex    TelexConfig    `mapstructure:"telex"`
	Site     SiteConfig     `mapstructure:"site"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// PublicURL overrides the base URL derived from incoming requests.
	PublicURL string `mapstructure:"public_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// TMDBConfig holds catalog API configuration.
type TMDBConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	BearerToken string `mapstructure:"bearer_token"`
	ContentType string `mapstructure:"content_type"`
	Timeout     int    `mapstructure:"timeout"` // seconds
}

// TelexConfig holds callback delivery configuration.
type TelexConfig struct {
	Username  string `mapstructure:"username"`
	EventName string `mapstructure:"event_name"`
	Timeout   int    `mapstructure:"timeout"` // seconds
}

// SiteConfig holds the static parts of the HTTP surface.
type SiteConfig struct {
	RedirectURL string `mapstructure:"redirect_url"`
	StaticDir   string `mapstructure:"static_dir"`
	StaticURL   string `mapstructure:"static_url"`
}

// ScheduleConfig configures self-triggered ticks.
type ScheduleConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron"`
	ReturnURL  string `mapstructure:"return_url"`
	NumMovies  int    `mapstructure:"num_movies"`
	Language   string `mapstructure:"language"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TMDB: TMDBConfig{
			BaseURL:     "https://api.themoviedb.org/3",
			ContentType: "application/json",
			Timeout:     30,
		},
		Telex: TelexConfig{
			Username:  "Movie Trend",
			EventName: "Trending Movies Fetch",
			Timeout:   30,
		},
		Site: SiteConfig{
			RedirectURL: "https://www.themoviedb.org/",
			StaticURL:   "/static/",
		},
		Schedule: ScheduleConfig{
			Cron:      "0 9 * * 1",
			NumMovies: 10,
			Language:  "en",
		},
	}
}

// Load reads configuration from a .env file, the config file and environment
// variables. Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.movietrend")
	}

	v.SetEnvPrefix("MOVIETREND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults mirrors Default so AutomaticEnv can resolve every key.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.public_url", "")

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.bearer_token", EmbeddedTMDBToken)
	v.SetDefault("tmdb.content_type", d.TMDB.ContentType)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)

	v.SetDefault("telex.username", d.Telex.Username)
	v.SetDefault("telex.event_name", d.Telex.EventName)
	v.SetDefault("telex.timeout", d.Telex.Timeout)

	v.SetDefault("site.redirect_url", d.Site.RedirectURL)
	v.SetDefault("site.static_dir", "")
	v.SetDefault("site.static_url", d.Site.StaticURL)

	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.cron", d.Schedule.Cron)
	v.SetDefault("schedule.return_url", "")
	v.SetDefault("schedule.num_movies", d.Schedule.NumMovies)
	v.SetDefault("schedule.language", d.Schedule.Language)
	v.SetDefault("schedule.run_on_start", false)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

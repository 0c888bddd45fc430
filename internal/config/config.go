// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// Config holds all configuration for the pomo application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Weekly        WeeklyConfig       `mapstructure:"weekly"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig seeds the timer settings when none are stored yet.
type TimerConfig struct {
	FocusDuration     int      `mapstructure:"focus_duration"`
	BreakDuration     int      `mapstructure:"break_duration"`
	LongBreakDuration int      `mapstructure:"long_break_duration"`
	LongBreakInterval int      `mapstructure:"long_break_interval"`
	TickInterval      Duration `mapstructure:"tick_interval"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// WeeklyConfig holds the weekly goal.
type WeeklyConfig struct {
	Target int `mapstructure:"target"`
}

// ThemeConfig holds the timer screen colors.
type ThemeConfig struct {
	ColorFocus         string `mapstructure:"color_focus"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorLongBreak     string `mapstructure:"color_long_break"`
	ColorPaused        string `mapstructure:"color_paused"`
	ColorHelp          string `mapstructure:"color_help"`
	FocusGradientStart string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd   string `mapstructure:"focus_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:         "#FF6B6B",
		ColorBreak:         "#4ECDC4",
		ColorLongBreak:     "#5B8DEF",
		ColorPaused:        "#FFE66D",
		ColorHelp:          "#626262",
		FocusGradientStart: "#FF6B6B",
		FocusGradientEnd:   "#FFA07A",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#5B8DEF",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	s := domain.DefaultTimerSettings()
	return &Config{
		Timer: TimerConfig{
			FocusDuration:     s.FocusDuration,
			BreakDuration:     s.BreakDuration,
			LongBreakDuration: s.LongBreakDuration,
			LongBreakInterval: s.LongBreakInterval,
			TickInterval:      Duration(time.Second),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Weekly: WeeklyConfig{
			Target: domain.DefaultWeeklyTarget,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file,
// creating it with defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	setDefaults(v)

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes every key of cfg to configPath.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	v.Set("timer.focus_duration", cfg.Timer.FocusDuration)
	v.Set("timer.break_duration", cfg.Timer.BreakDuration)
	v.Set("timer.long_break_duration", cfg.Timer.LongBreakDuration)
	v.Set("timer.long_break_interval", cfg.Timer.LongBreakInterval)
	v.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("weekly.target", cfg.Weekly.Target)
	v.Set("theme.color_focus", cfg.Theme.ColorFocus)
	v.Set("theme.color_break", cfg.Theme.ColorBreak)
	v.Set("theme.color_long_break", cfg.Theme.ColorLongBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.focus_gradient_start", cfg.Theme.FocusGradientStart)
	v.Set("theme.focus_gradient_end", cfg.Theme.FocusGradientEnd)
	v.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	v.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)

	return v.WriteConfigAs(configPath)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// GetLogPath returns the path to the log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.log")
}

// TimerSettings converts the timer section to clamped domain settings.
func (c *Config) TimerSettings() domain.TimerSettings {
	return domain.ClampSettings(domain.TimerSettings{
		FocusDuration:     c.Timer.FocusDuration,
		BreakDuration:     c.Timer.BreakDuration,
		LongBreakDuration: c.Timer.LongBreakDuration,
		LongBreakInterval: c.Timer.LongBreakInterval,
	})
}

// TickInterval returns the scheduler interval, one second when unset.
func (c *Config) TickInterval() time.Duration {
	if d := time.Duration(c.Timer.TickInterval); d > 0 {
		return d
	}
	return time.Second
}

// WeeklyTarget returns the weekly goal, the default when unset.
func (c *Config) WeeklyTarget() int {
	if c.Weekly.Target > 0 {
		return c.Weekly.Target
	}
	return domain.DefaultWeeklyTarget
}

func expandHome(dir string) (string, error) {
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if dir == "" || dir == "~" {
		return filepath.Join(homeDir, ".pomo"), nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~/")), nil
}

// setDefaults sets default values on v.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("timer.focus_duration", d.Timer.FocusDuration)
	v.SetDefault("timer.break_duration", d.Timer.BreakDuration)
	v.SetDefault("timer.long_break_duration", d.Timer.LongBreakDuration)
	v.SetDefault("timer.long_break_interval", d.Timer.LongBreakInterval)
	v.SetDefault("timer.tick_interval", d.Timer.TickInterval.String())
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.sound", d.Notifications.Sound)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("weekly.target", d.Weekly.Target)

	v.SetDefault("theme.color_focus", d.Theme.ColorFocus)
	v.SetDefault("theme.color_break", d.Theme.ColorBreak)
	v.SetDefault("theme.color_long_break", d.Theme.ColorLongBreak)
	v.SetDefault("theme.color_paused", d.Theme.ColorPaused)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
	v.SetDefault("theme.focus_gradient_start", d.Theme.FocusGradientStart)
	v.SetDefault("theme.focus_gradient_end", d.Theme.FocusGradientEnd)
	v.SetDefault("theme.break_gradient_start", d.Theme.BreakGradientStart)
	v.SetDefault("theme.break_gradient_end", d.Theme.BreakGradientEnd)
}

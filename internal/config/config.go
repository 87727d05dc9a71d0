package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type AuthConfig struct {
	PasswordMinLen    int    `mapstructure:"password_min_len"`
	Pepper            string `mapstructure:"pepper"` // never stored in the database
	PBKDF2Iterations  int    `mapstructure:"pbkdf2_iterations"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
	MaxFailedAttempts int    `mapstructure:"max_failed_attempts"`
	LockoutSeconds    int    `mapstructure:"lockout_seconds"`
	AdminPassword     string `mapstructure:"admin_password"` // bootstrap password for admin registration
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "moneymate.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("auth.password_min_len", 10)
	v.SetDefault("auth.pepper", "")
	v.SetDefault("auth.pbkdf2_iterations", 310_000)
	v.SetDefault("auth.session_ttl_minutes", 120)
	v.SetDefault("auth.max_failed_attempts", 5)
	v.SetDefault("auth.lockout_seconds", 900) // 15 min
	v.SetDefault("auth.admin_password", "change-me-admin")
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// A missing file is not an error: defaults plus MONEYMATE_* environment
// overrides (e.g. MONEYMATE_AUTH_SESSION_TTL_MINUTES=30) still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("MONEYMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Default returns the built-in configuration without touching the
// filesystem or the environment. Convenient for library callers and tests.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return &c
}

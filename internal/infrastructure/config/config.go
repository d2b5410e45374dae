package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/asadlib11/arbolitics-dashboard/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Upstream  sharedConfig.UpstreamConfig  `mapstructure:"upstream"`
	Session   sharedConfig.SessionConfig   `mapstructure:"session"`
	Analytics sharedConfig.AnalyticsConfig `mapstructure:"analytics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("ARBOLITICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env vars are a complete configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Upstream defaults
	viper.SetDefault("upstream.base_url", "https://staging-api.arbolitics.com")
	viper.SetDefault("upstream.timeout_seconds", 10)

	// Session defaults
	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("session.redis.host", "localhost")
	viper.SetDefault("session.redis.port", 6379)
	viper.SetDefault("session.redis.password", "")
	viper.SetDefault("session.redis.db", 0)
	viper.SetDefault("session.cookie.domain", "")
	viper.SetDefault("session.cookie.path", "/")
	viper.SetDefault("session.cookie.secure", false)
	viper.SetDefault("session.cookie.same_site", "Lax")

	// Analytics defaults
	viper.SetDefault("analytics.location_id", 10)
	viper.SetDefault("analytics.device_ids", []string{"25_225", "25_226"})
}

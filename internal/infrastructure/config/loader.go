package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../configs/.env",
}

// LoadConfig loads configuration for the current environment. Lookup order:
// .env file, configs/<env>.yaml, then PN_-prefixed environment variables
// overriding everything, so credentials never need to live in a file.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is tolerated; defaults plus env vars are a complete
		// configuration for the memory-store development setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 5) // seconds

	v.SetDefault("gateway.provider", "suitpay")
	v.SetDefault("gateway.callTimeout", 10) // seconds
	v.SetDefault("gateway.enrichDelay", 2)  // seconds

	v.SetDefault("webhook.replayGrace", 5) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

// getEnvironment determines the environment from PN_ENV
func getEnvironment() string {
	env := os.Getenv("PN_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures sensitive environment variables override
// anything a config file carries
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"database.host":      "PN_DB_HOST",
		"database.username":  "PN_DB_USERNAME",
		"database.password":  "PN_DB_PASSWORD",
		"database.database":  "PN_DB_NAME",
		"database.sslMode":   "PN_DB_SSL_MODE",
		"database.driver":    "PN_DB_DRIVER",
		"gateway.baseUrl":    "PN_GATEWAY_BASE_URL",
		"gateway.publicKey":  "PN_GATEWAY_PUBLIC_KEY",
		"gateway.secretKey":  "PN_GATEWAY_SECRET_KEY",
		"gateway.callbackUrl": "PN_GATEWAY_CALLBACK_URL",
		"logger.level":       "PN_LOGGER_LEVEL",
	}
	for key, envName := range overrides {
		if value := os.Getenv(envName); value != "" {
			v.Set(key, value)
		}
	}
	if port := os.Getenv("PN_DB_PORT"); port != "" {
		v.Set("database.port", port)
	}
	if port := os.Getenv("PN_SERVER_PORT"); port != "" {
		v.Set("server.port", port)
	}
}

// processDurations converts raw numeric config values into time.Duration
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Gateway.CallTimeout = time.Duration(config.Gateway.CallTimeout) * time.Second
	config.Gateway.EnrichDelay = time.Duration(config.Gateway.EnrichDelay) * time.Second

	config.Webhook.ReplayGrace = time.Duration(config.Webhook.ReplayGrace) * time.Second
}

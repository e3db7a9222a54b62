package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Gateway     GatewayConfig  `mapstructure:"gateway"`
	Webhook     WebhookConfig  `mapstructure:"webhook"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings. Driver "memory"
// selects the in-process store and ignores the connection fields.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// GatewayConfig contains the payment provider settings. Credentials are
// externally supplied; their absence must not crash the process, it only
// makes gateway calls fail at call time.
type GatewayConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"baseUrl"`
	PublicKey   string        `mapstructure:"publicKey"`
	SecretKey   string        `mapstructure:"secretKey"`
	CallbackURL string        `mapstructure:"callbackUrl"`
	CallTimeout time.Duration `mapstructure:"callTimeout"` // seconds
	EnrichDelay time.Duration `mapstructure:"enrichDelay"` // seconds
}

// WebhookConfig contains webhook ingestion settings
type WebhookConfig struct {
	ReplayGrace time.Duration `mapstructure:"replayGrace"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Email    EmailConfig
	AI       AIConfig
	Storage  StorageConfig
	App      AppConfig
	Logging  LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret  string
	ServiceKey string
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	EventsTopic   string
	ConsumerGroup string
}

// RedisConfig holds Redis specific configuration
type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
	StatsTTL time.Duration
}

// EmailConfig holds email delivery configuration
type EmailConfig struct {
	Provider    string // "log" or "resend"
	From        string
	ResendKey   string
	SendTimeout time.Duration
}

// AIConfig holds AI image gateway configuration
type AIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// StorageConfig holds generated-file storage configuration
type StorageConfig struct {
	Type  string // "local" or "s3"
	Local LocalStorageConfig
	S3    S3StorageConfig
}

// LocalStorageConfig holds local filesystem storage configuration
type LocalStorageConfig struct {
	Path    string
	BaseURL string
}

// S3StorageConfig holds S3 storage configuration
type S3StorageConfig struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	BaseURL   string
}

// AppConfig holds application-level settings
type AppConfig struct {
	BaseURL string // public URL used to build links in notification emails
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.eventsTopic", "row-change-events")
	v.SetDefault("kafka.consumerGroup", "buildbid-notifications")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.statsTTL", "5m")

	// Email defaults
	v.SetDefault("email.provider", "log")
	v.SetDefault("email.from", "BuildBid <notifications@buildbid.dev>")
	v.SetDefault("email.sendTimeout", "5s")

	// AI gateway defaults
	v.SetDefault("ai.baseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("ai.model", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.maxRetries", 3)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local.path", "./data/floorplans")
	v.SetDefault("storage.local.baseURL", "http://localhost:8080/files")

	// App defaults
	v.SetDefault("app.baseURL", "http://localhost:8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

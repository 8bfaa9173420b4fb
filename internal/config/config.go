package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Catalog  CatalogConfig
	Chat     ChatConfig
	Wheel    WheelConfig
	Backup   BackupConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// CatalogConfig holds cosmetics catalog API configuration
type CatalogConfig struct {
	BaseURL string
	APIKey  string
	MockAPI bool
}

// ChatConfig holds community chat delivery configuration
type ChatConfig struct {
	WebhookURL     string
	BotName        string
	DefaultGateway string
	MockGateway    bool
}

// WheelConfig holds the wheel engine defaults. Individual fields can be
// overridden at runtime through the system settings document; zero values
// fall through to the engine's own defaults.
type WheelConfig struct {
	Size                      int
	PaletteColors             []string
	FontPath                  string
	FrameRate                 int
	SpinRevolutions           int
	SpinDurationFrames        int
	CelebrationDurationFrames int
	CelebrationLoops          int
	MaxFrames                 int
	RenderWorkers             int
	SpinTimeoutSeconds        int
}

// BackupConfig holds periodic JSON export configuration
type BackupConfig struct {
	Directory       string
	IntervalMinutes int
	Enabled         bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "giftwheel")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Catalog.MockAPI", true)
	viper.SetDefault("Chat.BotName", "GiftWheel")
	viper.SetDefault("Chat.DefaultGateway", "WEBHOOK")
	viper.SetDefault("Chat.MockGateway", true)
	viper.SetDefault("Wheel.Size", 480)
	viper.SetDefault("Wheel.FrameRate", 25)
	viper.SetDefault("Wheel.SpinRevolutions", 4)
	viper.SetDefault("Wheel.SpinDurationFrames", 100)
	viper.SetDefault("Wheel.CelebrationDurationFrames", 50)
	viper.SetDefault("Wheel.CelebrationLoops", 4)
	viper.SetDefault("Wheel.MaxFrames", 600)
	viper.SetDefault("Wheel.SpinTimeoutSeconds", 60)
	viper.SetDefault("Backup.Directory", "./backups")
	viper.SetDefault("Backup.IntervalMinutes", 360)
	viper.SetDefault("Backup.Enabled", false)
}

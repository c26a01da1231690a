package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppName       string `mapstructure:"APP_NAME"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	Port          int    `mapstructure:"PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	ClientOrigin  string `mapstructure:"CLIENT_ORIGIN"`
	StaticDir     string `mapstructure:"STATIC_DIR"`
	DatabaseType  string `mapstructure:"DB_DRIVER"`
	DatabaseDSN   string `mapstructure:"DB_DSN"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUser      string `mapstructure:"SMTP_USER"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPEmail     string `mapstructure:"SMTP_EMAIL"`
	CloudName     string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudAPIKey   string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudSecret   string `mapstructure:"CLOUDINARY_API_SECRET"`
	MaxUploadSize int64  `mapstructure:"MAX_UPLOAD_SIZE"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_NAME", "StudyHub")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", 5000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("STATIC_DIR", "../frontend/dist")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "studyhub.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SMTP_HOST", "smtp-relay.brevo.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_EMAIL", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("MAX_UPLOAD_SIZE", 20<<20)

	v.SetEnvPrefix("STUDYHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// .env is optional
	v.SetConfigFile(".env")
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch config.DatabaseType {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DatabaseType)
	}

	return &config, nil
}

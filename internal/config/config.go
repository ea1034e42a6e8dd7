package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		JWTExpiration int64  `yaml:"jwt_expiration_seconds"`
		SessionSecret string `yaml:"session_secret"`
	} `yaml:"auth"`
	CORS struct {
		Origin string `yaml:"origin"`
	} `yaml:"cors"`
	Hetzner struct {
		APIToken            string `yaml:"api_token"`
		BaseURL             string `yaml:"base_url"`
		SyncIntervalMinutes int    `yaml:"sync_interval_minutes"`
	} `yaml:"hetzner"`
	Telegram struct {
		Enabled     bool   `yaml:"enabled"`
		BotToken    string `yaml:"bot_token"`
		AdminChatID int64  `yaml:"admin_chat_id"`
	} `yaml:"telegram"`
}

// LoadConfig reads configuration from the specified YAML file, then applies
// environment overrides so deployments can keep secrets out of the file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if config.Database.URL == "" {
		return nil, fmt.Errorf("database url is not set")
	}
	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Auth.JWTExpiration = n
		}
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Auth.SessionSecret = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORS.Origin = v
	}
	if v := os.Getenv("HETZNER_API_TOKEN"); v != "" {
		c.Hetzner.APIToken = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Auth.JWTExpiration == 0 {
		c.Auth.JWTExpiration = 86400
	}
	if c.CORS.Origin == "" {
		c.CORS.Origin = "http://localhost:3000"
	}
}

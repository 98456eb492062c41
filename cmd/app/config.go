package main

import (
	"errors"
	"fmt"
	"strings"

	"companion_collection/internal/repository"
	"companion_collection/internal/service"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config  `mapstructure:"database"`
	Server   ServerConfig       `mapstructure:"server"`
	Auth     AuthConfig         `mapstructure:"auth"`
	Game     service.GameConfig `mapstructure:"game"`

	LogLevel string `mapstructure:"logLevel"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type AuthConfig struct {
	BotToken  string `mapstructure:"botToken"`
	DebugMode bool   `mapstructure:"debugMode"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.dialect", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")

	v.SetDefault("auth.debugMode", false)

	v.SetDefault("game.resetHour", 18)
	v.SetDefault("game.candidatesPerRoll", 5)
	v.SetDefault("game.maxCollectionSize", 30)
	v.SetDefault("game.bondPerInteraction", 1)
	v.SetDefault("game.defaultPageSize", 20)
	v.SetDefault("game.maxPageSize", 100)

	v.SetDefault("logLevel", "info")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(configPath)
	v.SetConfigType(configFormat)

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Game.ResetHour < 0 || cfg.Game.ResetHour > 23 {
		return nil, fmt.Errorf("game.resetHour must be within 0..23, got %d", cfg.Game.ResetHour)
	}
	if !cfg.Auth.DebugMode && cfg.Auth.BotToken == "" {
		return nil, errors.New("auth.botToken is required unless auth.debugMode is set")
	}

	return &cfg, nil
}

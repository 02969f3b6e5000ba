package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"io/fs"
	"os"
	"sync"
)

type AppConfig struct {
	Name string `yaml:"name" env:"APP_NAME" env-default:"qtest" validate:"required"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Path       string `yaml:"path" env:"LOG_PATH" env-default:"logs/qtest.log"`
	MaxSize    int    `yaml:"max_size" env:"LOG_MAX_SIZE" env-default:"5" validate:"gte=1"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"10" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" env:"LOG_MAX_AGE" env-default:"14" validate:"gte=0"`
	Compress   bool   `yaml:"compress" env:"LOG_COMPRESS" env-default:"true"`
}

type QueueConfig struct {
	// BufSize is the capacity of the buffer "rh" copies removed values into.
	BufSize int    `yaml:"buf_size" env:"QUEUE_BUF_SIZE" env-default:"1024" validate:"gte=1"`
	Prompt  string `yaml:"prompt" env:"QUEUE_PROMPT" env-default:"cmd> "`
}

type Config struct {
	App   AppConfig   `yaml:"app"`
	Log   LogConfig   `yaml:"log"`
	Queue QueueConfig `yaml:"queue"`
}

var validate = validator.New()

// Load reads the yaml file at path, applying env overrides and defaults.
// A missing file is not an error: env and defaults are used alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	_, err := os.Stat(path)
	switch {
	case path != "" && err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case path == "" || errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

var instance *Config
var once sync.Once

// GetConfig loads the config once per process and reuses it afterwards.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = Load(path)
	})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, errors.New("config was not loaded")
	}
	return instance, nil
}

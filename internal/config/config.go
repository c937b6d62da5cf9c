package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
		Debug  bool   `yaml:"debug"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`

	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`

	Storage struct {
		Default string                `yaml:"default"`
		Disks   map[string]DiskConfig `yaml:"disks"`
	} `yaml:"storage"`

	Upload struct {
		MaxImageSize      int64    `yaml:"max_image_size"` // bytes
		AllowedImageTypes []string `yaml:"allowed_image_types"`
		RecipeDirectory   string   `yaml:"recipe_directory"`
	} `yaml:"upload"`

	Pagination struct {
		DefaultPageSize int `yaml:"default_page_size"`
	} `yaml:"pagination"`

	FirstAdmin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

// DiskConfig описывает один именованный диск хранилища
type DiskConfig struct {
	Type       string `yaml:"type"`      // local, memory, s3, gcs
	BasePath   string `yaml:"base_path"` // For local storage
	BaseURL    string `yaml:"base_url"`  // Public URL base
	Bucket     string `yaml:"bucket"`    // For S3/GCS
	Region     string `yaml:"region"`    // For S3
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Endpoint   string `yaml:"endpoint"`   // For R2 or custom S3
	Credential string `yaml:"credential"` // GCS service account JSON
}

// Load читает .env, YAML-файл и переменные окружения (в этом порядке приоритета снизу вверх)
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults возвращает конфиг со значениями по умолчанию
func Defaults() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"

	cfg.Database.Driver = "postgres"

	cfg.JWT.TTL = 60
	cfg.JWT.Issuer = "recipehub"

	cfg.Log.Level = "info"
	cfg.Log.MaxSize = 100
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAge = 28

	cfg.Storage.Default = "public"
	cfg.Storage.Disks = map[string]DiskConfig{
		"public": {Type: "local", BasePath: "./storage/app/public", BaseURL: "/storage"},
	}

	cfg.Upload.MaxImageSize = 2048 * 1024 // 2MB
	cfg.Upload.AllowedImageTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml",
	}
	cfg.Upload.RecipeDirectory = "recipes"

	cfg.Pagination.DefaultPageSize = 10
	return &cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("STORAGE_DEFAULT_DISK"); v != "" {
		cfg.Storage.Default = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdmin.Email = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdmin.Password = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "database url is required")
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt secret is required")
	}
	if _, ok := c.Storage.Disks[c.Storage.Default]; !ok {
		problems = append(problems, fmt.Sprintf("default disk %q is not configured", c.Storage.Default))
	}
	if c.Pagination.DefaultPageSize < 1 {
		problems = append(problems, "pagination.default_page_size must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type ServerConfig struct {
	Port      int    `yaml:"port"`
	Env       string `yaml:"env"`
	ClientURL string `yaml:"client_url"`
}

type AuthConfig struct {
	AccessSecret  string        `yaml:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type AIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type WorkersConfig struct {
	SweepInterval         time.Duration `yaml:"sweep_interval"`
	NotificationRetention time.Duration `yaml:"notification_retention"`
	ReminderInterval      time.Duration `yaml:"reminder_interval"`
	ReminderWindow        time.Duration `yaml:"reminder_window"`
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth    AuthConfig    `yaml:"auth"`
	Email   EmailConfig   `yaml:"email"`
	AI      AIConfig      `yaml:"ai"`
	Workers WorkersConfig `yaml:"workers"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == EnvDevelopment
}

// LoadConfig reads CONFIG_PATH (or config/config.yaml) and panics on failure.
func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	cfg, err := Load(path)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Load decodes the YAML file at path, applies defaults and then environment
// overrides (.env is loaded first when present).
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("[config] %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	applyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = EnvDevelopment
	}
	if cfg.Server.ClientURL == "" {
		cfg.Server.ClientURL = "http://localhost:3000"
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = 15 * time.Minute
	}
	if cfg.Auth.RefreshTTL == 0 {
		cfg.Auth.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60 * time.Second
	}
	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = time.Hour
	}
	if cfg.Workers.NotificationRetention == 0 {
		cfg.Workers.NotificationRetention = 30 * 24 * time.Hour
	}
	if cfg.Workers.ReminderInterval == 0 {
		cfg.Workers.ReminderInterval = 15 * time.Minute
	}
	if cfg.Workers.ReminderWindow == 0 {
		cfg.Workers.ReminderWindow = 24 * time.Hour
	}
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"APP_ENV":            &cfg.Server.Env,
		"CLIENT_URL":         &cfg.Server.ClientURL,
		"DATABASE_URL":       &cfg.Database.DSN,
		"JWT_ACCESS_SECRET":  &cfg.Auth.AccessSecret,
		"JWT_REFRESH_SECRET": &cfg.Auth.RefreshSecret,
		"GEMINI_API_KEY":     &cfg.AI.APIKey,
		"SMTP_HOST":          &cfg.Email.SMTPHost,
		"SMTP_USER":          &cfg.Email.SMTPUser,
		"SMTP_PASSWORD":      &cfg.Email.SMTPPassword,
		"SMTP_FROM":          &cfg.Email.FromEmail,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PORT":      &cfg.Server.Port,
		"SMTP_PORT": &cfg.Email.SMTPPort,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("auth.access_secret and auth.refresh_secret are required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("auth.access_secret and auth.refresh_secret must differ")
	}
	switch c.Server.Env {
	case EnvDevelopment, EnvProduction, "test":
	default:
		return fmt.Errorf("unknown server.env %q", c.Server.Env)
	}
	return nil
}

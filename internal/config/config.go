// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/aikya/companion/internal/push"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required,oneof=sqlite"`
	Filename string `yaml:"filename" validate:"required"`
}

type BackendConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type PushConfig struct {
	VAPIDPublicKey  string `yaml:"vapid_public_key"`
	VAPIDPrivateKey string `yaml:"-"` // Loaded from environment
	Subject         string `yaml:"subject"`
	TTL             int    `yaml:"ttl" validate:"gte=0"`
}

type WorkerConfig struct {
	CachePrefix  string `yaml:"cache_prefix" validate:"required"`
	CacheVersion string `yaml:"cache_version" validate:"required"`
}

type SearchConfig struct {
	Debounce       time.Duration `yaml:"debounce" validate:"gte=0"`
	MinQueryLength int           `yaml:"min_query_length" validate:"gte=1"`
}

type SchedulerConfig struct {
	DashboardRefresh string        `yaml:"dashboard_refresh"`
	Digest           string        `yaml:"digest"`
	SessionSweep     string        `yaml:"session_sweep"`
	SessionIdle      time.Duration `yaml:"session_idle" validate:"gte=0"`
}

// EmailConfig enables the digest email. Credentials come from the
// environment; without them the default AWS credential chain applies.
type EmailConfig struct {
	Sender          string   `yaml:"sender" validate:"omitempty,email"`
	Region          string   `yaml:"region"`
	Recipients      []string `yaml:"digest_recipients" validate:"dive,email"`
	AccessKeyID     string   `yaml:"-"` // Loaded from environment
	SecretAccessKey string   `yaml:"-"` // Loaded from environment
}

// RateLimitConfig bounds subscription requests per client address.
type RateLimitConfig struct {
	SubscribeMax int           `yaml:"subscribe_max" validate:"gte=1"`
	Window       time.Duration `yaml:"window" validate:"gt=0"`
	TrustProxy   bool          `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name" validate:"required"`
		ShortName   string `yaml:"short_name"`
		Environment string `yaml:"environment" validate:"oneof=development production test"`
		Port        int    `yaml:"port" validate:"required,min=1,max=65535"`
		BaseURL     string `yaml:"base_url"`
		StaticDir   string `yaml:"static_dir" validate:"required"`
		ThemeColor  string `yaml:"theme_color"`
	} `yaml:"app"`

	Backend   BackendConfig   `yaml:"backend"`
	Database  DatabaseConfig  `yaml:"database"`
	Push      PushConfig      `yaml:"push"`
	Worker    WorkerConfig    `yaml:"worker"`
	Search    SearchConfig    `yaml:"search"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Email     EmailConfig     `yaml:"email"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
	} `yaml:"cors"`

	Features struct {
		EnableDigest bool `yaml:"enable_digest"`
		EnableDebug  bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "Aikya Companion"
	cfg.App.ShortName = "Aikya"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.StaticDir = "build/bin/static"
	cfg.App.ThemeColor = "#2f6f4f"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = "build/db/companion.db"
	cfg.Push.Subject = "admin@example.com"
	cfg.Push.TTL = 3600
	cfg.Worker.CachePrefix = "aikya"
	cfg.Worker.CacheVersion = "v2"
	cfg.Search.Debounce = 500 * time.Millisecond
	cfg.Search.MinQueryLength = 3
	cfg.Scheduler.DashboardRefresh = "*/5 * * * *"
	cfg.Scheduler.Digest = "0 7 * * *"
	cfg.Scheduler.SessionSweep = "*/15 * * * *"
	cfg.Scheduler.SessionIdle = 2 * time.Hour
	cfg.RateLimit.SubscribeMax = 20
	cfg.RateLimit.Window = time.Hour
	return &cfg
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Push.VAPIDPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	if value, ok := os.LookupEnv("VAPID_PUBLIC_KEY"); ok {
		c.Push.VAPIDPublicKey = value
	}
	if value, ok := os.LookupEnv("BACKEND_URL"); ok {
		c.Backend.URL = value
	}
	if value, ok := os.LookupEnv("APP_ENVIRONMENT"); ok {
		c.App.Environment = value
	}
	c.Email.AccessKeyID = os.Getenv("AWS_SES_ACCESS_KEY_ID")
	c.Email.SecretAccessKey = os.Getenv("AWS_SES_SECRET_ACCESS_KEY")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	if key := strings.TrimSpace(c.Push.VAPIDPublicKey); key != "" {
		if _, err := push.DecodeApplicationServerKey(key); err != nil {
			return fmt.Errorf("push.vapid_public_key: %w", err)
		}
	}
	if c.Push.VAPIDPrivateKey != "" && strings.TrimSpace(c.Push.VAPIDPublicKey) == "" {
		return errors.New("push.vapid_public_key is required when VAPID_PRIVATE_KEY is set")
	}

	schedules := map[string]string{
		"scheduler.dashboard_refresh": c.Scheduler.DashboardRefresh,
		"scheduler.digest":            c.Scheduler.Digest,
		"scheduler.session_sweep":     c.Scheduler.SessionSweep,
	}
	for field, expr := range schedules {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%s: invalid cron expression %q: %w", field, expr, err)
		}
	}

	return nil
}

// DigestEmailEnabled reports whether digest emails have a sender, a region
// and somewhere to go.
func (c *Config) DigestEmailEnabled() bool {
	return c.Email.Sender != "" && c.Email.Region != "" && len(c.Email.Recipients) > 0
}

// PushEnabled reports whether the server holds a full VAPID key pair.
func (c *Config) PushEnabled() bool {
	return strings.TrimSpace(c.Push.VAPIDPublicKey) != "" && c.Push.VAPIDPrivateKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return errors.New(strings.Join(messages, "; "))
}

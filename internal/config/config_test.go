package config

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testPublicKey(t *testing.T) string {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsAndEnvironment(t *testing.T) {
	publicKey := testPublicKey(t)
	t.Setenv("VAPID_PRIVATE_KEY", "private-key")
	t.Setenv("VAPID_PUBLIC_KEY", publicKey)

	path := writeConfig(t, `
app:
  name: Front Desk
  port: 9090
backend:
  url: https://script.example.com/exec
  timeout: 15s
search:
  debounce: 250ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "Front Desk" || cfg.App.Port != 9090 {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("backend timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Search.Debounce != 250*time.Millisecond || cfg.Search.MinQueryLength != 3 {
		t.Fatalf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Worker.CachePrefix != "aikya" || cfg.Worker.CacheVersion != "v2" {
		t.Fatalf("unexpected worker config: %+v", cfg.Worker)
	}
	if !cfg.PushEnabled() {
		t.Fatal("expected push to be enabled with both keys")
	}
}

func TestLoadReadsDotEnvNextToConfig(t *testing.T) {
	path := writeConfig(t, "app:\n  name: Desk\n")
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := os.WriteFile(envPath, []byte("BACKEND_URL=https://env.example.com/exec\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("BACKEND_URL") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "https://env.example.com/exec" {
		t.Fatalf("backend url = %q", cfg.Backend.URL)
	}
}

func TestValidateRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing_name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: "Name",
		},
		{
			name:    "bad_port",
			mutate:  func(c *Config) { c.App.Port = 70000 },
			wantErr: "Port",
		},
		{
			name:    "unsupported_driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "Driver",
		},
		{
			name:    "bad_vapid_key",
			mutate:  func(c *Config) { c.Push.VAPIDPublicKey = "not-a-key" },
			wantErr: "vapid_public_key",
		},
		{
			name:    "private_without_public",
			mutate:  func(c *Config) { c.Push.VAPIDPrivateKey = "secret" },
			wantErr: "vapid_public_key",
		},
		{
			name:    "bad_cron",
			mutate:  func(c *Config) { c.Scheduler.Digest = "every morning" },
			wantErr: "scheduler.digest",
		},
		{
			name:    "short_query_length",
			mutate:  func(c *Config) { c.Search.MinQueryLength = 0 },
			wantErr: "MinQueryLength",
		},
		{
			name:    "empty_cors_origin",
			mutate:  func(c *Config) { c.CORS.AllowedOrigins = []string{""} },
			wantErr: "AllowedOrigins",
		},
		{
			name:    "zero_subscribe_limit",
			mutate:  func(c *Config) { c.RateLimit.SubscribeMax = 0 },
			wantErr: "SubscribeMax",
		},
		{
			name:    "bad_digest_recipient",
			mutate:  func(c *Config) { c.Email.Recipients = []string{"front desk"} },
			wantErr: "Recipients",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmptyScheduleDisablesJob(t *testing.T) {
	cfg := Default()
	cfg.Scheduler.Digest = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

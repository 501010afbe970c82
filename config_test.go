package main

import (
	"os"
	"path/filepath"
	"testing"
)

const testSecret = "test-secret-key-1234567890123456789012"

func TestLoadConfigDefaults(t *testing.T) {
	os.Setenv("SECRET_KEY", testSecret)
	defer os.Unsetenv("SECRET_KEY")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Interface != ":3025" {
		t.Errorf("Expected default interface :3025, got %s", cfg.Server.Interface)
	}
	if cfg.Delivery.DefaultLimit != 10 || cfg.Delivery.MaxLimit != 1000 {
		t.Errorf("Unexpected delivery defaults: %+v", cfg.Delivery)
	}
	if cfg.Storage.ImageDir != "images" {
		t.Errorf("Expected default image dir, got %s", cfg.Storage.ImageDir)
	}
	if cfg.Storage.SweepInterval != 0 {
		t.Errorf("Expected sweeper disabled by default, got %d", cfg.Storage.SweepInterval)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	os.Setenv("SECRET_KEY", testSecret)
	defer os.Unsetenv("SECRET_KEY")

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"server": {"interface": ":9090", "port": 9090},
		"storage": {"image_dir": "uploads", "consumer_base_url": "http://dash.local"},
		"delivery": {"default_limit": 25, "max_limit": 500}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Interface != ":9090" {
		t.Errorf("Expected interface from file, got %s", cfg.Server.Interface)
	}
	if cfg.Storage.ImageDir != "uploads" {
		t.Errorf("Expected image dir from file, got %s", cfg.Storage.ImageDir)
	}
	if cfg.Delivery.DefaultLimit != 25 || cfg.Delivery.MaxLimit != 500 {
		t.Errorf("Expected delivery limits from file, got %+v", cfg.Delivery)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	os.Setenv("SECRET_KEY", testSecret)
	defer os.Unsetenv("SECRET_KEY")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if cfg.Database.Path != "data.db" {
		t.Errorf("Expected default db path, got %s", cfg.Database.Path)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Setenv("SECRET_KEY", testSecret)
	os.Setenv("PORT", "8080")
	os.Setenv("IMAGE_DIR", "/var/images")
	os.Setenv("CONSUMER_BASE_URL", "http://consumer.local/")
	os.Setenv("DELIVERY_MAX_LIMIT", "200")
	defer func() {
		os.Unsetenv("SECRET_KEY")
		os.Unsetenv("PORT")
		os.Unsetenv("IMAGE_DIR")
		os.Unsetenv("CONSUMER_BASE_URL")
		os.Unsetenv("DELIVERY_MAX_LIMIT")
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Interface != ":8080" || cfg.Server.Port != 8080 {
		t.Errorf("PORT override not applied: %+v", cfg.Server)
	}
	if cfg.Storage.ImageDir != "/var/images" {
		t.Errorf("IMAGE_DIR override not applied: %s", cfg.Storage.ImageDir)
	}
	// Trailing slash is trimmed so URL concatenation stays clean
	if cfg.Storage.ConsumerBaseURL != "http://consumer.local" {
		t.Errorf("CONSUMER_BASE_URL not normalized: %s", cfg.Storage.ConsumerBaseURL)
	}
	if cfg.Delivery.MaxLimit != 200 {
		t.Errorf("DELIVERY_MAX_LIMIT override not applied: %d", cfg.Delivery.MaxLimit)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"missing secret", func(c *ServerConfig) { c.Security.SecretKey = "" }},
		{"short secret", func(c *ServerConfig) { c.Security.SecretKey = "short" }},
		{"https without certs", func(c *ServerConfig) { c.Security.EnableHTTPS = true }},
		{"empty image dir", func(c *ServerConfig) { c.Storage.ImageDir = "" }},
		{"empty base url", func(c *ServerConfig) { c.Storage.ConsumerBaseURL = "" }},
		{"zero default limit", func(c *ServerConfig) { c.Delivery.DefaultLimit = 0 }},
		{"max below default", func(c *ServerConfig) { c.Delivery.MaxLimit = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{
				Security: SecuritySettings{SecretKey: testSecret},
				Storage:  StorageSettings{ImageDir: "images", ConsumerBaseURL: "http://localhost:3025"},
				Delivery: DeliverySettings{DefaultLimit: 10, MaxLimit: 1000},
			}
			tt.mutate(cfg)
			if err := validateConfig(cfg); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds all server configuration
type ServerConfig struct {
	Server   ServerSettings   `json:"server"`
	Database DatabaseSettings `json:"database"`
	Security SecuritySettings `json:"security"`
	Storage  StorageSettings  `json:"storage"`
	Delivery DeliverySettings `json:"delivery"`
}

// ServerSettings contains server-specific configuration
type ServerSettings struct {
	Interface    string `json:"interface"`
	Port         int    `json:"port"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	IdleTimeout  int    `json:"idle_timeout"`
}

// DatabaseSettings contains database configuration
type DatabaseSettings struct {
	Path string `json:"path"`
}

// SecuritySettings contains security-related configuration
type SecuritySettings struct {
	SecretKey         string   `json:"-"` // Never serialize secret key
	SessionMaxAge     int      `json:"session_max_age"`
	RateLimitRequests int      `json:"rate_limit_requests"`
	RateLimitWindow   int      `json:"rate_limit_window"`
	EnableHTTPS       bool     `json:"enable_https"`
	CertFile          string   `json:"cert_file"`
	KeyFile           string   `json:"key_file"`
	AllowedOrigins    []string `json:"allowed_origins"`
}

// StorageSettings contains image storage configuration
type StorageSettings struct {
	ImageDir        string `json:"image_dir"`
	ConsumerBaseURL string `json:"consumer_base_url"`
	SweepInterval   int    `json:"sweep_interval"` // seconds; 0 disables the orphan sweeper
}

// DeliverySettings bounds the /consume batch size
type DeliverySettings struct {
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*ServerConfig, error) {
	// Default configuration
	config := &ServerConfig{
		Server: ServerSettings{
			Interface:    ":3025",
			Port:         3025,
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
		},
		Database: DatabaseSettings{
			Path: "data.db",
		},
		Security: SecuritySettings{
			SessionMaxAge:     86400, // 24 hours
			RateLimitRequests: 100,
			RateLimitWindow:   60, // 1 minute
			EnableHTTPS:       false,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:3025",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:3025",
			},
		},
		Storage: StorageSettings{
			ImageDir:        "images",
			ConsumerBaseURL: "http://localhost:3025",
			SweepInterval:   0,
		},
		Delivery: DeliverySettings{
			DefaultLimit: 10,
			MaxLimit:     1000,
		},
	}

	// Load from file if it exists
	if configPath != "" {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %v", err)
		}
	}

	// Override with environment variables
	loadConfigFromEnv(config)

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from JSON file
func loadConfigFromFile(config *ServerConfig, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(config)
}

// loadConfigFromEnv loads configuration from environment variables
func loadConfigFromEnv(config *ServerConfig) {
	// Security settings (most important)
	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		config.Security.SecretKey = secretKey
	}

	// Server settings
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
			config.Server.Interface = fmt.Sprintf(":%d", p)
		}
	}
	if iface := os.Getenv("SERVER_INTERFACE"); iface != "" {
		config.Server.Interface = iface
	}

	// Database settings
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.Database.Path = dbPath
	}

	// Storage settings
	if imageDir := os.Getenv("IMAGE_DIR"); imageDir != "" {
		config.Storage.ImageDir = imageDir
	}
	if baseURL := os.Getenv("CONSUMER_BASE_URL"); baseURL != "" {
		config.Storage.ConsumerBaseURL = strings.TrimRight(baseURL, "/")
	}
	if sweep := os.Getenv("SWEEP_INTERVAL"); sweep != "" {
		if s, err := strconv.Atoi(sweep); err == nil {
			config.Storage.SweepInterval = s
		}
	}

	// Delivery settings
	if maxLimit := os.Getenv("DELIVERY_MAX_LIMIT"); maxLimit != "" {
		if m, err := strconv.Atoi(maxLimit); err == nil {
			config.Delivery.MaxLimit = m
		}
	}

	// Security settings
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.Security.AllowedOrigins = strings.Split(origins, ",")
	}
	if httpsEnabled := os.Getenv("ENABLE_HTTPS"); httpsEnabled != "" {
		config.Security.EnableHTTPS = strings.ToLower(httpsEnabled) == "true"
	}
	if certFile := os.Getenv("CERT_FILE"); certFile != "" {
		config.Security.CertFile = certFile
	}
	if keyFile := os.Getenv("KEY_FILE"); keyFile != "" {
		config.Security.KeyFile = keyFile
	}
}

// validateConfig validates the configuration
func validateConfig(config *ServerConfig) error {
	if config.Security.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	if len(config.Security.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters long")
	}

	if config.Security.EnableHTTPS {
		if config.Security.CertFile == "" || config.Security.KeyFile == "" {
			return fmt.Errorf("CERT_FILE and KEY_FILE are required when HTTPS is enabled")
		}
	}

	if config.Storage.ImageDir == "" {
		return fmt.Errorf("image directory is required")
	}

	if config.Storage.ConsumerBaseURL == "" {
		return fmt.Errorf("consumer base URL is required")
	}

	if config.Delivery.DefaultLimit < 1 {
		return fmt.Errorf("delivery default limit must be at least 1")
	}

	if config.Delivery.MaxLimit < config.Delivery.DefaultLimit {
		return fmt.Errorf("delivery max limit must be >= default limit")
	}

	return nil
}

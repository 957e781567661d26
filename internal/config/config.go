// Package config provides configuration loading and validation from the
// environment for the resume builder server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP server and database settings.
type ServerConfig struct {
	Port        int
	DatabaseURL string
}

// NewServerConfig reads PORT (default: 8080) and DATABASE_URL (required).
func NewServerConfig() (*ServerConfig, error) {
	port, err := intFromEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	cfg := &ServerConfig{
		Port:        port,
		DatabaseURL: databaseURL,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// UploadConfig holds settings for the upload/autofill path.
type UploadConfig struct {
	// ParserURL points at the external resume parsing endpoint. When
	// empty, uploads are parsed locally through the LLM extractor.
	ParserURL string
	MaxBytes  int64
	Timeout   time.Duration
}

// NewUploadConfig reads UPLOAD_PARSER_URL (optional), UPLOAD_MAX_BYTES
// (default: 10 MiB), and UPLOAD_TIMEOUT_SECONDS (default: 30).
func NewUploadConfig() (*UploadConfig, error) {
	maxBytes, err := intFromEnv("UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	timeoutSecs, err := intFromEnv("UPLOAD_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	cfg := &UploadConfig{
		ParserURL: os.Getenv("UPLOAD_PARSER_URL"),
		MaxBytes:  int64(maxBytes),
		Timeout:   time.Duration(timeoutSecs) * time.Second,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *UploadConfig) normalize() error {
	if c.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive: %d", c.MaxBytes)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("upload timeout must be positive: %s", c.Timeout)
	}
	return nil
}

// LLMConfig holds settings for the Gemini-backed resume extractor.
type LLMConfig struct {
	APIKey string
	Model  string
}

// NewLLMConfig reads GEMINI_API_KEY (optional; extraction is disabled
// without it) and GEMINI_MODEL (default: gemini-1.5-flash).
func NewLLMConfig() *LLMConfig {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &LLMConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  model,
	}
}

// BillingConfig holds settings for the payment provider client.
type BillingConfig struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	RefreshInterval time.Duration
	Timeout         time.Duration
}

// NewBillingConfig reads BILLING_BASE_URL, BILLING_CLIENT_ID, and
// BILLING_CLIENT_SECRET (billing stays disabled while they are unset),
// plus BILLING_TOKEN_REFRESH_MINUTES (default: 30) and
// BILLING_TIMEOUT_SECONDS (default: 20).
func NewBillingConfig() (*BillingConfig, error) {
	refreshMins, err := intFromEnv("BILLING_TOKEN_REFRESH_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	timeoutSecs, err := intFromEnv("BILLING_TIMEOUT_SECONDS", 20)
	if err != nil {
		return nil, err
	}

	cfg := &BillingConfig{
		BaseURL:         os.Getenv("BILLING_BASE_URL"),
		ClientID:        os.Getenv("BILLING_CLIENT_ID"),
		ClientSecret:    os.Getenv("BILLING_CLIENT_SECRET"),
		RefreshInterval: time.Duration(refreshMins) * time.Minute,
		Timeout:         time.Duration(timeoutSecs) * time.Second,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Enabled reports whether the billing provider is fully configured.
func (c *BillingConfig) Enabled() bool {
	return c.BaseURL != "" && c.ClientID != "" && c.ClientSecret != ""
}

func (c *BillingConfig) normalize() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("billing token refresh interval must be positive: %s", c.RefreshInterval)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("billing timeout must be positive: %s", c.Timeout)
	}
	return nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

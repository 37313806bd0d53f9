package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		SQLiteDBPath:  "./data/test.db",
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenDuration: 24 * time.Hour,
		BaseURL:       "http://localhost:3000",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "short jwt secret", mutate: func(c *Config) { c.JWTSecret = "too-short" }, wantErr: true},
		{name: "non-numeric port", mutate: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: true},
		{name: "zero token duration", mutate: func(c *Config) { c.TokenDuration = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TOKEN_DURATION", "SMTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Port)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("default token duration = %v, want 24h", cfg.TokenDuration)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("default smtp port = %d, want 587", cfg.SMTPPort)
	}
}

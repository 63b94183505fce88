package logging

import (
	"testing"

	"github.com/guildworks/guildhall/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{name: "json format", cfg: config.LoggingConfig{Level: "INFO", Format: "json"}},
		{name: "text format", cfg: config.LoggingConfig{Level: "DEBUG", Format: "text"}},
		{name: "bad level falls back to info", cfg: config.LoggingConfig{Level: "LOUD", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitLogger(&tt.cfg); err != nil {
				t.Fatalf("InitLogger() failed: %v", err)
			}
			if Logger == nil {
				t.Fatal("InitLogger() left Logger nil")
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil without initialization")
	}
}

func TestWithComponent(t *testing.T) {
	if WithComponent("scorer") == nil {
		t.Fatal("WithComponent() returned nil")
	}
}

package logging

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var c Config
	c.applyDefaults()

	if c.Level != "info" {
		t.Errorf("Level = %q, want info", c.Level)
	}
	if c.Format != "console" {
		t.Errorf("Format = %q, want console", c.Format)
	}
	if c.MaxSize == 0 || c.MaxAge == 0 || c.MaxBackups == 0 {
		t.Error("rotation defaults not applied")
	}
}

func TestConfig_ZapLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warning", "warn"},
		{"error", "error"},
		{"bogus", "info"},
	}
	for _, tt := range tests {
		c := Config{Level: tt.level}
		if got := c.ZapLevel().String(); got != tt.want {
			t.Errorf("ZapLevel(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(Config{
		Director:      dir,
		Level:         "debug",
		Format:        "json",
		LogInTerminal: false,
		LogToFile:     true,
	})

	logger.Info("resolution started", zap.String("application", "crm"))
	if err := logger.Sync(); err != nil {
		t.Logf("Sync: %v", err) // stdout sync can fail on some platforms
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) == 0 {
		t.Error("no log file written")
	}
}

func TestFactory_ReturnsSameNamedLogger(t *testing.T) {
	f := NewFactory(Config{LogInTerminal: false})
	a := f.GetLogger("resolver")
	b := f.GetLogger("resolver")
	if a != b {
		t.Error("GetLogger returned different instances for same name")
	}
}

func TestGlobal_SetAndUse(t *testing.T) {
	prev := Global()
	defer SetGlobal(prev)

	SetGlobal(Nop())
	Info("goes nowhere")
	if Global() != Global() {
		t.Error("Global() not stable")
	}
}

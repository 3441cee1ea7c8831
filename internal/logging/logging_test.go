package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"D", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "app.log")

	if err := Init(Config{Level: "debug", File: logFile}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Info("refresh finished", zap.String("remote", "gdrive"))
	Debug("debug line")
	_ = Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"refresh finished"`) || !strings.Contains(content, `"remote":"gdrive"`) {
		t.Errorf("log file missing entry:\n%s", content)
	}
	if !strings.Contains(content, "debug line") {
		t.Errorf("debug entries should be written at debug level:\n%s", content)
	}

	SetLevel("error")
	if Level() != "error" {
		t.Errorf("Level() = %q, expected error", Level())
	}
	Info("should be filtered")
	_ = Sync()
	data, _ = os.ReadFile(logFile)
	if strings.Contains(string(data), "should be filtered") {
		t.Error("info entry written at error level")
	}
}

func TestRotateIfNeeded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	if err := os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644); err != nil {
		t.Fatal(err)
	}

	RotateIfNeeded(path, 1000)
	if _, err := os.Stat(path); err != nil {
		t.Fatal("small log should not be rotated")
	}

	RotateIfNeeded(path, 10)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("large log should be moved away")
	}
	if _, err := os.Stat(path + ".old"); err != nil {
		t.Errorf("expected rotated file: %v", err)
	}

	// Missing file is a no-op
	RotateIfNeeded(filepath.Join(dir, "missing.log"), 10)
}

func TestL_BeforeInit(t *testing.T) {
	mu.Lock()
	saved := globalLogger
	globalLogger = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		globalLogger = saved
		mu.Unlock()
	}()

	if L() == nil {
		t.Fatal("L() should never return nil")
	}
	Info("dropped")
}

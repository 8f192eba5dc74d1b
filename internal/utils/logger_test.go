package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), CurrentLevel
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		CurrentLevel = prevLevel
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelWarn},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogThreshold(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelWarn

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below threshold were logged: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 3") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "shown 4") {
		t.Errorf("error message missing: %q", out)
	}
}

func TestLogDebugModeOverridesThreshold(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelError
	DebugMode = true
	t.Cleanup(func() { DebugMode = false })

	Debug("trace %d", 7)

	if out := buf.String(); !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "trace 7") {
		t.Errorf("debug mode message missing: %q", out)
	}
}

func TestRaylibLogCallback(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelWarn

	RaylibLogCallback(3, "TEXTURE: loaded 100%")
	if buf.Len() != 0 {
		t.Errorf("raylib info logged at warn level: %q", buf.String())
	}

	RaylibLogCallback(4, "SHADER: failed")
	if !strings.Contains(buf.String(), "[RAYLIB]") || !strings.Contains(buf.String(), "SHADER: failed") {
		t.Errorf("raylib warning missing: %q", buf.String())
	}
}

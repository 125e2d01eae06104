package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "", want: zerolog.WarnLevel},
		{name: "debug", want: zerolog.DebugLevel},
		{name: "INFO", want: zerolog.InfoLevel},
		{name: " warning ", want: zerolog.WarnLevel},
		{name: "error", want: zerolog.ErrorLevel},
		{name: "off", want: zerolog.Disabled},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInitFiltersByLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	if err := Init("info", &buf); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	log.Debug().Msg("hidden message")
	log.Info().Str("file", "a.wav").Msg("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "file=a.wav") {
		t.Errorf("info message missing from output: %q", out)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("chatty", &buf); err == nil {
		t.Error("Init() accepted an unknown level")
	}
}

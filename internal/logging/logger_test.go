package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		env   string
		level string
		want  zapcore.Level
	}{
		{"", "", zapcore.InfoLevel},
		{"development", "debug", zapcore.DebugLevel},
		{"production", "WARN", zapcore.WarnLevel},
		{"staging", " error ", zapcore.ErrorLevel},
	}
	for _, tc := range testCases {
		l, err := New(tc.env, tc.level)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tc.env, tc.level, err)
		}
		if !l.Core().Enabled(tc.want) {
			t.Errorf("New(%q, %q): level %v should be enabled", tc.env, tc.level, tc.want)
		}
		if tc.want > zapcore.DebugLevel && l.Core().Enabled(tc.want-1) {
			t.Errorf("New(%q, %q): level %v should be disabled", tc.env, tc.level, tc.want-1)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("production", "verbose"); err == nil {
		t.Fatal("New with unknown level should fail")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) should return a logger")
	}
}

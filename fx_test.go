package fx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if _, ok := h.WithAttrs(nil).(nopHandler); !ok {
		t.Error("WithAttrs did not return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return nopHandler")
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Info("effect mounted", "effect", "static-noise")
	if !strings.Contains(buf.String(), "effect=static-noise") {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in      string
		want    Intensity
		wantErr bool
	}{
		{"light", Light, false},
		{"medium", Medium, false},
		{"", Medium, false},
		{"heavy", Heavy, false},
		{"extreme", Medium, true},
	}
	for _, tt := range tests {
		got, err := ParseIntensity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntensity(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseIntensity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	var i Intensity
	if err := i.UnmarshalText([]byte("heavy")); err != nil || i != Heavy {
		t.Errorf("UnmarshalText(heavy) = %v, %v", i, err)
	}
	if b, _ := Light.MarshalText(); string(b) != "light" {
		t.Errorf("MarshalText(Light) = %q", b)
	}
}

func TestSentinelErrorsWrap(t *testing.T) {
	err := fmt.Errorf("texture: draw static-noise: %w", ErrCanvas)
	if !errors.Is(err, ErrCanvas) {
		t.Error("wrapped ErrCanvas not matched by errors.Is")
	}
	if errors.Is(err, ErrFallbackToCSS) {
		t.Error("ErrCanvas matched ErrFallbackToCSS")
	}
}

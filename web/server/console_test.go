package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/df07/skirt/pkg/core"
)

var _ core.Logger = (*WebLogger)(nil)

func TestWebLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []interface{}
		want   string
	}{
		{"plain", "Test log message\n", nil, "Test log message"},
		{"formatted", "Rendered %d/%d tiles\n", []interface{}{3, 12}, "Rendered 3/12 tiles"},
		{"no newline", "done", nil, "done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := make(chan ConsoleMessage, 1)
			NewWebLogger("render-42", console).Printf(tt.format, tt.args...)

			msg := <-console
			if msg.Message != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, msg.Message)
			}
			if msg.RenderID != "render-42" || msg.Level != "info" {
				t.Errorf("Expected render-42 at info, got %q at %q", msg.RenderID, msg.Level)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Timestamp too old: %v", msg.Timestamp)
			}
		})
	}
}

func TestWebLogger_KeepsOrder(t *testing.T) {
	console := make(chan ConsoleMessage, 3)
	wl := NewWebLogger("render-1", console)
	for i := 1; i <= 3; i++ {
		wl.Printf("tile %d\n", i)
	}
	close(console)

	var got []string
	for msg := range console {
		got = append(got, msg.Message)
	}
	if len(got) != 3 || got[0] != "tile 1" || got[2] != "tile 3" {
		t.Errorf("Expected tiles 1..3 in order, got %v", got)
	}
}

func TestWebLogger_FullConsoleDrops(t *testing.T) {
	console := make(chan ConsoleMessage, 1)
	wl := NewWebLogger("render-2", console)

	wl.Printf("kept\n")
	wl.Printf("dropped\n")
	wl.Printf("dropped\n")

	if got := wl.Dropped(); got != 2 {
		t.Errorf("Expected 2 dropped lines, got %d", got)
	}
	if msg := <-console; msg.Message != "kept" {
		t.Errorf("Expected the first line to be kept, got %q", msg.Message)
	}
}

func TestWebLogger_NilConsole(t *testing.T) {
	wl := NewWebLogger("render-3", nil)
	wl.Printf("server log only\n")
	if wl.Dropped() != 0 {
		t.Error("Expected nothing counted as dropped without a console")
	}
}

func TestConsoleMessage_JSON(t *testing.T) {
	msg := ConsoleMessage{
		RenderID:  "render-1",
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"renderId":"render-1","message":"Test message","timestamp":"2024-01-02T03:04:05Z","level":"info"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

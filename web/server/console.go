package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// ConsoleMessage is one renderer progress line forwarded to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger is the renderer logger of a streamed render. Lines go to the
// server log and, without blocking, to the render's console channel.
type WebLogger struct {
	renderID string
	console  chan<- ConsoleMessage
	dropped  atomic.Int64
}

func NewWebLogger(renderID string, console chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{renderID: renderID, console: console}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	logger.Infof("[%s] %s", wl.renderID, line)

	if wl.console == nil {
		return
	}
	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   line,
		Timestamp: time.Now(),
		Level:     "info",
	}
	select {
	case wl.console <- msg:
	default:
		wl.dropped.Add(1)
	}
}

// Dropped returns how many lines were discarded because the console was full
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// DefaultConsoleSize is the number of renderer messages kept for /api/console
const DefaultConsoleSize = 100

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// ConsoleLog implements core.Logger by keeping the most recent renderer
// messages and forwarding them to the process logger
type ConsoleLog struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	size     int
	next     int
	full     bool
	logger   *log.Logger
}

// NewConsoleLog creates a console that remembers up to size messages. A nil
// logger disables forwarding.
func NewConsoleLog(size int, logger *log.Logger) *ConsoleLog {
	if size <= 0 {
		size = DefaultConsoleSize
	}
	return &ConsoleLog{
		messages: make([]ConsoleMessage, size),
		size:     size,
		logger:   logger,
	}
}

// Printf implements core.Logger interface
func (cl *ConsoleLog) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if cl.logger != nil {
		cl.logger.Info(message)
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.messages[cl.next] = ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}
	cl.next = (cl.next + 1) % cl.size
	if cl.next == 0 {
		cl.full = true
	}
}

// Messages returns the remembered messages, oldest first
func (cl *ConsoleLog) Messages() []ConsoleMessage {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if !cl.full {
		return append([]ConsoleMessage(nil), cl.messages[:cl.next]...)
	}
	result := make([]ConsoleMessage, 0, cl.size)
	result = append(result, cl.messages[cl.next:]...)
	return append(result, cl.messages[:cl.next]...)
}

package lexer

import (
	"log/slog"
	"sync"
)

// Handler receives the lexer's diagnostics. Warnings are informational and
// lexing proceeds; Fatal is called once, right before NextToken returns err.
type Handler interface {
	Warn(file string, line int, message string)
	Fatal(err *SyntaxError)
}

// SlogHandler forwards diagnostics to a structured logger.
type SlogHandler struct {
	Logger *slog.Logger
}

func (h SlogHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func (h SlogHandler) Warn(file string, line int, message string) {
	h.logger().Warn("lexer warning", "file", file, "line", line, "msg", message)
}

func (h SlogHandler) Fatal(err *SyntaxError) {
	h.logger().Error("lexer error", "file", err.File, "line", err.Line, "pid", err.PID.String(), "msg", err.Message)
}

// Warning is a single recorded warning.
type Warning struct {
	File    string
	Line    int
	Message string
}

// Collector accumulates diagnostics in memory. It is safe for use by several
// lexers at once.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
	errors   []*SyntaxError
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Warn(file string, line int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, Warning{File: file, Line: line, Message: message})
}

func (c *Collector) Fatal(err *SyntaxError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Warnings returns a copy of the recorded warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Warning(nil), c.warnings...)
}

// Messages returns just the warning texts, in order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]string, len(c.warnings))
	for i, w := range c.warnings {
		msgs[i] = w.Message
	}
	return msgs
}

// Errors returns the fatal errors seen.
func (c *Collector) Errors() []*SyntaxError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*SyntaxError(nil), c.errors...)
}

// HasErrors reports whether any fatal error was recorded.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// Package testutil holds logging helpers shared by the package tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LoggerOption adjusts a test logger.
type LoggerOption func(*slog.HandlerOptions)

// WithLevel sets the minimum level written. The default is Debug, so that
// context push/pop and force-clear records are visible under -v.
func WithLevel(level slog.Level) LoggerOption {
	return func(o *slog.HandlerOptions) { o.Level = level }
}

func handlerOptions(opts []LoggerOption) *slog.HandlerOptions {
	o := &slog.HandlerOptions{Level: slog.LevelDebug}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewTestLogger returns a logger that writes each record through t.Log, so
// output only shows for failing tests or with -v.
func NewTestLogger(t testing.TB, opts ...LoggerOption) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, handlerOptions(opts)))
}

type tbWriter struct{ t testing.TB }

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Capture collects log output so a test can assert on what was logged.
type Capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureLogger returns a logger writing into the returned Capture.
func NewCaptureLogger(opts ...LoggerOption) (*slog.Logger, *Capture) {
	c := &Capture{}
	return slog.New(slog.NewTextHandler(c, handlerOptions(opts))), c
}

func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Lines returns the captured records, one per line.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := strings.TrimRight(c.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Contains reports whether any record contains all of the given substrings.
func (c *Capture) Contains(subs ...string) bool {
	for _, line := range c.Lines() {
		ok := true
		for _, s := range subs {
			if !strings.Contains(line, s) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

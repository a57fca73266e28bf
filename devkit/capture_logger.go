package devkit

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-membership/core"
)

type CapturedLog struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// CaptureLogger records every entry so tests can assert on the diagnostic sink.
type CaptureLogger struct {
	mu       *sync.Mutex
	records  *[]CapturedLog
	defaults map[string]any
}

func NewCaptureLogger() *CaptureLogger {
	records := []CapturedLog{}
	return &CaptureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *CaptureLogger) WithFields(fields map[string]any) core.Logger {
	merged := core.CloneFields(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &CaptureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *CaptureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *CaptureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *CaptureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *CaptureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *CaptureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *CaptureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *CaptureLogger) WithContext(context.Context) core.Logger {
	return &CaptureLogger{mu: l.mu, records: l.records, defaults: core.CloneFields(l.defaults)}
}

func (l *CaptureLogger) record(level string, msg string, args ...any) {
	fields := core.CloneFields(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, CapturedLog{Level: level, Msg: msg, Fields: fields})
}

func (l *CaptureLogger) Snapshot() []CapturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]CapturedLog, len(items))
	copy(out, items)
	return out
}

// Has reports whether an entry at level contains fragment in its message.
func (l *CaptureLogger) Has(level string, fragment string) bool {
	for _, record := range l.Snapshot() {
		if record.Level == level && strings.Contains(record.Msg, fragment) {
			return true
		}
	}
	return false
}

type CaptureLoggerProvider struct {
	Logger core.Logger
}

func (p CaptureLoggerProvider) GetLogger(string) core.Logger {
	return p.Logger
}

var (
	_ core.Logger         = (*CaptureLogger)(nil)
	_ core.LoggerProvider = CaptureLoggerProvider{}
)

package client

import "fmt"

// Logger is the minimal logging surface the package depends on. Host
// applications plug their own implementation via options.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// SessionStorage is the durable backend behind a SessionStore. Load is
// called once when the store is created; Save and Delete mirror every store
// change. Implementations must fail soft on corrupt records: delete the
// record and report absence instead of returning an error.
type SessionStorage interface {
	Load() *Session
	Save(session *Session) error
	Delete() error
}

// TraceInfo is handed to the TraceHook for every request/response pair.
type TraceInfo struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Err       error
}

// TraceHook is a single observability callback invoked once per request
// after the response (or transport failure) has been processed. Nothing in
// the pipeline depends on its behavior.
type TraceHook func(info TraceInfo)

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

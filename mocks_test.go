package client_test

import (
	"fmt"
	"sync"

	client "github.com/gpugrid/go-client"
)

// memStorage is an in-memory SessionStorage used to observe write-through
// behavior without touching the filesystem.
type memStorage struct {
	mu      sync.Mutex
	session *client.Session
	saves   int
	deletes int
}

func (m *memStorage) Load() *client.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *memStorage) Save(session *client.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	m.saves++
	return nil
}

func (m *memStorage) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	m.deletes++
	return nil
}

// captureLogger records log lines for assertions.
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) log(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debug(format string, args ...any) { l.log("DBG", format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.log("INF", format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.log("ERR", format, args...) }

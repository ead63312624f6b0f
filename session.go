package client

import "sync"

// SessionStore is the process-wide slot holding the current authenticated
// session, or nil for anonymous. Set is the only mutation path: it replaces
// the slot wholesale, mirrors the change to the storage backend, then
// notifies subscribers. There is no partial update channel.
type SessionStore struct {
	mu      sync.RWMutex
	current *Session
	storage SessionStorage
	subs    map[int]func(*Session)
	nextSub int
	logger  Logger
}

// SessionStoreOption customizes store construction.
type SessionStoreOption func(*SessionStore)

// WithSessionStoreLogger overrides the logger used for storage failures.
func WithSessionStoreLogger(logger Logger) SessionStoreOption {
	return func(s *SessionStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSessionStore creates a store backed by the given storage and hydrates
// the slot from it. A nil storage behaves like NoopStorage.
func NewSessionStore(storage SessionStorage, opts ...SessionStoreOption) *SessionStore {
	if storage == nil {
		storage = NoopStorage{}
	}

	store := &SessionStore{
		storage: storage,
		subs:    map[int]func(*Session){},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(store)
	}

	store.current = storage.Load()

	return store
}

// Get returns the current session, or nil when anonymous. The returned value
// is a copy; mutating it does not affect the slot.
func (s *SessionStore) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.clone()
}

// Set replaces the slot. A non-nil session is written through to storage; a
// nil session deletes the durable record. Subscribers are notified after the
// mirror completes. Storage failures are logged, never propagated: the
// in-memory slot is the source of truth for the running process.
func (s *SessionStore) Set(session *Session) {
	s.mu.Lock()
	if session != nil {
		copied := session.clone()
		copied.AccessToken = NormalizeBearerToken(copied.AccessToken)
		session = copied
	}
	s.current = session
	s.mu.Unlock()

	if session == nil {
		if err := s.storage.Delete(); err != nil {
			s.logger.Error("failed to delete persisted session: %v", err)
		}
	} else {
		if err := s.storage.Save(session); err != nil {
			s.logger.Error("failed to persist session: %v", err)
		}
	}

	s.notify(session)
}

// Subscribe registers fn to run on every Set. It returns an unsubscribe
// function. Callbacks run synchronously on the caller of Set.
func (s *SessionStore) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *SessionStore) notify(session *Session) {
	s.mu.RLock()
	subs := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(session)
	}
}

package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// sessionRecord is the single durable row behind BunStorage.
type sessionRecord struct {
	bun.BaseModel `bun:"table:client_session,alias:ses"`
	Key           string    `bun:"key,pk"`
	Payload       []byte    `bun:"payload,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

const sessionRecordKey = "current"

// BunStorage persists the session in a local SQLite database, for host
// applications that already carry one. Same contract as FileStorage: one
// record under a fixed key, corrupt payloads are deleted on load.
type BunStorage struct {
	db     *bun.DB
	logger Logger
}

// BunStorageOption customizes BunStorage construction.
type BunStorageOption func(*BunStorage)

// WithBunStorageLogger overrides the logger used for self-heal events.
func WithBunStorageLogger(logger Logger) BunStorageOption {
	return func(b *BunStorage) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// OpenSQLite opens (creating if needed) a local SQLite database suitable for
// NewBunStorage. Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewBunStorage creates the session table if needed and returns the storage.
func NewBunStorage(db *bun.DB, opts ...BunStorageOption) (*BunStorage, error) {
	storage := &BunStorage{
		db:     db,
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(storage)
	}

	_, err := db.NewCreateTable().
		Model((*sessionRecord)(nil)).
		IfNotExists().
		Exec(context.Background())
	if err != nil {
		return nil, err
	}

	return storage, nil
}

// Load reads the persisted session. A missing row or a corrupt payload
// yields nil; corrupt payloads are deleted so the next load starts clean.
func (b *BunStorage) Load() *Session {
	ctx := context.Background()

	record := new(sessionRecord)
	err := b.db.NewSelect().
		Model(record).
		Where("key = ?", sessionRecordKey).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Debug("failed to read session record: %v", err)
		}
		return nil
	}

	var session Session
	if err := json.Unmarshal(record.Payload, &session); err != nil {
		b.logger.Debug("discarding corrupt session record: %v", err)
		_ = b.Delete()
		return nil
	}

	if session.AccessToken == "" {
		b.logger.Debug("discarding session record without a token")
		_ = b.Delete()
		return nil
	}

	session.AccessToken = NormalizeBearerToken(session.AccessToken)
	return &session
}

// Save overwrites the record with a serialized copy of the session.
func (b *BunStorage) Save(session *Session) error {
	if session == nil {
		return b.Delete()
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	record := &sessionRecord{
		Key:       sessionRecordKey,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}

	_, err = b.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())

	return err
}

// Delete removes the record. A missing record is not an error.
func (b *BunStorage) Delete() error {
	_, err := b.db.NewDelete().
		Model((*sessionRecord)(nil)).
		Where("key = ?", sessionRecordKey).
		Exec(context.Background())
	return err
}

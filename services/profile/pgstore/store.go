// Package pgstore persists profiles in PostgreSQL for shared deployments.
package pgstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"uplift/backend/services/profile"
)

// Store is a profile.Store backed by PostgreSQL.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ profile.Store = (*Store)(nil)

// New wraps an open database handle. Call EnsureSchema before first use.
func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Open connects with the lib/pq driver and checks the connection.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, profile.NewStorageError("open", classify(err), err)
	}
	return New(db, logger), nil
}

// EnsureSchema creates the profile table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, CreateTableQuery); err != nil {
		return profile.NewStorageError("migrate", classify(err), err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context, owner string) (profile.Profile, error) {
	if owner == "" {
		return profile.Profile{}, profile.ErrOwnerRequired
	}

	rows, err := s.db.QueryContext(ctx, SelectProfileQuery, owner)
	if err != nil {
		s.logger.Error("Error querying profile", zap.String("owner", owner), zap.Error(err))
		return profile.Profile{}, profile.NewStorageError("load", classify(err), err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return profile.Profile{}, profile.NewStorageError("load", classify(err), err)
		}
		kv[key] = value
	}
	if err := rows.Err(); err != nil {
		return profile.Profile{}, profile.NewStorageError("load", classify(err), err)
	}

	p, err := profile.Decode(kv)
	if err != nil {
		return profile.Profile{}, profile.NewStorageError("load", profile.FaultCorrupt, err)
	}
	return p, nil
}

func (s *Store) Save(ctx context.Context, owner string, p profile.Profile) error {
	if owner == "" {
		return profile.ErrOwnerRequired
	}
	if err := profile.Validate(p); err != nil {
		return err
	}

	kv := profile.Encode(p)
	keys := profile.Keys()
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = kv[key]
	}

	if _, err := s.db.ExecContext(ctx, UpsertProfileQuery, owner, pq.Array(keys), pq.Array(values)); err != nil {
		s.logger.Error("Error saving profile", zap.String("owner", owner), zap.Error(err))
		return profile.NewStorageError("save", classify(err), err)
	}
	return nil
}

// classify maps PostgreSQL error codes onto profile fault kinds.
func classify(err error) profile.FaultKind {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return profile.FaultUnavailable
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "53100":
			return profile.FaultFull
		case pqErr.Code == "42501":
			return profile.FaultPermission
		case pqErr.Code.Class() == "XX":
			return profile.FaultCorrupt
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			return profile.FaultUnavailable
		}
	}
	return profile.ClassifyFault(err)
}

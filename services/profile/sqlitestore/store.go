// Package sqlitestore persists profiles in a device-local SQLite file as
// (owner, key, value) rows.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"uplift/backend/services/profile"
	"uplift/backend/services/profile/sqlitestore/migrations"
)

// Store is a profile.Store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ profile.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, profile.NewStorageError("open", classify(err), err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, profile.NewStorageError("open", classify(err), err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, profile.NewStorageError("migrate", classify(err), err)
	}
	logger.Info("Opened SQLite profile store", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context, owner string) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	if owner == "" {
		return profile.Profile{}, profile.ErrOwnerRequired
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM profile_settings WHERE owner = ?`, owner)
	if err != nil {
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
	if err := ctx.Err(); err != nil {
		return err
	}
	if owner == "" {
		return profile.ErrOwnerRequired
	}
	if err := profile.Validate(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return profile.NewStorageError("save", classify(err), err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().UnixMilli()
	kv := profile.Encode(p)
	for _, key := range profile.Keys() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile_settings (owner, key, value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			owner, key, kv[key], now,
		); err != nil {
			return profile.NewStorageError("save", classify(err), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return profile.NewStorageError("save", classify(err), err)
	}

	s.logger.Debug("Saved profile", zap.String("owner", owner))
	return nil
}

// classify maps SQLite result codes onto profile fault kinds.
func classify(err error) profile.FaultKind {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_FULL:
			return profile.FaultFull
		case sqlite3lib.SQLITE_READONLY, sqlite3lib.SQLITE_PERM, sqlite3lib.SQLITE_AUTH:
			return profile.FaultPermission
		case sqlite3lib.SQLITE_CORRUPT, sqlite3lib.SQLITE_NOTADB:
			return profile.FaultCorrupt
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_CANTOPEN:
			return profile.FaultUnavailable
		}
	}
	return profile.ClassifyFault(err)
}

// Package redisstore persists each profile as one Redis hash.
package redisstore

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"uplift/backend/services/profile"
)

// DefaultKeyPrefix namespaces profile hashes.
const DefaultKeyPrefix = "uplift:profile:"

// Store is a profile.Store backed by Redis hashes.
type Store struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

var _ profile.Store = (*Store)(nil)

// New returns a store writing hashes under keyPrefix (DefaultKeyPrefix when empty).
func New(client *redis.Client, keyPrefix string, logger *zap.Logger) *Store {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, keyPrefix: keyPrefix, logger: logger}
}

func (s *Store) key(owner string) string {
	return s.keyPrefix + owner
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Load(ctx context.Context, owner string) (profile.Profile, error) {
	if owner == "" {
		return profile.Profile{}, profile.ErrOwnerRequired
	}
	kv, err := s.client.HGetAll(ctx, s.key(owner)).Result()
	if err != nil {
		s.logger.Error("Failed to load profile", zap.String("owner", owner), zap.Error(err))
		return profile.Profile{}, profile.NewStorageError("load", classify(err), err)
	}
	p, err := profile.Decode(kv)
	if err != nil {
		return profile.Profile{}, profile.NewStorageError("load", profile.FaultCorrupt, err)
	}
	return p, nil
}

// Save writes every field with a single HSET, so readers never observe a
// partially written profile.
func (s *Store) Save(ctx context.Context, owner string, p profile.Profile) error {
	if owner == "" {
		return profile.ErrOwnerRequired
	}
	if err := profile.Validate(p); err != nil {
		return err
	}
	fields := make(map[string]interface{}, len(profile.Keys()))
	for k, v := range profile.Encode(p) {
		fields[k] = v
	}
	if err := s.client.HSet(ctx, s.key(owner), fields).Err(); err != nil {
		s.logger.Error("Failed to save profile", zap.String("owner", owner), zap.Error(err))
		return profile.NewStorageError("save", classify(err), err)
	}
	return nil
}

// classify maps Redis replies and transport errors onto fault kinds.
func classify(err error) profile.FaultKind {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return profile.FaultUnavailable
	}
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "OOM"):
		return profile.FaultFull
	case strings.HasPrefix(msg, "NOPERM"), strings.HasPrefix(msg, "NOAUTH"),
		strings.HasPrefix(msg, "READONLY"), strings.HasPrefix(msg, "WRONGPASS"):
		return profile.FaultPermission
	case strings.HasPrefix(msg, "WRONGTYPE"):
		return profile.FaultCorrupt
	case strings.HasPrefix(msg, "LOADING"), strings.HasPrefix(msg, "MASTERDOWN"),
		errors.Is(err, redis.ErrClosed):
		return profile.FaultUnavailable
	}
	return profile.ClassifyFault(err)
}

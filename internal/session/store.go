// Package session keeps per-conversation medical profiles between
// webhook invocations. Each session owns an independent profile; the
// store is the only state shared across requests.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Store is a two-tier profile store: an in-memory LRU for hot
// sessions, with an optional Redis tier so profiles survive restarts
// and multiple server instances agree.
type Store struct {
	logger *logrus.Logger

	memory *lru.Cache
	redis  *redis.Client // nil when no redis_url is configured
	ttl    time.Duration
}

// NewStore creates a session store from configuration.
func NewStore(logger *logrus.Logger, config domain.SessionConfig) (*Store, error) {
	memory, err := lru.New(config.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	s := &Store{
		logger: logger,
		memory: memory,
		ttl:    config.TTL,
	}

	if config.RedisURL != "" {
		opts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		s.redis = redis.NewClient(opts)
	}

	return s, nil
}

// redisKey namespaces session entries in the shared cache.
func redisKey(sessionID string) string {
	return "session:profile:" + sessionID
}

// Get returns the profile for a session. An unknown session yields a
// fresh empty profile, never an error: the form simply starts over.
func (s *Store) Get(ctx context.Context, sessionID string) (domain.MedicalProfile, error) {
	if cached, ok := s.memory.Get(sessionID); ok {
		return cached.(domain.MedicalProfile).Clone(), nil
	}

	if s.redis != nil {
		raw, err := s.redis.Get(ctx, redisKey(sessionID)).Result()
		switch {
		case err == redis.Nil:
			// fall through to a fresh profile
		case err != nil:
			s.logger.WithError(err).Warn("Redis session lookup failed")
		default:
			var profile domain.MedicalProfile
			if err := json.Unmarshal([]byte(raw), &profile); err != nil {
				s.logger.WithError(err).Warn("Discarding corrupt session entry")
			} else {
				s.memory.Add(sessionID, profile.Clone())
				return profile, nil
			}
		}
	}

	return domain.MedicalProfile{}, nil
}

// Put stores a session's profile in both tiers. The Redis write is
// best-effort; losing it degrades persistence, not correctness.
func (s *Store) Put(ctx context.Context, sessionID string, profile domain.MedicalProfile) error {
	s.memory.Add(sessionID, profile.Clone())

	if s.redis != nil {
		encoded, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		if err := s.redis.Set(ctx, redisKey(sessionID), encoded, s.ttl).Err(); err != nil {
			s.logger.WithError(err).Warn("Redis session write failed")
		}
	}

	return nil
}

// Delete removes a session's profile from both tiers.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.memory.Remove(sessionID)

	if s.redis != nil {
		if err := s.redis.Del(ctx, redisKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to delete session from redis: %w", err)
		}
	}

	return nil
}

// Len reports how many sessions the memory tier currently holds.
func (s *Store) Len() int {
	return s.memory.Len()
}

// Close releases the Redis connection if one was configured.
func (s *Store) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

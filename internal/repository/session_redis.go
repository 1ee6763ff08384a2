package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"studyquiz/internal/cache"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// sessionActivityKey is a sorted set indexing session ids by their
// last-modified time (unix seconds), used by Cleanup.
const sessionActivityKey = cache.GlobalKeyPrefix + ":quiz:sessions:by_activity"

// redisSessionStore implements domain.SessionStore on Redis. Sessions are
// whole-document JSON values; every write also refreshes the session's
// score in the activity index.
type redisSessionStore struct {
	client *redis.Client
	now    func() time.Time
	newID  func() string
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) domain.SessionStore {
	return &redisSessionStore{
		client: client,
		now:    time.Now,
		newID:  util.NewULID,
	}
}

func sessionKey(sessionID string) string {
	return cache.GenerateCacheKey("quiz", "session", sessionID)
}

func (s *redisSessionStore) save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewStorageError("failed to marshal session", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SessionID), string(data), 0).Err(); err != nil {
		return domain.NewStorageError("failed to persist session", err)
	}
	err = s.client.ZAdd(ctx, sessionActivityKey, redis.Z{
		Score:  float64(session.UpdatedAt.Unix()),
		Member: session.SessionID,
	}).Err()
	if err != nil {
		return domain.NewStorageError("failed to index session activity", err)
	}
	return nil
}

// Create implements domain.SessionStore
func (s *redisSessionStore) Create(ctx context.Context, userID, documentName string, questions []domain.Question) (string, error) {
	now := s.now().UTC()
	session := &domain.Session{
		SessionID:       s.newID(),
		UserID:          userID,
		DocumentName:    documentName,
		CreatedAt:       now,
		StartTime:       now,
		UpdatedAt:       now,
		Questions:       questions,
		UserAnswers:     []domain.AnswerRecord{},
		CurrentQuestion: 0,
		CorrectCount:    0,
	}
	if err := s.save(ctx, session); err != nil {
		return "", err
	}
	return session.SessionID, nil
}

// Get implements domain.SessionStore
func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewStorageError("failed to read session", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, domain.NewStorageError("failed to unmarshal session", err)
	}
	return &session, nil
}

// Update implements domain.SessionStore
func (s *redisSessionStore) Update(ctx context.Context, session *domain.Session) error {
	exists, err := s.client.Exists(ctx, sessionKey(session.SessionID)).Result()
	if err != nil {
		return domain.NewStorageError("failed to check session existence", err)
	}
	if exists == 0 {
		return domain.NewSessionNotFoundError(session.SessionID)
	}

	session.UpdatedAt = s.now().UTC()
	return s.save(ctx, session)
}

// Delete implements domain.SessionStore. Deleting an absent session is
// not an error.
func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return domain.NewStorageError("failed to delete session", err)
	}
	if err := s.client.ZRem(ctx, sessionActivityKey, sessionID).Err(); err != nil {
		return domain.NewStorageError("failed to remove session from activity index", err)
	}
	return nil
}

// Cleanup implements domain.SessionStore. A session whose record shows
// activity newer than the cutoff is re-indexed instead of removed, so an
// in-flight update is never reaped.
func (s *redisSessionStore) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.now().UTC().Add(-maxAge)
	ids, err := s.client.ZRangeByScore(ctx, sessionActivityKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, domain.NewStorageError("failed to query stale sessions", err)
	}

	removed := 0
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.CodeSessionNotFound {
				// Index entry with no record; drop the leftover.
				if err := s.client.ZRem(ctx, sessionActivityKey, id).Err(); err != nil {
					return removed, domain.NewStorageError("failed to prune activity index", err)
				}
				continue
			}
			return removed, err
		}

		if session.UpdatedAt.After(cutoff) {
			// Touched since the index was read; refresh its score.
			err := s.client.ZAdd(ctx, sessionActivityKey, redis.Z{
				Score:  float64(session.UpdatedAt.Unix()),
				Member: id,
			}).Err()
			if err != nil {
				return removed, domain.NewStorageError("failed to refresh session activity", err)
			}
			continue
		}

		if err := s.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed++
		logger.Get().Debug("Removed stale session", zap.String("sessionID", id))
	}

	return removed, nil
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	subjectKeyPrefix = "session_subject:"
)

// Session is the redis-side record behind a token. The token alone is never
// enough: the session must still exist here for the token to be accepted.
type Session struct {
	ID      string  `json:"id"`
	Subject string  `json:"subject"`
	View    string  `json:"view"`
	Section *string `json:"section,omitempty"`
}

// SessionStore keeps at most one live session per subject. Creating a
// session for a subject revokes whatever session that subject had before,
// which is what makes the four views mutually exclusive.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func subjectKey(subject string) string {
	return subjectKeyPrefix + subject
}

func (s *SessionStore) Create(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	// Revoke the subject's previous session first.
	if old, err := s.rdb.Get(ctx, subjectKey(sess.Subject)).Result(); err == nil && old != "" {
		if err := s.rdb.Del(ctx, sessionKey(old)).Err(); err != nil {
			return err
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), raw, s.ttl)
	pipe.Set(ctx, subjectKey(sess.Subject), sess.ID, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// IsActive satisfies middleware.SessionChecker. A session bound to a
// different view than the token claims is treated as revoked.
func (s *SessionStore) IsActive(ctx context.Context, sessionID, view string) bool {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return false
	}
	return sess.View == view
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.Del(ctx, subjectKey(sess.Subject))
	_, err = pipe.Exec(ctx)
	return err
}

// PurgeSubject satisfies employee.SessionPurger.
func (s *SessionStore) PurgeSubject(ctx context.Context, subject string) error {
	old, err := s.rdb.Get(ctx, subjectKey(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(old))
	pipe.Del(ctx, subjectKey(subject))
	_, err = pipe.Exec(ctx)
	return err
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	sessionCookieName = "session"
	sessionTTL        = 60 * time.Minute
)

// Store manages session records in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session for userID and returns its ID.
// The TTL is set once here and never extended.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return id, nil
}

// UserID returns the user bound to the session, if it is still alive.
func (s *Store) UserID(ctx context.Context, id string) (int64, bool, error) {
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("session get: %w", err)
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false, nil
	}
	return userID, true, nil
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// Sessions ties the Redis store to a signed browser cookie.
type Sessions struct {
	store  *Store
	signer *Signer
	secure bool
}

func NewSessions(store *Store, signer *Signer, secureCookie bool) *Sessions {
	return &Sessions{store: store, signer: signer, secure: secureCookie}
}

// Start logs userID in, replacing any session the browser already holds.
func (s *Sessions) Start(c *gin.Context, userID int64) error {
	ctx := c.Request.Context()
	if old, ok := s.sessionID(c); ok {
		_ = s.store.Delete(ctx, old)
	}
	id, err := s.store.Create(ctx, userID)
	if err != nil {
		return err
	}
	expires := s.signer.now().Add(s.store.ttl)
	token, err := s.signer.SignSession(id, expires)
	if err != nil {
		_ = s.store.Delete(ctx, id)
		return err
	}
	s.setCookie(c, token, int(s.store.ttl.Seconds()))
	return nil
}

// End logs the browser out. It is a no-op for anonymous browsers.
func (s *Sessions) End(c *gin.Context) error {
	if id, ok := s.sessionID(c); ok {
		if err := s.store.Delete(c.Request.Context(), id); err != nil {
			return fmt.Errorf("session delete: %w", err)
		}
	}
	s.setCookie(c, "", -1)
	return nil
}

// UserID resolves the request's cookie to a user id.
func (s *Sessions) UserID(c *gin.Context) (int64, bool, error) {
	id, ok := s.sessionID(c)
	if !ok {
		return 0, false, nil
	}
	return s.store.UserID(c.Request.Context(), id)
}

func (s *Sessions) sessionID(c *gin.Context) (string, bool) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		return "", false
	}
	id, err := s.signer.ParseSession(token)
	if err != nil {
		return "", false
	}
	return id, true
}

func (s *Sessions) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, value, maxAge, "/", "", s.secure, true)
}

package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenUnknown = errors.New("refresh token unknown")

// TokenStore remembers issued refresh tokens until they expire or are used.
type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Take(ctx context.Context, token string) (string, error)
}

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func refreshKey(token string) string {
	return "alps:refresh:" + token
}

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(token), userID, ttl).Err()
}

// Take returns the owner of token and deletes it, so a refresh token works once.
func (s *RedisTokenStore) Take(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenUnknown
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

type memoryToken struct {
	userID  string
	expires time.Time
}

type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: map[string]memoryToken{},
		now:    time.Now,
	}
}

func (s *MemoryTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryToken{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Take(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return "", ErrTokenUnknown
	}
	delete(s.tokens, token)
	if s.now().After(entry.expires) {
		return "", ErrTokenUnknown
	}
	return entry.userID, nil
}

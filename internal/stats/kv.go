package stats

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"backend-alpsconnect/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// KV is the string key-value surface the tracker persists through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Counter is implemented by backends that can bump a counter and claim a
// key in one round trip. Shared backends need it so concurrent visits from
// several API instances do not lose increments.
type Counter interface {
	// Incr adds one to the counter at key, reading a missing or garbled
	// value as zero, and returns the new count.
	Incr(ctx context.Context, key string) (int, error)
	// SetIfAbsent writes value only when key does not exist yet.
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)
}

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Incr(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := parseCount(m.data[key]) + 1
	m.data[key] = strconv.Itoa(n)
	return n, nil
}

func (m *MemoryKV) SetIfAbsent(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// incrScript tolerates values INCR would reject, keeping their leading digits.
var incrScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
local n = 0
if v then
	n = tonumber(string.match(v, '^%s*(%d+)')) or 0
end
n = n + 1
redis.call('SET', KEYS[1], tostring(n))
return n
`)

func (r *RedisKV) Incr(ctx context.Context, key string) (int, error) {
	return incrScript.Run(ctx, r.client, []string{key}).Int()
}

func (r *RedisKV) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	return r.client.SetNX(ctx, key, value, 0).Result()
}

type PostgresKV struct {
	db db.Querier
}

func NewPostgresKV(q db.Querier) *PostgresKV {
	return &PostgresKV{db: q}
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.db.QueryRow(ctx, `SELECT value FROM stats_kv WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO stats_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}

func (p *PostgresKV) Incr(ctx context.Context, key string) (int, error) {
	var v string
	err := p.db.QueryRow(ctx, `
		INSERT INTO stats_kv (key, value, updated_at)
		VALUES ($1, '1', now())
		ON CONFLICT (key) DO UPDATE
		SET value = (COALESCE(substring(stats_kv.value from '^[[:space:]]*([0-9]+)')::bigint, 0) + 1)::text,
			updated_at = now()
		RETURNING value
	`, key).Scan(&v)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (p *PostgresKV) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	tag, err := p.db.Exec(ctx, `
		INSERT INTO stats_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO NOTHING
	`, key, value)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

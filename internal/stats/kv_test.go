package stats

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
)

func TestRedisKV(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	kv := NewRedisKV(client)

	if _, ok, err := kv.Get(context.Background(), "missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(context.Background(), "ac_stats_views:v1", "4"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(context.Background(), "ac_stats_views:v1")
	if err != nil || !ok || v != "4" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}

	tr := NewTracker(kv)
	if snap := tr.RecordVisit(context.Background(), "v1"); snap.Views != 5 {
		t.Fatalf("expected 5 views, got %d", snap.Views)
	}
	if got, _ := s.Get("ac_stats_views:v1"); got != "5" {
		t.Fatalf("unexpected redis value %q", got)
	}
}

func TestRedisKVUnavailable(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	s.Close()

	kv := NewRedisKV(client)
	if _, _, err := kv.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostgresKV(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT value FROM stats_kv`).
		WithArgs("ac_stats_views:v1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO stats_kv`).
		WithArgs("ac_stats_views:v1", "1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT value FROM stats_kv`).
		WithArgs("ac_stats_views:v1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("1"))

	kv := NewPostgresKV(mock)
	if _, ok, err := kv.Get(context.Background(), "ac_stats_views:v1"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(context.Background(), "ac_stats_views:v1", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(context.Background(), "ac_stats_views:v1")
	if err != nil || !ok || v != "1" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresKVError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT value FROM stats_kv`).
		WithArgs("k").
		WillReturnError(errBroken)

	if _, _, err := NewPostgresKV(mock).Get(context.Background(), "k"); !errors.Is(err, errBroken) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestRedisKVCounter(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	kv := NewRedisKV(client)
	ctx := context.Background()

	if n, err := kv.Incr(ctx, "ac_stats_views:v1"); err != nil || n != 1 {
		t.Fatalf("first incr: %d %v", n, err)
	}
	_ = s.Set("ac_stats_views:v2", "12abc")
	if n, err := kv.Incr(ctx, "ac_stats_views:v2"); err != nil || n != 13 {
		t.Fatalf("incr over garbled value: %d %v", n, err)
	}
	_ = s.Set("ac_stats_views:v3", "lots")
	if n, err := kv.Incr(ctx, "ac_stats_views:v3"); err != nil || n != 1 {
		t.Fatalf("incr over non-numeric value: %d %v", n, err)
	}

	created, err := kv.SetIfAbsent(ctx, "ac_stats_start:v1", "a")
	if err != nil || !created {
		t.Fatalf("expected key to be created: %v %v", created, err)
	}
	created, err = kv.SetIfAbsent(ctx, "ac_stats_start:v1", "b")
	if err != nil || created {
		t.Fatalf("expected existing key to be kept: %v %v", created, err)
	}
	if got, _ := s.Get("ac_stats_start:v1"); got != "a" {
		t.Fatalf("unexpected stored value %q", got)
	}
}

func TestRedisKVConcurrentVisits(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	// Two trackers stand in for two API instances sharing one redis.
	trackers := []*Tracker{NewTracker(NewRedisKV(client)), NewTracker(NewRedisKV(client))}
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(tr *Tracker) {
			defer wg.Done()
			tr.RecordVisit(context.Background(), "v1")
		}(trackers[i%2])
	}
	wg.Wait()

	if got, _ := s.Get("ac_stats_views:v1"); got != "40" {
		t.Fatalf("expected 40 views, got %q", got)
	}
}

func TestPostgresKVCounter(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`(?s)INSERT INTO stats_kv.*RETURNING value`).
		WithArgs("ac_stats_views:v1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("6"))
	mock.ExpectExec(`ON CONFLICT \(key\) DO NOTHING`).
		WithArgs("ac_stats_start:v1", "t0").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`ON CONFLICT \(key\) DO NOTHING`).
		WithArgs("ac_stats_start:v1", "t1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	kv := NewPostgresKV(mock)
	ctx := context.Background()
	if n, err := kv.Incr(ctx, "ac_stats_views:v1"); err != nil || n != 6 {
		t.Fatalf("incr: %d %v", n, err)
	}
	if created, err := kv.SetIfAbsent(ctx, "ac_stats_start:v1", "t0"); err != nil || !created {
		t.Fatalf("expected insert: %v %v", created, err)
	}
	if created, err := kv.SetIfAbsent(ctx, "ac_stats_start:v1", "t1"); err != nil || created {
		t.Fatalf("expected conflict to keep row: %v %v", created, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package stats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

const (
	keyStart = "ac_stats_start"
	keyLast  = "ac_stats_last"
	keyViews = "ac_stats_views"

	AnonymousVisitor = "anonymous"
)

// Snapshot is what the tracker knows about one visitor.
type Snapshot struct {
	Visitor    string    `json:"visitor"`
	FirstVisit time.Time `json:"first_visit"`
	LastVisit  time.Time `json:"last_visit"`
	Views      int       `json:"views"`
}

// Tracker counts page views per visitor. Storage failures never reach the
// caller; they are logged and the visit is reported with what is known.
type Tracker struct {
	kv  KV
	now func() time.Time
}

func NewTracker(kv KV) *Tracker {
	return &Tracker{kv: kv, now: time.Now}
}

// RecordVisit bumps the visitor's counter and stamps the visit. When a read
// fails nothing is written, so a flaky backend cannot reset stored values.
func (t *Tracker) RecordVisit(ctx context.Context, visitor string) Snapshot {
	visitor = normalizeVisitor(visitor)
	now := t.now().UTC()
	if c, ok := t.kv.(Counter); ok {
		return t.recordCounted(ctx, c, visitor, now)
	}

	snap, err := t.read(ctx, visitor)
	if err != nil {
		log.Printf("stats visit for %s not recorded: %v", visitor, err)
		return snap
	}

	if snap.FirstVisit.IsZero() {
		snap.FirstVisit = now
		t.set(ctx, visitor, keyStart, formatTime(now))
	}
	snap.LastVisit = now
	t.set(ctx, visitor, keyLast, formatTime(now))

	snap.Views++
	t.set(ctx, visitor, keyViews, strconv.Itoa(snap.Views))
	return snap
}

func (t *Tracker) recordCounted(ctx context.Context, c Counter, visitor string, now time.Time) Snapshot {
	views, err := c.Incr(ctx, scopedKey(visitor, keyViews))
	if err != nil {
		log.Printf("stats visit for %s not recorded: %v", visitor, err)
		snap, _ := t.read(ctx, visitor)
		return snap
	}
	snap := Snapshot{Visitor: visitor, Views: views, LastVisit: now}

	stamp := formatTime(now)
	created, err := c.SetIfAbsent(ctx, scopedKey(visitor, keyStart), stamp)
	switch {
	case err != nil:
		log.Printf("stats write %s error: %v", keyStart, err)
	case created:
		snap.FirstVisit = now
	default:
		raw, err := t.get(ctx, visitor, keyStart)
		if err != nil {
			log.Printf("stats read %s error: %v", keyStart, err)
			break
		}
		snap.FirstVisit = parseTime(raw)
		if snap.FirstVisit.IsZero() {
			snap.FirstVisit = now
			t.set(ctx, visitor, keyStart, stamp)
		}
	}

	t.set(ctx, visitor, keyLast, stamp)
	return snap
}

// Read reports the stored values. Unreadable fields come back zeroed.
func (t *Tracker) Read(ctx context.Context, visitor string) Snapshot {
	snap, err := t.read(ctx, normalizeVisitor(visitor))
	if err != nil {
		log.Printf("stats read for %s incomplete: %v", snap.Visitor, err)
	}
	return snap
}

func (t *Tracker) read(ctx context.Context, visitor string) (Snapshot, error) {
	snap := Snapshot{Visitor: visitor}
	start, errStart := t.get(ctx, visitor, keyStart)
	last, errLast := t.get(ctx, visitor, keyLast)
	views, errViews := t.get(ctx, visitor, keyViews)
	snap.FirstVisit = parseTime(start)
	snap.LastVisit = parseTime(last)
	snap.Views = parseCount(views)
	return snap, errors.Join(errStart, errLast, errViews)
}

func (t *Tracker) get(ctx context.Context, visitor, key string) (string, error) {
	v, _, err := t.kv.Get(ctx, scopedKey(visitor, key))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

func (t *Tracker) set(ctx context.Context, visitor, key, value string) {
	if err := t.kv.Set(ctx, scopedKey(visitor, key), value); err != nil {
		log.Printf("stats write %s error: %v", key, err)
	}
}

func scopedKey(visitor, key string) string {
	return key + ":" + visitor
}

func normalizeVisitor(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return AnonymousVisitor
	}
	return v
}

// parseCount reads the leading digits of v, so "12abc" counts as 12.
// Missing, negative or digit-less values restart from zero.
func parseCount(v string) int {
	v = strings.TrimLeft(v, " \t\n\r")
	v = strings.TrimPrefix(v, "+")
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts
}

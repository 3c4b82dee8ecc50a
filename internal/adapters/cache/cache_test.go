package cache

import (
	"context"
	"drone-flight-planner/internal/adapters/repositories"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/db"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	soonBike    = domain.Position{Lng: -3.1912869215011597, Lat: 55.945535152517735}
	roundPeanut = domain.Position{Lng: -3.186541, Lat: 55.944626}
)

func TestSQLWordCacheRoundTrip(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := repositories.InitSchema(ctx, conn, db.SQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	c := NewSQLWordCache(conn, db.SQLite)

	if err := c.PutMany(ctx, map[string]domain.Position{"maps.soon.bike": {Lng: 1, Lat: 1}}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
	// Upsert overwrites the earlier entry.
	if err := c.PutMany(ctx, map[string]domain.Position{"maps.soon.bike": soonBike, "pest.round.peanut": roundPeanut}); err != nil {
		t.Fatalf("PutMany upsert: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"maps.soon.bike", "pest.round.peanut", "not.cached.yet", "maps.soon.bike"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got["maps.soon.bike"] != soonBike {
		t.Fatalf("maps.soon.bike = %v, want %v", got["maps.soon.bike"], soonBike)
	}

	empty, err := c.GetMany(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetMany(nil) = %v, %v; want empty", empty, err)
	}
}

func TestRedisWordCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisWordCache(client, time.Hour)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Position{"maps.soon.bike": soonBike, "pest.round.peanut": roundPeanut}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"pest.round.peanut", "not.cached.yet", "maps.soon.bike"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got["maps.soon.bike"] != soonBike || got["pest.round.peanut"] != roundPeanut {
		t.Fatalf("positions = %v", got)
	}

	mr.FastForward(2 * time.Hour)
	expired, err := c.GetMany(ctx, []string{"maps.soon.bike"})
	if err != nil {
		t.Fatalf("GetMany after expiry: %v", err)
	}
	if len(expired) != 0 {
		t.Fatalf("hits after expiry = %d, want 0", len(expired))
	}
}

func TestRedisWordCacheRejectsCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	if err := mr.Set(wordKeyPrefix+"maps.soon.bike", "garbage"); err != nil {
		t.Fatalf("seed redis: %v", err)
	}

	c := NewRedisWordCache(client, 0)
	if _, err := c.GetMany(context.Background(), []string{"maps.soon.bike"}); err == nil {
		t.Fatal("expected error for a corrupt cache entry")
	}
}

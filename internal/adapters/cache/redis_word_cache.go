package cache

import (
	"context"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const wordKeyPrefix = "word:"

// RedisWordCache keeps resolved labels in Redis as "lng,lat" strings.
// Entries expire after TTL; zero keeps them forever.
type RedisWordCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisWordCache(client *redis.Client, ttl time.Duration) *RedisWordCache {
	return &RedisWordCache{Client: client, TTL: ttl}
}

func (r *RedisWordCache) GetMany(ctx context.Context, words []string) (_ map[string]domain.Position, err error) {
	defer obs.Time(ctx, "word.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("redis word cache: client is nil")
	}

	uniq := make([]string, 0, len(words))
	keys := make([]string, 0, len(words))
	seen := map[string]struct{}{}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
		keys = append(keys, wordKeyPrefix+w)
	}

	out := make(map[string]domain.Position, len(uniq))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get redis word cache: mget: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		p, err := decodePosition(s)
		if err != nil {
			return nil, fmt.Errorf("get redis word cache word=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = p
	}

	return out, nil
}

func (r *RedisWordCache) PutMany(ctx context.Context, results map[string]domain.Position) (err error) {
	defer obs.Time(ctx, "word.redis.PutMany")(&err)

	if r.Client == nil {
		return errors.New("redis word cache: client is nil")
	}
	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.TxPipeline()
	for word, p := range results {
		if strings.TrimSpace(word) == "" {
			return errors.New("insert redis word cache: empty word key")
		}
		pipe.Set(ctx, wordKeyPrefix+word, encodePosition(p), r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert redis word cache: exec: %w", err)
	}

	return nil
}

func encodePosition(p domain.Position) string {
	return strconv.FormatFloat(p.Lng, 'g', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'g', -1, 64)
}

func decodePosition(s string) (domain.Position, error) {
	lng, lat, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Position{}, fmt.Errorf("malformed cached position %q", s)
	}

	var p domain.Position
	var err error
	if p.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return domain.Position{}, fmt.Errorf("malformed cached longitude %q: %w", lng, err)
	}
	if p.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return domain.Position{}, fmt.Errorf("malformed cached latitude %q: %w", lat, err)
	}
	return p, nil
}

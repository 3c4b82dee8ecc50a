package webserver

import (
	"context"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type wordResponse struct {
	Coordinates struct {
		Lng *float64 `json:"lng"`
		Lat *float64 `json:"lat"`
	} `json:"coordinates"`
}

// Locate resolves one three-word label without consulting the cache.
func (c *Client) Locate(ctx context.Context, word string) (domain.Position, error) {
	path, err := wordPath(word)
	if err != nil {
		return domain.Position{}, err
	}

	var decoded wordResponse
	if err := c.getJSON(ctx, path, &decoded); err != nil {
		return domain.Position{}, fmt.Errorf("locate %q: %w", word, err)
	}
	if decoded.Coordinates.Lng == nil || decoded.Coordinates.Lat == nil {
		return domain.Position{}, fmt.Errorf("locate %q: response has no coordinates", word)
	}

	return domain.Position{Lng: *decoded.Coordinates.Lng, Lat: *decoded.Coordinates.Lat}, nil
}

// LocateMany resolves labels through the cache first, then fetches the misses
// concurrently and writes them back to the cache. The result is keyed by the
// labels as given, surrounding whitespace included.
func (c *Client) LocateMany(ctx context.Context, words []string) (_ map[string]domain.Position, err error) {
	defer obs.Time(ctx, "webserver.LocateMany")(&err)

	resolved, err := c.locateTrimmed(ctx, words)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Position, len(words))
	for _, w := range words {
		if p, ok := resolved[strings.TrimSpace(w)]; ok {
			out[w] = p
		}
	}
	return out, nil
}

func (c *Client) locateTrimmed(ctx context.Context, words []string) (map[string]domain.Position, error) {
	seen := make(map[string]struct{}, len(words))
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}

	out := make(map[string]domain.Position, len(uniq))
	if c.cache != nil {
		hits, err := c.cache.GetMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("locate many: get word cache: %w", err)
		}
		for w, p := range hits {
			out[w] = p
		}
	}

	misses := make([]string, 0, len(uniq))
	for _, w := range uniq {
		if _, ok := out[w]; !ok {
			misses = append(misses, w)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	fresh := make(map[string]domain.Position, len(misses))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for _, w := range misses {
		w := w
		g.Go(func() error {
			p, err := c.Locate(gctx, w)
			if err != nil {
				return err
			}
			mu.Lock()
			fresh[w] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("locate many: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("word cache write failed entries=%d err=%v", len(fresh), err)
		}
	}

	for w, p := range fresh {
		out[w] = p
	}
	return out, nil
}

// wordPath maps "a.b.c" to /words/a/b/c/details.json.
func wordPath(word string) (string, error) {
	parts := strings.Split(strings.TrimSpace(word), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("locate %q: want three dot-separated words", word)
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, "/ ") {
			return "", fmt.Errorf("locate %q: malformed word %q", word, p)
		}
	}
	return "/words/" + strings.Join(parts, "/") + "/details.json", nil
}

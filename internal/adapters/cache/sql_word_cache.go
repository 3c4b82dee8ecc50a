package cache

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/db"
	"drone-flight-planner/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLWordCache is a SQL-backed cache mapping three-word labels to positions.
// It works against both SQLite and Postgres; queries are rebound per dialect.
type SQLWordCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLWordCache(conn *sql.DB, dialect db.Dialect) *SQLWordCache {
	return &SQLWordCache{DB: conn, Dialect: dialect}
}

// Fetch cached positions for the given labels.
func (s *SQLWordCache) GetMany(
	ctx context.Context,
	words []string,
) (_ map[string]domain.Position, err error) {
	defer obs.Time(ctx, "word.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("word cache: db is nil")
	}

	seen := map[string]struct{}{}
	args := make([]any, 0, len(words))
	ph := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		args = append(args, w)
		ph = append(ph, "?")
	}

	if len(args) == 0 {
		return map[string]domain.Position{}, nil
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT word, lng, lat
	FROM word_cache
	WHERE word IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("get word cache: query word_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Position, len(args))
	for rows.Next() {
		var word string
		var p domain.Position
		if err := rows.Scan(&word, &p.Lng, &p.Lat); err != nil {
			return nil, fmt.Errorf("get word cache: scan rows: %w", err)
		}
		out[word] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get word cache: row iteration: %w", err)
	}

	return out, nil
}

// Store label -> position mappings in the cache.
func (s *SQLWordCache) PutMany(ctx context.Context, results map[string]domain.Position) (err error) {
	defer obs.Time(ctx, "word.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("word cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert word cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO word_cache (word, lng, lat)
	VALUES (?, ?, ?)
	ON CONFLICT (word) DO UPDATE
	SET lng = excluded.lng,
		lat = excluded.lat;
	`))
	if err != nil {
		return fmt.Errorf("insert word cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for word, p := range results {
		if strings.TrimSpace(word) == "" {
			return errors.New("insert word cache: empty word key")
		}

		if _, err := stmt.ExecContext(ctx, word, p.Lng, p.Lat); err != nil {
			return fmt.Errorf("insert word cache word=%q: %w", word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert word cache commit: %w", err)
	}

	return nil
}

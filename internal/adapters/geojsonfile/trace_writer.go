package geojsonfile

import (
	"context"
	"drone-flight-planner/internal/domain"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TraceWriter renders a flight trace as a GeoJSON FeatureCollection holding a
// single LineString, one file per day.
type TraceWriter struct {
	Dir string
}

func NewTraceWriter(dir string) *TraceWriter {
	if dir == "" {
		dir = "."
	}
	return &TraceWriter{Dir: dir}
}

// FileName returns drone-DD-MM-YYYY.geojson for a YYYY-MM-DD date.
func FileName(date string) (string, error) {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", fmt.Errorf("trace file name: invalid date %q: %w", date, err)
	}
	return "drone-" + d.Format("02-01-2006") + ".geojson", nil
}

func (w *TraceWriter) WriteTrace(ctx context.Context, date string, trace []domain.Position) (string, error) {
	if len(trace) == 0 {
		return "", errors.New("write trace: trace is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := FileName(date)
	if err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}

	b, err := Encode(trace)
	if err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("write trace: create dir %s: %w", w.Dir, err)
	}

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}

	return path, nil
}

// Encode marshals the trace as a FeatureCollection with one LineString feature.
func Encode(trace []domain.Position) ([]byte, error) {
	line := make(orb.LineString, 0, len(trace))
	for _, p := range trace {
		line = append(line, orb.Point{p.Lng, p.Lat})
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(line))

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode trace: %w", err)
	}
	return b, nil
}

package geojsonfile

import (
	"context"
	"drone-flight-planner/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestFileName(t *testing.T) {
	got, err := FileName("2022-01-09")
	if err != nil {
		t.Fatalf("FileName: %v", err)
	}
	if got != "drone-09-01-2022.geojson" {
		t.Fatalf("name = %q, want drone-09-01-2022.geojson", got)
	}

	if _, err := FileName("09-01-2022"); err == nil {
		t.Fatal("expected error for a malformed date")
	}
}

func TestWriteTrace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewTraceWriter(dir)

	trace := []domain.Position{
		{Lng: -3.186874, Lat: 55.944494},
		{Lng: -3.187024, Lat: 55.944494},
		{Lng: -3.186874, Lat: 55.944494},
	}

	path, err := w.WriteTrace(context.Background(), "2022-01-01", trace)
	if err != nil {
		t.Fatalf("WriteTrace: %v", err)
	}
	if filepath.Base(path) != "drone-01-01-2022.geojson" {
		t.Fatalf("path = %q", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("features = %d, want 1", len(fc.Features))
	}
	line, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("geometry = %T, want LineString", fc.Features[0].Geometry)
	}
	if len(line) != len(trace) {
		t.Fatalf("points = %d, want %d", len(line), len(trace))
	}
	if line[1] != (orb.Point{-3.187024, 55.944494}) {
		t.Fatalf("point 1 = %v", line[1])
	}
}

func TestWriteTraceRejectsEmpty(t *testing.T) {
	if _, err := NewTraceWriter(t.TempDir()).WriteTrace(context.Background(), "2022-01-01", nil); err == nil {
		t.Fatal("expected error for an empty trace")
	}
}

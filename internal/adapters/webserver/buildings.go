package webserver

import (
	"context"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NoFlyZones returns every polygon ring in the no-fly-zone collection.
func (c *Client) NoFlyZones(ctx context.Context) (_ []domain.NoFlyZone, err error) {
	defer obs.Time(ctx, "webserver.NoFlyZones")(&err)

	fc, err := c.getFeatures(ctx, "/buildings/no-fly-zones.geojson")
	if err != nil {
		return nil, fmt.Errorf("get no-fly zones: %w", err)
	}

	var zones []domain.NoFlyZone
	for i, f := range fc.Features {
		name := f.Properties.MustString("name", fmt.Sprintf("zone-%d", i))

		var polys []orb.Polygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polys = append(polys, g)
		case orb.MultiPolygon:
			polys = append(polys, g...)
		default:
			return nil, fmt.Errorf("get no-fly zones: feature %q: unsupported geometry %T", name, f.Geometry)
		}

		for _, poly := range polys {
			for _, ring := range poly {
				vertices, distinct := ringVertices(ring)
				if distinct < 3 {
					return nil, fmt.Errorf("get no-fly zones: feature %q: ring has %d distinct vertices", name, distinct)
				}
				zones = append(zones, domain.NoFlyZone{Name: name, Vertices: vertices})
			}
		}
	}

	return zones, nil
}

// Landmarks returns the detour points in file order.
func (c *Client) Landmarks(ctx context.Context) (_ []domain.Position, err error) {
	defer obs.Time(ctx, "webserver.Landmarks")(&err)

	fc, err := c.getFeatures(ctx, "/buildings/landmarks.geojson")
	if err != nil {
		return nil, fmt.Errorf("get landmarks: %w", err)
	}

	out := make([]domain.Position, 0, len(fc.Features))
	for _, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("get landmarks: unsupported geometry %T", f.Geometry)
		}
		out = append(out, domain.Position{Lng: p.Lon(), Lat: p.Lat()})
	}

	return out, nil
}

func (c *Client) getFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	b, err := c.getBody(ctx, path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("GET %s: decode geojson: %w", path, err)
	}
	return fc, nil
}

// ringVertices drops the repeated closing vertex; zones close implicitly.
// It also reports how many distinct positions the ring has.
func ringVertices(ring orb.Ring) ([]domain.Position, int) {
	pts := []orb.Point(ring)
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}

	seen := make(map[orb.Point]struct{}, len(pts))
	out := make([]domain.Position, 0, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
		out = append(out, domain.Position{Lng: p.Lon(), Lat: p.Lat()})
	}
	return out, len(seen)
}

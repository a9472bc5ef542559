package loader

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	da "github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

const riskScorePropertyKey = "risk_score"

// BoundingBox clips the road network to an area of interest before graph
// construction, e.g. a city boundary.
type BoundingBox struct {
	minLat, minLon, maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}
}

func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon
}

func (b *BoundingBox) containsAny(points []geo.Coordinate) bool {
	for _, p := range points {
		if b.Contains(p.GetLat(), p.GetLon()) {
			return true
		}
	}
	return false
}

// LoadRoadNetwork reads a GeoJSON FeatureCollection of road geometries from
// path. bounds may be nil to keep the whole file.
func LoadRoadNetwork(path string, bounds *BoundingBox, log *zap.Logger) ([]da.RoadFeature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidData,
			"cannot read road network file %s", path)
	}
	return ParseRoadNetwork(data, bounds, log)
}

// ParseRoadNetwork decodes LineString and MultiLineString features into road
// features. a `risk_score` property, when present, is carried through so the
// graph builder can skip crime attribution for pre-scored networks.
func ParseRoadNetwork(data []byte, bounds *BoundingBox, log *zap.Logger) ([]da.RoadFeature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidData, "malformed road network geojson")
	}

	features := make([]da.RoadFeature, 0, len(fc.Features))
	skippedGeometries := 0
	for _, f := range fc.Features {
		var lines []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{g}
		case orb.MultiLineString:
			lines = g
		default:
			skippedGeometries++
			continue
		}

		riskScore, hasRiskScore := float64Property(f.Properties, riskScorePropertyKey)

		for _, line := range lines {
			if len(line) < 2 {
				continue
			}
			points := make([]geo.Coordinate, len(line))
			for i, p := range line {
				points[i] = geo.NewCoordinate(p.Lat(), p.Lon())
			}
			if bounds != nil && !bounds.containsAny(points) {
				continue
			}
			if hasRiskScore {
				features = append(features, da.NewRoadFeatureWithRisk(points, riskScore))
			} else {
				features = append(features, da.NewRoadFeature(points))
			}
		}
	}

	log.Info("road network parsed",
		zap.Int("features", len(features)),
		zap.Int("skipped_non_line_geometries", skippedGeometries))
	return features, nil
}

func float64Property(props geojson.Properties, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}

package spatialindex

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

type snapQueryKey struct {
	lat, lon float64
}

// Rtree indexes the graph vertex coordinates for nearest-node snapping.
// queries repeat the same endpoints often (the four-alpha comparison snaps
// each endpoint once per request), so snap results are kept in a bounded
// LRU. rebuilt from scratch whenever the graph is rebuilt.
type Rtree struct {
	tr        *rtree.RTreeG[datastructure.Index]
	graph     *datastructure.Graph
	snapCache *lru.Cache[snapQueryKey, datastructure.Index]
}

func NewRtree() (*Rtree, error) {
	snapCache, err := lru.New[snapQueryKey, datastructure.Index](pkg.SNAP_QUERY_CACHE_SIZE)
	if err != nil {
		return nil, err
	}
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr:        &tr,
		snapCache: snapCache,
	}, nil
}

// Build indexes every graph vertex as a point entry.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))

	graph.ForVertices(func(v datastructure.Index, coord geo.Coordinate) {
		point := [2]float64{coord.GetLon(), coord.GetLat()}
		rt.tr.Insert(point, point, v)
	})
	rt.graph = graph

	log.Info("R-tree spatial index built.")
}

// searchWithinRadius returns all vertices inside the bounding box with
// half-diagonal radius (in km) around the query point.
func (rt *Rtree) searchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// SnapToNearestNode maps an arbitrary query coordinate to the graph vertex
// minimizing great-circle distance to it. the search window starts small
// and doubles until the nearest candidate is provably inside it: the box
// corners sit radius away along the diagonal, so only radius/sqrt2 per
// axis is covered, and a candidate is accepted only within that inscribed
// half-width. ties keep the first encountered candidate, which is
// deterministic for a fixed graph snapshot.
func (rt *Rtree) SnapToNearestNode(qLat, qLon float64) (datastructure.Index, error) {
	if rt.graph == nil || rt.graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(nil, util.ErrNoPathFound,
			"cannot snap (%f,%f): graph has zero nodes", qLat, qLon)
	}

	key := snapQueryKey{lat: qLat, lon: qLon}
	if v, ok := rt.snapCache.Get(key); ok {
		return v, nil
	}

	for radius := pkg.SNAP_INITIAL_RADIUS_KM; radius <= pkg.SNAP_MAX_RADIUS_KM; radius *= 2 {
		candidates := rt.searchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}

		best, bestDist := nearestOf(rt.graph, candidates, qLat, qLon)
		if bestDist/1000.0 > radius/math.Sqrt2 {
			// a closer vertex may still sit outside the current window
			continue
		}

		rt.snapCache.Add(key, best)
		return best, nil
	}

	// far-out query: the window never covered the graph, fall back to a
	// full scan so the nearest-node contract still holds.
	all := make([]datastructure.Index, 0, rt.graph.NumberOfVertices())
	rt.graph.ForVertices(func(v datastructure.Index, _ geo.Coordinate) {
		all = append(all, v)
	})
	best, _ := nearestOf(rt.graph, all, qLat, qLon)
	rt.snapCache.Add(key, best)
	return best, nil
}

func nearestOf(graph *datastructure.Graph, candidates []datastructure.Index,
	qLat, qLon float64) (datastructure.Index, float64) {
	best := candidates[0]
	bestDist := math.Inf(1)
	for _, v := range candidates {
		coord := graph.GetVertexCoordinate(v)
		dist := geo.CalculateHaversineDistanceInMeter(qLat, qLon, coord.GetLat(), coord.GetLon())
		if dist < bestDist {
			best = v
			bestDist = dist
		}
	}
	return best, bestDist
}

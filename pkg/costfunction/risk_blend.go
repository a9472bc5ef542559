package costfunction

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/geo"
)

type weightCacheKey struct {
	distance    float64
	maxDistance float64
	riskScore   float64
	alpha       float64
}

type heuristicCacheKey struct {
	fromLat float64
	fromLon float64
	toLat   float64
	toLon   float64
}

// RiskBlendFunction blends normalized distance against risk score:
//
//	weight = ((1-alpha)*distance/maxDistance + alpha*riskScore) * maxDistance
//
// normalizing by the graph-wide maxDistance puts the distance term on the
// same [0,1] scale as riskScore before blending, and rescaling restores
// natural meter units, so alpha=0 reduces exactly to pure-distance
// shortest path. results are memoized in bounded LRU caches keyed by the
// full input tuple: the same edge yields different weights for different
// alpha, so alpha is part of the key.
type RiskBlendFunction struct {
	weightCache    *lru.Cache[weightCacheKey, float64]
	heuristicCache *lru.Cache[heuristicCacheKey, float64]
}

func NewRiskBlendFunction() (*RiskBlendFunction, error) {
	weightCache, err := lru.New[weightCacheKey, float64](pkg.EDGE_WEIGHT_CACHE_SIZE)
	if err != nil {
		return nil, err
	}
	heuristicCache, err := lru.New[heuristicCacheKey, float64](pkg.HEURISTIC_CACHE_SIZE)
	if err != nil {
		return nil, err
	}
	return &RiskBlendFunction{
		weightCache:    weightCache,
		heuristicCache: heuristicCache,
	}, nil
}

func (rb *RiskBlendFunction) GetWeight(e EdgeAttributes, maxDistance, alpha float64) float64 {
	key := weightCacheKey{
		distance:    e.GetDistance(),
		maxDistance: maxDistance,
		riskScore:   e.GetRiskScore(),
		alpha:       alpha,
	}
	if weight, ok := rb.weightCache.Get(key); ok {
		return weight
	}

	normDistance := e.GetDistance() / maxDistance
	weight := ((1-alpha)*normDistance + alpha*e.GetRiskScore()) * maxDistance

	rb.weightCache.Add(key, weight)
	return weight
}

// GetHeuristic returns (1-alpha) times the great-circle distance between
// from and to. expanding the blend, every edge weight satisfies
// weight = (1-alpha)*distance + alpha*riskScore*maxDistance >= (1-alpha)*distance
// since riskScore >= 0, so the scaled great-circle distance never
// overestimates the remaining blended cost for any alpha in [0,1]. the raw
// great-circle distance alone would overestimate at high alpha whenever
// risk deflates edge cost below raw distance.
func (rb *RiskBlendFunction) GetHeuristic(from, to geo.Coordinate, alpha float64) float64 {
	key := heuristicCacheKey{
		fromLat: from.GetLat(),
		fromLon: from.GetLon(),
		toLat:   to.GetLat(),
		toLon:   to.GetLon(),
	}
	crowFlight, ok := rb.heuristicCache.Get(key)
	if !ok {
		crowFlight = geo.CalculateHaversineDistanceInMeter(from.GetLat(), from.GetLon(),
			to.GetLat(), to.GetLon())
		rb.heuristicCache.Add(key, crowFlight)
	}

	return (1 - alpha) * crowFlight
}

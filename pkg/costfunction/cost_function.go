package costfunction

import (
	"github.com/safepath-labs/riskrouter/pkg/geo"
)

type EdgeAttributes interface {
	GetDistance() float64
	GetRiskScore() float64
}

// CostFunction maps an edge's raw attributes plus the caller's risk weight
// alpha to a scalar traversal cost, and provides the matching admissible
// lower bound for the remaining cost to a goal vertex. implementations must
// be deterministic and safe for concurrent use: one cost function instance
// is shared by all searches against the same graph.
type CostFunction interface {
	GetWeight(e EdgeAttributes, maxDistance, alpha float64) float64
	GetHeuristic(from, to geo.Coordinate, alpha float64) float64
}

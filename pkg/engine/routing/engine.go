package routing

import (
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/costfunction"
	da "github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

// RoutingEngine bundles the immutable risk graph with the shared cost
// function. every search invocation owns its private frontier and label
// maps, so one engine serves concurrent searches without locking.
type RoutingEngine struct {
	graph              *da.Graph
	costFunction       costfunction.CostFunction
	maxSettledVertices int
	log                *zap.Logger
}

func NewRoutingEngine(graph *da.Graph, costFunction costfunction.CostFunction,
	maxSettledVertices int, log *zap.Logger) *RoutingEngine {
	if maxSettledVertices <= 0 {
		maxSettledVertices = pkg.DEFAULT_MAX_SETTLED_VERTICES
	}
	return &RoutingEngine{
		graph:              graph,
		costFunction:       costFunction,
		maxSettledVertices: maxSettledVertices,
		log:                log,
	}
}

func (engine *RoutingEngine) GetGraph() *da.Graph {
	return engine.graph
}

func (engine *RoutingEngine) GetCostFunction() costfunction.CostFunction {
	return engine.costFunction
}

// ValidateAlpha rejects risk weights outside [0,1].
func ValidateAlpha(alpha float64) error {
	if alpha < pkg.MIN_ALPHA || alpha > pkg.MAX_ALPHA {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"alpha must be in [%.1f,%.1f], got %f", pkg.MIN_ALPHA, pkg.MAX_ALPHA, alpha)
	}
	return nil
}

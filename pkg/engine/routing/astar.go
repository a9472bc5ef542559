package routing

import (
	"math"

	"github.com/safepath-labs/riskrouter/pkg"
	da "github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

// AStar runs one best-first search over the risk graph for a single risk
// weight alpha. frontier ordering is f = g + h with h the cost function's
// alpha-scaled great-circle lower bound. all mutable state lives in the
// AStar value, so concurrent searches against the same engine are safe.
type AStar struct {
	engine *RoutingEngine

	forwardInfo map[da.Index]*VertexInfo
	pq          *da.MinHeap[da.AstarQueryKey]

	numSettledNodes int
	dataErr         error
}

func NewAStar(engine *RoutingEngine) *AStar {
	return &AStar{
		engine:      engine,
		forwardInfo: make(map[da.Index]*VertexInfo),
		pq:          da.NewFourAryHeap[da.AstarQueryKey](),
	}
}

// ShortestPath searches from source to target under risk weight alpha and
// returns the reconstructed path with its aggregates. it returns either a
// complete valid path or a typed failure: ErrBadParamInput for an invalid
// alpha, ErrNoPathFound when the frontier empties (or the settle budget is
// exhausted) before reaching target, ErrInvalidData when the graph carries
// broken edge attributes.
func (as *AStar) ShortestPath(source, target da.Index, alpha float64) (*da.RoutePath, error) {
	if err := ValidateAlpha(alpha); err != nil {
		return nil, err
	}
	graph := as.engine.GetGraph()
	n := da.Index(graph.NumberOfVertices())
	if source >= n || target >= n {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"source %d or target %d outside vertex range %d", source, target, n)
	}

	targetCoord := graph.GetVertexCoordinate(target)
	cf := as.engine.GetCostFunction()

	sNode := da.NewPriorityQueueNode(
		cf.GetHeuristic(graph.GetVertexCoordinate(source), targetCoord, alpha),
		da.NewAstarQueryKey(source))
	as.forwardInfo[source] = NewVertexInfo(0,
		newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), sNode)
	as.pq.Insert(sNode)

	for !as.pq.IsEmpty() {
		if as.numSettledNodes >= as.engine.maxSettledVertices {
			return nil, util.WrapErrorf(nil, util.ErrNoPathFound,
				"search budget of %d settled vertices exhausted before reaching %d",
				as.engine.maxSettledVertices, target)
		}

		finish := as.graphSearchUni(targetCoord, target, alpha)
		as.numSettledNodes++

		if as.dataErr != nil {
			return nil, as.dataErr
		}
		if finish {
			return as.reconstructPath(source, target)
		}
	}

	return nil, util.WrapErrorf(nil, util.ErrNoPathFound,
		"vertices %d and %d are not connected", source, target)
}

// graphSearchUni settles one frontier entry and relaxes its incident edges.
func (as *AStar) graphSearchUni(targetCoord geo.Coordinate, target da.Index, alpha float64) bool {
	queryKey, _ := as.pq.ExtractMin()
	uItem := queryKey.GetItem()
	uId := uItem.GetNode()

	if uId == target {
		return true
	}

	graph := as.engine.GetGraph()
	cf := as.engine.GetCostFunction()
	uCost := as.forwardInfo[uId].GetCost()

	graph.ForEdgesOf(uId, func(edgeId da.Index, edge *da.Edge) {
		vId := edge.GetOtherEndpoint(uId)
		if vId == uId {
			return
		}

		edgeWeight := cf.GetWeight(edge, graph.GetMaxDistance(), alpha)
		if math.IsNaN(edgeWeight) || edgeWeight < 0 {
			as.dataErr = util.WrapErrorf(nil, util.ErrInvalidData,
				"edge %d has invalid weight %f (distance=%f risk=%f)",
				edgeId, edgeWeight, edge.GetDistance(), edge.GetRiskScore())
			return
		}

		newCost := uCost + edgeWeight
		if newCost >= pkg.INF_WEIGHT {
			return
		}

		vInfo, vAlreadyVisited := as.forwardInfo[vId]
		if vAlreadyVisited && da.Ge(newCost, vInfo.GetCost()) {
			// newCost is not better, do nothing
			return
		}

		priority := newCost + cf.GetHeuristic(graph.GetVertexCoordinate(vId), targetCoord, alpha)

		if vAlreadyVisited {
			vInfo.UpdateCost(newCost)
			vInfo.UpdateParent(newVertexEdgePair(uId, edgeId))
			if err := as.pq.DecreaseKey(vInfo.GetHeapNode(), priority); err != nil {
				// entry already left the frontier, re-open it
				vNode := da.NewPriorityQueueNode(priority, da.NewAstarQueryKey(vId))
				vInfo.SetHeapNode(vNode)
				as.pq.Insert(vNode)
			}
		} else {
			vNode := da.NewPriorityQueueNode(priority, da.NewAstarQueryKey(vId))
			as.forwardInfo[vId] = NewVertexInfo(newCost, newVertexEdgePair(uId, edgeId), vNode)
			as.pq.Insert(vNode)
		}
	})

	return false
}

// reconstructPath follows the back-pointers from target to source, reverses
// the chain, and accumulates total distance plus the distance-weighted
// average risk while walking it.
func (as *AStar) reconstructPath(source, target da.Index) (*da.RoutePath, error) {
	graph := as.engine.GetGraph()

	vertices := make([]da.Index, 0)
	edgeGeometries := make([][]geo.Coordinate, 0)
	totalDistance := 0.0
	weightedRisk := 0.0

	cur := target
	for {
		vertices = append(vertices, cur)
		if cur == source {
			break
		}

		info, ok := as.forwardInfo[cur]
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrInvalidData,
				"back-pointer chain broken at vertex %d", cur)
		}
		parent := info.GetParent()
		if parent.getVertex() == da.INVALID_VERTEX_ID || parent.getEdge() == da.INVALID_EDGE_ID {
			return nil, util.WrapErrorf(nil, util.ErrInvalidData,
				"vertex %d has no parent but is not the source", cur)
		}

		edge := graph.GetEdge(parent.getEdge())
		totalDistance += edge.GetDistance()
		weightedRisk += edge.GetRiskScore() * edge.GetDistance()
		edgeGeometries = append(edgeGeometries, edge.GetGeometry())

		cur = parent.getVertex()
	}

	vertices = util.ReverseG(vertices)
	edgeGeometries = util.ReverseG(edgeGeometries)

	averageRisk := 0.0
	if da.Gt(totalDistance, 0) {
		averageRisk = weightedRisk / totalDistance
	}

	coords := make([]geo.Coordinate, len(vertices))
	for i, v := range vertices {
		coords[i] = graph.GetVertexCoordinate(v)
	}

	return da.NewRoutePath(vertices, coords, edgeGeometries, totalDistance, averageRisk), nil
}

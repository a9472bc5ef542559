package datastructure

import (
	"math"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

// Edge is one undirected road segment. distance is the haversine length of
// the segment in meters, riskScore is the crime exposure of the segment in
// [0,1]. maxDistance is not stored per edge: it is a single graph-wide
// constant, see Graph.GetMaxDistance.
type Edge struct {
	from      Index
	to        Index
	distance  float64
	riskScore float64
	geometry  []geo.Coordinate
}

func NewEdge(from, to Index, distance, riskScore float64, geometry []geo.Coordinate) Edge {
	return Edge{
		from:      from,
		to:        to,
		distance:  distance,
		riskScore: riskScore,
		geometry:  geometry,
	}
}

func (e *Edge) GetFrom() Index {
	return e.from
}

func (e *Edge) GetTo() Index {
	return e.to
}

func (e *Edge) GetDistance() float64 {
	return e.distance
}

func (e *Edge) GetRiskScore() float64 {
	return e.riskScore
}

func (e *Edge) GetGeometry() []geo.Coordinate {
	return e.geometry
}

// GetOtherEndpoint returns the endpoint of e that is not u.
func (e *Edge) GetOtherEndpoint(u Index) Index {
	if e.from == u {
		return e.to
	}
	return e.from
}

// Graph is the weighted undirected road network. vertices are road geometry
// coordinates interned to dense integer ids at construction, so searches key
// their label maps on Index instead of raw float pairs. immutable after
// Build: concurrent searches read it without synchronization.
type Graph struct {
	vertexCoords  []geo.Coordinate
	edges         []Edge
	adjacencyList [][]Index
	maxDistance   float64
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertexCoords)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetVertexCoordinate(v Index) geo.Coordinate {
	return g.vertexCoords[v]
}

func (g *Graph) GetEdge(edgeId Index) *Edge {
	return &g.edges[edgeId]
}

// GetMaxDistance returns the maximum edge distance over the whole graph,
// recomputed on every Build. always > 0 for a valid graph.
func (g *Graph) GetMaxDistance() float64 {
	return g.maxDistance
}

// ForEdgesOf iterates over the edges incident to vertex u.
func (g *Graph) ForEdgesOf(u Index, fn func(edgeId Index, edge *Edge)) {
	for _, edgeId := range g.adjacencyList[u] {
		fn(edgeId, &g.edges[edgeId])
	}
}

func (g *Graph) ForVertices(fn func(v Index, coord geo.Coordinate)) {
	for v := range g.vertexCoords {
		fn(Index(v), g.vertexCoords[v])
	}
}

// RoadFeature is one line geometry record from the road network source,
// optionally annotated with a risk score by the loader.
type RoadFeature struct {
	points       []geo.Coordinate
	riskScore    float64
	hasRiskScore bool
}

func NewRoadFeature(points []geo.Coordinate) RoadFeature {
	return RoadFeature{points: points}
}

func NewRoadFeatureWithRisk(points []geo.Coordinate, riskScore float64) RoadFeature {
	return RoadFeature{points: points, riskScore: riskScore, hasRiskScore: true}
}

func (rf *RoadFeature) GetPoints() []geo.Coordinate {
	return rf.points
}

func (rf *RoadFeature) GetRiskScore() (float64, bool) {
	return rf.riskScore, rf.hasRiskScore
}

func (rf *RoadFeature) SetRiskScore(riskScore float64) {
	rf.riskScore = riskScore
	rf.hasRiskScore = true
}

type coordKey struct {
	lat, lon float64
}

// GraphBuilder decomposes road features into edges and interns their
// endpoint coordinates. coordinates are exact map keys: near-duplicate
// points from upstream geometry become distinct vertices, and coincident
// segments become parallel edges, both accepted as source data properties.
type GraphBuilder struct {
	vertexIds     map[coordKey]Index
	vertexCoords  []geo.Coordinate
	edges         []Edge
	adjacencyList [][]Index
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertexIds: make(map[coordKey]Index),
	}
}

func (b *GraphBuilder) internVertex(c geo.Coordinate) Index {
	key := coordKey{lat: c.GetLat(), lon: c.GetLon()}
	if id, ok := b.vertexIds[key]; ok {
		return id
	}
	id := Index(len(b.vertexCoords))
	b.vertexIds[key] = id
	b.vertexCoords = append(b.vertexCoords, c)
	b.adjacencyList = append(b.adjacencyList, nil)
	return id
}

// AddFeature splits a feature into consecutive coordinate pairs, one edge
// per pair. features without a risk score get the default midpoint score,
// scores outside [0,1] are clamped so the heuristic lower bound stays valid.
func (b *GraphBuilder) AddFeature(feature RoadFeature) {
	riskScore, ok := feature.GetRiskScore()
	if !ok {
		riskScore = pkg.DEFAULT_RISK_SCORE
	}
	riskScore = util.Clamp(riskScore, pkg.MIN_RISK_SCORE, pkg.MAX_RISK_SCORE)

	points := feature.GetPoints()
	for i := 0; i < len(points)-1; i++ {
		from := b.internVertex(points[i])
		to := b.internVertex(points[i+1])

		distance := geo.CalculateHaversineDistanceInMeter(points[i].GetLat(), points[i].GetLon(),
			points[i+1].GetLat(), points[i+1].GetLon())

		edgeId := Index(len(b.edges))
		b.edges = append(b.edges, NewEdge(from, to, distance, riskScore,
			[]geo.Coordinate{points[i], points[i+1]}))
		b.adjacencyList[from] = append(b.adjacencyList[from], edgeId)
		b.adjacencyList[to] = append(b.adjacencyList[to], edgeId)
	}
}

func (b *GraphBuilder) AddFeatures(features []RoadFeature) {
	for _, f := range features {
		b.AddFeature(f)
	}
}

// Build finalizes the graph and stamps the graph-wide maxDistance. an empty
// or fully degenerate (zero-length) network is a data error, no partial
// graph is returned.
func (b *GraphBuilder) Build() (*Graph, error) {
	if len(b.edges) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrInvalidData,
			"road network yields zero edges, cannot build graph")
	}

	maxDistance := 0.0
	for i := range b.edges {
		maxDistance = math.Max(maxDistance, b.edges[i].distance)
	}
	if !Gt(maxDistance, 0) {
		return nil, util.WrapErrorf(nil, util.ErrInvalidData,
			"all %d edges are zero-length, max edge distance must be > 0", len(b.edges))
	}

	return &Graph{
		vertexCoords:  b.vertexCoords,
		edges:         b.edges,
		adjacencyList: b.adjacencyList,
		maxDistance:   maxDistance,
	}, nil
}

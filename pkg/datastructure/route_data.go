package datastructure

import (
	"github.com/safepath-labs/riskrouter/pkg/geo"
)

// RoutePath is one complete search result: the ordered vertex sequence from
// snapped source to snapped destination plus the aggregates derived while
// walking the reconstructed path forward.
type RoutePath struct {
	vertices       []Index
	coords         []geo.Coordinate
	edgeGeometries [][]geo.Coordinate
	totalDistance  float64
	averageRisk    float64
}

func NewRoutePath(vertices []Index, coords []geo.Coordinate, edgeGeometries [][]geo.Coordinate,
	totalDistance, averageRisk float64) *RoutePath {
	return &RoutePath{
		vertices:       vertices,
		coords:         coords,
		edgeGeometries: edgeGeometries,
		totalDistance:  totalDistance,
		averageRisk:    averageRisk,
	}
}

func (rp *RoutePath) GetVertices() []Index {
	return rp.vertices
}

func (rp *RoutePath) GetCoordinates() []geo.Coordinate {
	return rp.coords
}

// GetEdgeGeometries returns the ordered underlying segments for rendering.
func (rp *RoutePath) GetEdgeGeometries() [][]geo.Coordinate {
	return rp.edgeGeometries
}

// GetTotalDistance returns the summed edge distance along the path in meters.
func (rp *RoutePath) GetTotalDistance() float64 {
	return rp.totalDistance
}

// GetAverageRisk returns the distance-weighted mean risk score of the path,
// 0 for a degenerate single-vertex path.
func (rp *RoutePath) GetAverageRisk() float64 {
	return rp.averageRisk
}

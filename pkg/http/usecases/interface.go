package usecases

import (
	"github.com/safepath-labs/riskrouter/pkg/datastructure"
)

type SpatialIndex interface {
	SnapToNearestNode(lat, lon float64) (datastructure.Index, error)
}

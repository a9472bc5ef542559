package controllers

import (
	"github.com/safepath-labs/riskrouter/pkg/http/usecases"
)

type RouteService interface {
	SafeRoutes(origLat, origLon, dstLat, dstLon float64, alphas []float64) ([]usecases.AlphaRoute, error)
}

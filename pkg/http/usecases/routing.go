package usecases

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/concurrent"
	"github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/engine/routing"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

// AlphaRoute is one search outcome of a multi-preference request. a failed
// search carries its error here instead of aborting the sibling searches.
type AlphaRoute struct {
	alpha       float64
	description string
	distance    float64
	averageRisk float64
	nodeCount   int
	polyline    string
	found       bool
	err         error
}

func NewAlphaRoute(alpha float64, description string, distance, averageRisk float64,
	nodeCount int, polyline string, found bool, err error) AlphaRoute {
	return AlphaRoute{
		alpha:       alpha,
		description: description,
		distance:    distance,
		averageRisk: averageRisk,
		nodeCount:   nodeCount,
		polyline:    polyline,
		found:       found,
		err:         err,
	}
}

func (ar *AlphaRoute) GetAlpha() float64 {
	return ar.alpha
}

func (ar *AlphaRoute) GetDescription() string {
	return ar.description
}

func (ar *AlphaRoute) GetDistance() float64 {
	return ar.distance
}

func (ar *AlphaRoute) GetAverageRisk() float64 {
	return ar.averageRisk
}

func (ar *AlphaRoute) GetNodeCount() int {
	return ar.nodeCount
}

func (ar *AlphaRoute) GetPolyline() string {
	return ar.polyline
}

func (ar *AlphaRoute) IsFound() bool {
	return ar.found
}

func (ar *AlphaRoute) GetErr() error {
	return ar.err
}

type RouteService struct {
	log          *zap.Logger
	engine       *routing.RoutingEngine
	spatialIndex SpatialIndex
}

func NewRouteService(log *zap.Logger, engine *routing.RoutingEngine, spatialIndex SpatialIndex) *RouteService {
	return &RouteService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
	}
}

type alphaJob struct {
	idx   int
	alpha float64
}

type alphaResult struct {
	idx   int
	route AlphaRoute
}

// SafeRoutes snaps the endpoints once and searches a route for every risk
// weight in alphas, preserving their order in the result. invalid alphas and
// snap failures fail the whole request; a search failure for one alpha is
// reported inside its AlphaRoute only.
func (rs *RouteService) SafeRoutes(origLat, origLon, dstLat, dstLon float64,
	alphas []float64) ([]AlphaRoute, error) {
	if len(alphas) == 0 {
		alphas = pkg.DefaultAlphas()
	}
	for _, alpha := range alphas {
		if err := routing.ValidateAlpha(alpha); err != nil {
			return nil, err
		}
	}

	source, err := rs.spatialIndex.SnapToNearestNode(origLat, origLon)
	if err != nil {
		return nil, err
	}
	target, err := rs.spatialIndex.SnapToNearestNode(dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	wp := concurrent.NewWorkerPool[alphaJob, alphaResult](
		util.MinInt(runtime.NumCPU(), len(alphas)), len(alphas))
	wp.Start(func(job alphaJob) alphaResult {
		return alphaResult{idx: job.idx, route: rs.searchOne(source, target, job.alpha)}
	})
	for i, alpha := range alphas {
		wp.AddJob(alphaJob{idx: i, alpha: alpha})
	}
	wp.Close()
	wp.Wait()

	routes := make([]AlphaRoute, len(alphas))
	for res := range wp.CollectResults() {
		routes[res.idx] = res.route
	}

	rs.log.Info("safe routes computed",
		zap.Float64s("alphas", alphas),
		zap.Uint32("source", uint32(source)),
		zap.Uint32("target", uint32(target)))
	return routes, nil
}

func (rs *RouteService) searchOne(source, target datastructure.Index, alpha float64) AlphaRoute {
	route := AlphaRoute{
		alpha:       alpha,
		description: pkg.AlphaDescription(alpha),
	}

	path, err := routing.NewAStar(rs.engine).ShortestPath(source, target, alpha)
	if err != nil {
		route.err = err
		return route
	}

	route.found = true
	route.distance = path.GetTotalDistance()
	route.averageRisk = path.GetAverageRisk()
	route.nodeCount = len(path.GetVertices())
	route.polyline = geo.PolylineFromCoords(path.GetCoordinates())
	return route
}

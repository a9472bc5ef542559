package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/costfunction"
	"github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/engine/routing"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/spatialindex"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

func buildTestService(t *testing.T) *RouteService {
	t.Helper()

	builder := datastructure.NewGraphBuilder()
	s := geo.NewCoordinate(0, 0)
	m := geo.NewCoordinate(0.001, 0.001)
	tgt := geo.NewCoordinate(0, 0.002)
	builder.AddFeatures([]datastructure.RoadFeature{
		datastructure.NewRoadFeatureWithRisk([]geo.Coordinate{s, tgt}, 0.9),
		datastructure.NewRoadFeatureWithRisk([]geo.Coordinate{s, m, tgt}, 0.1),
	})
	graph, err := builder.Build()
	require.NoError(t, err)

	cf, err := costfunction.NewRiskBlendFunction()
	require.NoError(t, err)
	engine := routing.NewRoutingEngine(graph, cf, 0, zap.NewNop())

	rtree, err := spatialindex.NewRtree()
	require.NoError(t, err)
	rtree.Build(graph, zap.NewNop())

	return NewRouteService(zap.NewNop(), engine, rtree)
}

func TestSafeRoutesDefaultPresets(t *testing.T) {
	service := buildTestService(t)

	routes, err := service.SafeRoutes(0, 0, 0, 0.002, nil)
	require.NoError(t, err)
	require.Len(t, routes, len(pkg.DefaultAlphas()))

	for i, alpha := range pkg.DefaultAlphas() {
		assert.Equal(t, alpha, routes[i].GetAlpha())
		assert.Equal(t, pkg.AlphaDescription(alpha), routes[i].GetDescription())
		assert.True(t, routes[i].IsFound())
		assert.NoError(t, routes[i].GetErr())
		assert.Greater(t, routes[i].GetDistance(), 0.0)
		assert.GreaterOrEqual(t, routes[i].GetNodeCount(), 2)
		assert.NotEmpty(t, routes[i].GetPolyline())
	}

	// the distance-only preset never travels further than the safety presets
	distanceOnly := routes[0].GetDistance()
	for _, route := range routes[1:] {
		assert.GreaterOrEqual(t, route.GetDistance(), distanceOnly)
	}
}

func TestSafeRoutesCustomAlpha(t *testing.T) {
	service := buildTestService(t)

	routes, err := service.SafeRoutes(0, 0, 0, 0.002, []float64{0.6})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 0.6, routes[0].GetAlpha())
	assert.Equal(t, "Custom Route", routes[0].GetDescription())
	assert.True(t, routes[0].IsFound())
}

func TestSafeRoutesInvalidAlpha(t *testing.T) {
	service := buildTestService(t)

	routes, err := service.SafeRoutes(0, 0, 0, 0.002, []float64{0.5, 1.7})
	assert.Nil(t, routes)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestSafeRoutesSnapsOffNetworkEndpoints(t *testing.T) {
	service := buildTestService(t)

	// both endpoints off the network, snapped to the nearest vertices
	routes, err := service.SafeRoutes(0.0001, -0.0001, 0.0001, 0.0021, []float64{0})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.True(t, routes[0].IsFound())
	assert.Greater(t, routes[0].GetDistance(), 0.0)
}

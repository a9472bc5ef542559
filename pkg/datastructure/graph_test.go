package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

func TestGraphBuilderInternsSharedVertices(t *testing.T) {
	builder := NewGraphBuilder()
	builder.AddFeature(NewRoadFeatureWithRisk([]geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 0.001),
	}, 0.3))
	builder.AddFeature(NewRoadFeatureWithRisk([]geo.Coordinate{
		geo.NewCoordinate(0, 0.001),
		geo.NewCoordinate(0.001, 0.001),
	}, 0.7))

	graph, err := builder.Build()
	require.NoError(t, err)

	// the shared endpoint (0, 0.001) must be one vertex, not two
	assert.Equal(t, 3, graph.NumberOfVertices())
	assert.Equal(t, 2, graph.NumberOfEdges())

	degree := 0
	graph.ForEdgesOf(1, func(edgeId Index, edge *Edge) {
		degree++
	})
	assert.Equal(t, 2, degree)
}

func TestGraphBuilderMaxDistance(t *testing.T) {
	builder := NewGraphBuilder()
	builder.AddFeatures([]RoadFeature{
		NewRoadFeature([]geo.Coordinate{
			geo.NewCoordinate(0, 0),
			geo.NewCoordinate(0, 0.001),
		}),
		NewRoadFeature([]geo.Coordinate{
			geo.NewCoordinate(0, 0.001),
			geo.NewCoordinate(0, 0.004),
		}),
	})

	graph, err := builder.Build()
	require.NoError(t, err)

	longest := 0.0
	for i := 0; i < graph.NumberOfEdges(); i++ {
		if d := graph.GetEdge(Index(i)).GetDistance(); d > longest {
			longest = d
		}
	}
	assert.Equal(t, longest, graph.GetMaxDistance())
	assert.Greater(t, graph.GetMaxDistance(), 0.0)
}

func TestGraphBuilderRiskDefaultsAndClamping(t *testing.T) {
	testCases := []struct {
		name     string
		feature  RoadFeature
		expected float64
	}{
		{
			name: "missing risk gets midpoint default",
			feature: NewRoadFeature([]geo.Coordinate{
				geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001),
			}),
			expected: 0.5,
		},
		{
			name: "risk above one is clamped",
			feature: NewRoadFeatureWithRisk([]geo.Coordinate{
				geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001),
			}, 3.5),
			expected: 1.0,
		},
		{
			name: "negative risk is clamped to zero",
			feature: NewRoadFeatureWithRisk([]geo.Coordinate{
				geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001),
			}, -0.4),
			expected: 0.0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewGraphBuilder()
			builder.AddFeature(tt.feature)
			graph, err := builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, graph.GetEdge(0).GetRiskScore())
		})
	}
}

func TestGraphBuilderParallelEdgesKept(t *testing.T) {
	builder := NewGraphBuilder()
	line := []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001)}
	builder.AddFeature(NewRoadFeatureWithRisk(line, 0.1))
	builder.AddFeature(NewRoadFeatureWithRisk(line, 0.9))

	graph, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, graph.NumberOfVertices())
	assert.Equal(t, 2, graph.NumberOfEdges())
}

func TestGraphBuilderRejectsDegenerateNetworks(t *testing.T) {
	testCases := []struct {
		name     string
		features []RoadFeature
	}{
		{
			name:     "no features at all",
			features: nil,
		},
		{
			name: "single point feature yields no edges",
			features: []RoadFeature{
				NewRoadFeature([]geo.Coordinate{geo.NewCoordinate(1, 1)}),
			},
		},
		{
			name: "all edges zero length",
			features: []RoadFeature{
				NewRoadFeature([]geo.Coordinate{
					geo.NewCoordinate(1, 1), geo.NewCoordinate(1, 1),
				}),
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewGraphBuilder()
			builder.AddFeatures(tt.features)
			graph, err := builder.Build()
			assert.Nil(t, graph)
			require.Error(t, err)
			assert.Equal(t, util.ErrInvalidData, util.ErrorCode(err))
		})
	}
}

func TestEdgeGetOtherEndpoint(t *testing.T) {
	edge := NewEdge(3, 7, 10, 0.5, nil)
	assert.Equal(t, Index(7), edge.GetOtherEndpoint(3))
	assert.Equal(t, Index(3), edge.GetOtherEndpoint(7))
}

package costfunction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepath-labs/riskrouter/pkg/geo"
)

type fakeEdge struct {
	distance  float64
	riskScore float64
}

func (f fakeEdge) GetDistance() float64 {
	return f.distance
}

func (f fakeEdge) GetRiskScore() float64 {
	return f.riskScore
}

func TestRiskBlendWeight(t *testing.T) {
	testCases := []struct {
		name        string
		edge        fakeEdge
		maxDistance float64
		alpha       float64
		expected    float64
	}{
		{
			name:        "alpha zero is pure distance",
			edge:        fakeEdge{distance: 120, riskScore: 0.9},
			maxDistance: 200,
			alpha:       0,
			expected:    120,
		},
		{
			name:        "alpha one is risk rescaled to meter units",
			edge:        fakeEdge{distance: 120, riskScore: 0.9},
			maxDistance: 200,
			alpha:       1,
			expected:    0.9 * 200,
		},
		{
			name:        "balanced alpha blends both terms",
			edge:        fakeEdge{distance: 100, riskScore: 0.5},
			maxDistance: 200,
			alpha:       0.5,
			expected:    (0.5*(100.0/200.0) + 0.5*0.5) * 200,
		},
		{
			name:        "zero risk at full alpha is free",
			edge:        fakeEdge{distance: 150, riskScore: 0},
			maxDistance: 200,
			alpha:       1,
			expected:    0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := NewRiskBlendFunction()
			require.NoError(t, err)
			got := cf.GetWeight(tt.edge, tt.maxDistance, tt.alpha)
			assert.InDelta(t, tt.expected, got, 1e-9)

			// second call answers from the cache with the same value
			assert.InDelta(t, tt.expected, cf.GetWeight(tt.edge, tt.maxDistance, tt.alpha), 1e-9)
		})
	}
}

func TestRiskBlendWeightCacheKeyedByAlpha(t *testing.T) {
	cf, err := NewRiskBlendFunction()
	require.NoError(t, err)

	edge := fakeEdge{distance: 100, riskScore: 0.8}
	low := cf.GetWeight(edge, 200, 0.0)
	high := cf.GetWeight(edge, 200, 1.0)
	assert.NotEqual(t, low, high)
}

func TestRiskBlendHeuristicScalesWithAlpha(t *testing.T) {
	cf, err := NewRiskBlendFunction()
	require.NoError(t, err)

	from := geo.NewCoordinate(0, 0)
	to := geo.NewCoordinate(0, 0.01)

	h0 := cf.GetHeuristic(from, to, 0)
	hHalf := cf.GetHeuristic(from, to, 0.5)
	h1 := cf.GetHeuristic(from, to, 1)

	assert.Greater(t, h0, 0.0)
	assert.InDelta(t, h0/2, hHalf, 1e-9)
	assert.Equal(t, 0.0, h1)
}

// the heuristic must never exceed the blended cost of traversing an edge
// whose length equals the crow-flight distance.
func TestRiskBlendHeuristicIsLowerBound(t *testing.T) {
	cf, err := NewRiskBlendFunction()
	require.NoError(t, err)

	from := geo.NewCoordinate(0, 0)
	to := geo.NewCoordinate(0, 0.005)
	crowFlight := geo.CalculateHaversineDistanceInMeter(0, 0, 0, 0.005)
	maxDistance := crowFlight * 2

	for _, alpha := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, risk := range []float64{0, 0.1, 0.5, 1} {
			edge := fakeEdge{distance: crowFlight, riskScore: risk}
			h := cf.GetHeuristic(from, to, alpha)
			w := cf.GetWeight(edge, maxDistance, alpha)
			assert.LessOrEqual(t, h, w+1e-9,
				"alpha=%f risk=%f", alpha, risk)
		}
	}
}

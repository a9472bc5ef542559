package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg/util"
)

const roadNetworkFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "plain street"},
			"geometry": {
				"type": "LineString",
				"coordinates": [[-87.63, 41.88], [-87.62, 41.88]]
			}
		},
		{
			"type": "Feature",
			"properties": {"risk_score": 0.7},
			"geometry": {
				"type": "LineString",
				"coordinates": [[-87.63, 41.89], [-87.62, 41.89]]
			}
		},
		{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "MultiLineString",
				"coordinates": [
					[[-87.61, 41.88], [-87.60, 41.88]],
					[[-87.61, 41.89], [-87.60, 41.89]]
				]
			}
		},
		{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Point",
				"coordinates": [-87.63, 41.88]
			}
		}
	]
}`

func TestParseRoadNetwork(t *testing.T) {
	features, err := ParseRoadNetwork([]byte(roadNetworkFixture), nil, zap.NewNop())
	require.NoError(t, err)

	// two line strings plus two multi-line parts, point geometry skipped
	require.Len(t, features, 4)

	_, hasRisk := features[0].GetRiskScore()
	assert.False(t, hasRisk)

	risk, hasRisk := features[1].GetRiskScore()
	assert.True(t, hasRisk)
	assert.Equal(t, 0.7, risk)
}

func TestParseRoadNetworkWithBounds(t *testing.T) {
	// bounds covering only the 41.89 streets
	bounds := NewBoundingBox(41.885, -87.64, 41.895, -87.59)
	features, err := ParseRoadNetwork([]byte(roadNetworkFixture), bounds, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, features, 2)
}

func TestParseRoadNetworkMalformed(t *testing.T) {
	_, err := ParseRoadNetwork([]byte("{not geojson"), nil, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, util.ErrInvalidData, util.ErrorCode(err))
}

func TestBoundingBoxContains(t *testing.T) {
	bounds := NewBoundingBox(41.0, -88.0, 42.0, -87.0)
	assert.True(t, bounds.Contains(41.5, -87.5))
	assert.False(t, bounds.Contains(40.9, -87.5))
	assert.False(t, bounds.Contains(41.5, -86.9))
}

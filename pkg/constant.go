package pkg

const (
	INF_WEIGHT float64 = 1e15

	// risk scores are clamped into [MIN_RISK_SCORE, MAX_RISK_SCORE] at graph
	// construction so that the normalized-distance term and the risk term
	// stay on the same scale.
	MIN_RISK_SCORE     float64 = 0.0
	MAX_RISK_SCORE     float64 = 1.0
	DEFAULT_RISK_SCORE float64 = 0.5

	MIN_ALPHA float64 = 0.0
	MAX_ALPHA float64 = 1.0
)

const (
	// bounded memoization of edge weight / heuristic / snap results. the
	// graph is immutable, so entries never go stale, only cold.
	EDGE_WEIGHT_CACHE_SIZE       = 8192
	HEURISTIC_CACHE_SIZE         = 8192
	SNAP_QUERY_CACHE_SIZE        = 128
	DEFAULT_MAX_SETTLED_VERTICES = 5_000_000
)

const (
	CRIME_SEARCH_RADIUS_METER = 200.0
	CRIME_RECENCY_WINDOW_DAYS = 30
	CRIME_RECENCY_WEIGHT      = 2.0
	CRIME_TIME_WINDOW_DAYS    = 365
	MIN_CRIME_SEVERITY        = 1.0
	MAX_CRIME_SEVERITY        = 12.0
	SNAP_INITIAL_RADIUS_KM    = 0.1
	SNAP_MAX_RADIUS_KM        = 100.0
)

const (
	ALPHA_DISTANCE_ONLY float64 = 0.00
	ALPHA_LOW_RISK      float64 = 0.25
	ALPHA_BALANCED      float64 = 0.50
	ALPHA_HIGH_SAFETY   float64 = 0.75
)

// DefaultAlphas returns the preset risk weights evaluated when a query does
// not pin a single alpha.
func DefaultAlphas() []float64 {
	return []float64{ALPHA_DISTANCE_ONLY, ALPHA_LOW_RISK, ALPHA_BALANCED, ALPHA_HIGH_SAFETY}
}

// AlphaDescription returns the human readable label of a preset risk weight.
func AlphaDescription(alpha float64) string {
	switch alpha {
	case ALPHA_DISTANCE_ONLY:
		return "Distance Only Route"
	case ALPHA_LOW_RISK:
		return "Low Risk Route"
	case ALPHA_BALANCED:
		return "Balanced Route"
	case ALPHA_HIGH_SAFETY:
		return "High Safety Route"
	default:
		return "Custom Route"
	}
}

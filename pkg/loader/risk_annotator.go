package loader

import (
	"runtime"
	"time"

	"github.com/tidwall/rtree"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/concurrent"
	da "github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/geo"
)

// RiskAnnotator scores road features by the crime incidents recorded near
// them. each incident within the search radius of a feature segment
// contributes its severity scaled by linear distance decay, with a recency
// boost for incidents inside the recency window. raw exposures are then
// normalized across all features into [0,1].
type RiskAnnotator struct {
	crimeIndex        rtree.RTreeG[int]
	records           []CrimeRecord
	searchRadiusMeter float64
	now               time.Time
	log               *zap.Logger
}

func NewRiskAnnotator(records []CrimeRecord, searchRadiusMeter float64,
	now time.Time, log *zap.Logger) *RiskAnnotator {
	ra := &RiskAnnotator{
		records:           records,
		searchRadiusMeter: searchRadiusMeter,
		now:               now,
		log:               log,
	}
	for i, rec := range records {
		p := [2]float64{rec.GetCoordinate().GetLon(), rec.GetCoordinate().GetLat()}
		ra.crimeIndex.Insert(p, p, i)
	}
	return ra
}

type annotateJob struct {
	featureIdx int
}

type annotateResult struct {
	featureIdx int
	exposure   float64
}

// Annotate computes a normalized risk score for every feature. features that
// already carry a score keep it untouched, only the unscored ones enter the
// exposure normalization.
func (ra *RiskAnnotator) Annotate(features []da.RoadFeature) []da.RoadFeature {
	exposures := make([]float64, len(features))
	needScore := make([]bool, len(features))

	wp := concurrent.NewWorkerPool[annotateJob, annotateResult](runtime.NumCPU(), len(features))
	wp.Start(func(job annotateJob) annotateResult {
		return annotateResult{
			featureIdx: job.featureIdx,
			exposure:   ra.featureExposure(features[job.featureIdx].GetPoints()),
		}
	})

	jobs := 0
	for i := range features {
		if _, ok := features[i].GetRiskScore(); ok {
			continue
		}
		needScore[i] = true
		wp.AddJob(annotateJob{featureIdx: i})
		jobs++
	}
	wp.Close()
	wp.Wait()

	maxExposure := 0.0
	for res := range wp.CollectResults() {
		exposures[res.featureIdx] = res.exposure
		if res.exposure > maxExposure {
			maxExposure = res.exposure
		}
	}

	for i := range features {
		if !needScore[i] {
			continue
		}
		score := 0.0
		if maxExposure > 0 {
			score = exposures[i] / maxExposure
		}
		features[i].SetRiskScore(score)
	}

	ra.log.Info("road features annotated with crime risk",
		zap.Int("scored_features", jobs),
		zap.Int("crime_records", len(ra.records)),
		zap.Float64("max_exposure", maxExposure))
	return features
}

// featureExposure sums the decayed severity of every incident within the
// search radius of any segment of the feature.
func (ra *RiskAnnotator) featureExposure(points []geo.Coordinate) float64 {
	exposure := 0.0
	seen := make(map[int]struct{})

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		minP, maxP := segmentSearchBox(a, b, ra.searchRadiusMeter)

		ra.crimeIndex.Search(minP, maxP, func(_, _ [2]float64, recIdx int) bool {
			if _, dup := seen[recIdx]; dup {
				return true
			}
			rec := &ra.records[recIdx]
			dist := geo.PointLinePerpendicularDistance(a, b, rec.GetCoordinate())
			if dist > ra.searchRadiusMeter {
				return true
			}
			seen[recIdx] = struct{}{}

			decay := 1.0 - dist/ra.searchRadiusMeter
			weight := rec.GetSeverity() * decay
			if ra.now.Sub(rec.GetDate()) <= pkg.CRIME_RECENCY_WINDOW_DAYS*24*time.Hour {
				weight *= pkg.CRIME_RECENCY_WEIGHT
			}
			exposure += weight
			return true
		})
	}
	return exposure
}

// segmentSearchBox is the segment's bounding box expanded by the search
// radius on every side.
func segmentSearchBox(a, b geo.Coordinate, radiusMeter float64) ([2]float64, [2]float64) {
	minLat, maxLat := a.GetLat(), b.GetLat()
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	minLon, maxLon := a.GetLon(), b.GetLon()
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}

	radiusKm := radiusMeter / 1000.0
	swLat, swLon := geo.GetDestinationPoint(minLat, minLon, 225, radiusKm)
	neLat, neLon := geo.GetDestinationPoint(maxLat, maxLon, 45, radiusKm)
	return [2]float64{swLon, swLat}, [2]float64{neLon, neLat}
}

package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/geo"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

// offense type -> raw severity on a 1..12 scale. unknown offenses fall back
// to the minimum.
var offenseSeverity = map[string]float64{
	"murder and nonnegligent manslaughter":                                          12,
	"kidnapping/abduction":                                                          11,
	"rape (except statutory rape)":                                                  11,
	"aggravated assault":                                                            10,
	"sexual assault with an object":                                                 10,
	"robbery":                                                                       9,
	"human trafficking, commercial sex acts":                                        9,
	"sexual assault by penetration (including rape)":                                8,
	"personal robbery":                                                              8,
	"commercial robbery":                                                            8,
	"motor vehicle theft":                                                           6,
	"burglary/breaking & entering":                                                  6,
	"residential burglary/breaking & entering":                                      6,
	"theft of motor vehicle parts or accessories":                                   5,
	"theft from motor vehicle (except theft of motor vehicle parts or accessories)": 4,
	"shoplifting":                                                                   4,
	"other larceny":                                                                 4,
	"weapon law violations":                                                         4,
	"impersonation":                                                                 3,
	"fraud offenses":                                                                3,
	"credit card/automated teller machine fraud":                                    3,
	"destruction/damage/vandalism of property":                                      3,
	"disorderly conduct":                                                            2,
	"trespass of real property":                                                     2,
	"all other offenses":                                                            1,
	"liquor law violations":                                                         1,
	"drug/narcotic violations":                                                      1,
	"driving under the influence":                                                   1,
}

var crimeDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// CrimeRecord is one geocoded incident with its severity normalized into
// [0,1].
type CrimeRecord struct {
	offenseType string
	date        time.Time
	coord       geo.Coordinate
	severity    float64
}

func NewCrimeRecord(offenseType string, date time.Time, coord geo.Coordinate, severity float64) CrimeRecord {
	return CrimeRecord{offenseType: offenseType, date: date, coord: coord, severity: severity}
}

func (cr *CrimeRecord) GetOffenseType() string {
	return cr.offenseType
}

func (cr *CrimeRecord) GetDate() time.Time {
	return cr.date
}

func (cr *CrimeRecord) GetCoordinate() geo.Coordinate {
	return cr.coord
}

func (cr *CrimeRecord) GetSeverity() float64 {
	return cr.severity
}

// SeverityOf maps an offense type to its normalized severity in [0,1].
func SeverityOf(offenseType string) float64 {
	raw, ok := offenseSeverity[strings.ToLower(strings.TrimSpace(offenseType))]
	if !ok {
		raw = pkg.MIN_CRIME_SEVERITY
	}
	return (raw - pkg.MIN_CRIME_SEVERITY) / (pkg.MAX_CRIME_SEVERITY - pkg.MIN_CRIME_SEVERITY)
}

// LoadCrimeRecords reads incident records from a CSV file with at least the
// offense_type, date_single, longitude and latitude columns.
func LoadCrimeRecords(path string, timeWindowDays int, now time.Time, log *zap.Logger) ([]CrimeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidData, "cannot open crime data file %s", path)
	}
	defer f.Close()
	return ReadCrimeRecords(f, timeWindowDays, now, log)
}

// ReadCrimeRecords parses crime CSV rows. rows older than the time window,
// with unparseable dates, or without coordinates are dropped, matching the
// upstream dataset's lenient handling of dirty rows.
func ReadCrimeRecords(r io.Reader, timeWindowDays int, now time.Time, log *zap.Logger) ([]CrimeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidData, "crime data has no header row")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"offense_type", "date_single", "longitude", "latitude"} {
		if _, ok := cols[required]; !ok {
			return nil, util.WrapErrorf(nil, util.ErrInvalidData,
				"crime data is missing required column %q", required)
		}
	}

	cutoff := now.AddDate(0, 0, -timeWindowDays)

	records := make([]CrimeRecord, 0)
	dropped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvalidData, "malformed crime data row")
		}

		date, ok := parseCrimeDate(field(row, cols["date_single"]))
		if !ok || date.Before(cutoff) {
			dropped++
			continue
		}
		lat, latErr := strconv.ParseFloat(field(row, cols["latitude"]), 64)
		lon, lonErr := strconv.ParseFloat(field(row, cols["longitude"]), 64)
		if latErr != nil || lonErr != nil {
			dropped++
			continue
		}

		offenseType := field(row, cols["offense_type"])
		records = append(records, NewCrimeRecord(offenseType, date,
			geo.NewCoordinate(lat, lon), SeverityOf(offenseType)))
	}

	log.Info("crime data loaded",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped),
		zap.Int("time_window_days", timeWindowDays))
	return records, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCrimeDate(s string) (time.Time, bool) {
	for _, layout := range crimeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

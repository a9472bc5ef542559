package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

func TestSeverityOf(t *testing.T) {
	testCases := []struct {
		name     string
		offense  string
		expected float64
	}{
		{name: "most severe offense maps to one", offense: "Murder and Nonnegligent Manslaughter", expected: 1.0},
		{name: "least severe offense maps to zero", offense: "driving under the influence", expected: 0.0},
		{name: "unknown offense falls back to minimum", offense: "jaywalking", expected: 0.0},
		{name: "robbery sits in between", offense: "robbery", expected: (9.0 - 1.0) / 11.0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SeverityOf(tt.offense), 1e-9)
		})
	}
}

func TestReadCrimeRecords(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	csvData := strings.Join([]string{
		"offense_type,date_single,longitude,latitude",
		"robbery,2026-07-20 14:00:00,-87.63,41.88",
		"aggravated assault,2024-01-01 09:00:00,-87.64,41.89",
		"shoplifting,2026-07-25,,",
		"burglary/breaking & entering,not-a-date,-87.62,41.87",
		"motor vehicle theft,2026-06-15,-87.61,41.86",
	}, "\n")

	records, err := ReadCrimeRecords(strings.NewReader(csvData),
		pkg.CRIME_TIME_WINDOW_DAYS, now, zap.NewNop())
	require.NoError(t, err)

	// old row, missing coordinates and bad date are dropped
	require.Len(t, records, 2)
	assert.Equal(t, "robbery", records[0].GetOffenseType())
	assert.InDelta(t, 41.88, records[0].GetCoordinate().GetLat(), 1e-9)
	assert.Equal(t, "motor vehicle theft", records[1].GetOffenseType())
}

func TestReadCrimeRecordsMissingColumn(t *testing.T) {
	csvData := "offense_type,longitude,latitude\nrobbery,-87.63,41.88\n"

	_, err := ReadCrimeRecords(strings.NewReader(csvData),
		pkg.CRIME_TIME_WINDOW_DAYS, time.Now(), zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, util.ErrInvalidData, util.ErrorCode(err))
}

func TestReadCrimeRecordsEmptyInput(t *testing.T) {
	_, err := ReadCrimeRecords(strings.NewReader(""),
		pkg.CRIME_TIME_WINDOW_DAYS, time.Now(), zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, util.ErrInvalidData, util.ErrorCode(err))
}

package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

func dailyReport(rows map[string][]float64, metrics ...string) *yt.Report {
	rep := &yt.Report{Dimensions: []string{"day"}, Metrics: metrics}
	for bucket, values := range rows {
		rep.Rows = append(rep.Rows, yt.ReportRow{Dimensions: []string{bucket}, Metrics: values})
	}
	return rep
}

func TestTrend_FillsGaps(t *testing.T) {
	t.Parallel()

	// 2026-01-02 is missing from the report.
	rep := dailyReport(map[string][]float64{
		"2026-01-01": {100, 4.5},
		"2026-01-03": {300, 5.5},
	}, "views", "averageViewDuration")

	series, err := Trend(rep, IntervalDay, day("2026-01-01"), day("2026-01-03"))
	require.NoError(t, err)
	require.Len(t, series.Points, 3)

	gap := series.Points[1]
	assert.Equal(t, "2026-01-02", gap.Bucket)

	// Count metric: explicit zero.
	require.NotNil(t, gap.Values["views"])
	assert.Equal(t, 0.0, *gap.Values["views"])

	// Ratio metric: null, a rate over no data is undefined.
	assert.Nil(t, gap.Values["averageViewDuration"])

	present := series.Points[2]
	require.NotNil(t, present.Values["averageViewDuration"])
	assert.Equal(t, 5.5, *present.Values["averageViewDuration"])
}

func TestTrend_CalendarComplete(t *testing.T) {
	t.Parallel()

	rep := dailyReport(map[string][]float64{}, "views")
	series, err := Trend(rep, IntervalDay, day("2026-01-01"), day("2026-01-31"))
	require.NoError(t, err)

	assert.Len(t, series.Points, 31)
	assert.Equal(t, "2026-01-01", series.Points[0].Bucket)
	assert.Equal(t, "2026-01-31", series.Points[30].Bucket)
}

func TestTrend_Monthly(t *testing.T) {
	t.Parallel()

	rep := &yt.Report{
		Dimensions: []string{"month"},
		Metrics:    []string{"views"},
		Rows: []yt.ReportRow{
			{Dimensions: []string{"2026-01"}, Metrics: []float64{1000}},
			{Dimensions: []string{"2026-03"}, Metrics: []float64{3000}},
		},
	}

	series, err := Trend(rep, IntervalMonth, day("2026-01-01"), day("2026-03-31"))
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "2026-02", series.Points[1].Bucket)
	assert.Equal(t, 0.0, *series.Points[1].Values["views"])
	assert.Equal(t, 3000.0, *series.Points[2].Values["views"])
}

func TestTrend_WrongDimension(t *testing.T) {
	t.Parallel()

	rep := &yt.Report{Dimensions: []string{"country"}, Metrics: []string{"views"}}
	_, err := Trend(rep, IntervalDay, day("2026-01-01"), day("2026-01-31"))
	assert.Error(t, err)

	rep = &yt.Report{Metrics: []string{"views"}}
	_, err = Trend(rep, IntervalDay, day("2026-01-01"), day("2026-01-31"))
	assert.Error(t, err)
}

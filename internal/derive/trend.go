package derive

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/creatorops/tubectl/internal/report"
	"github.com/creatorops/tubectl/internal/yt"
)

// Interval is a time-series bucket width, matching the reporting API's time
// dimensions.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalMonth Interval = "month"
)

// bucketFormat returns the layout the API uses for the dimension value.
func (i Interval) bucketFormat() string {
	if i == IntervalMonth {
		return "2006-01"
	}
	return "2006-01-02"
}

func (i Interval) next(t time.Time) time.Time {
	if i == IntervalMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// TrendPoint is one calendar bucket. A missing bucket is represented
// explicitly: count metrics as 0, ratio metrics as nil.
type TrendPoint struct {
	Bucket string              `json:"bucket"`
	Values map[string]*float64 `json:"values"`
}

// Series is a gap-free time series: its length always equals the number of
// calendar buckets between start and end.
type Series struct {
	Interval Interval     `json:"interval"`
	Metrics  []string     `json:"metrics"`
	Points   []TrendPoint `json:"points"`
}

// Trend reshapes a report keyed by a time dimension into an ordered,
// calendar-complete series. The report's first dimension must be the time
// dimension matching interval.
func Trend(rep *yt.Report, interval Interval, start, end time.Time) (*Series, error) {
	if len(rep.Dimensions) == 0 {
		return nil, eris.New("derive: trend requires a time-dimensioned report")
	}
	if rep.Dimensions[0] != string(interval) {
		return nil, eris.Errorf("derive: report is keyed by %q, not %q", rep.Dimensions[0], string(interval))
	}

	byBucket := make(map[string]yt.ReportRow, len(rep.Rows))
	for _, row := range rep.Rows {
		if len(row.Dimensions) > 0 {
			byBucket[row.Dimensions[0]] = row
		}
	}

	series := &Series{Interval: interval, Metrics: rep.Metrics}
	layout := interval.bucketFormat()
	for t := start.Truncate(24 * time.Hour); !t.After(end); t = interval.next(t) {
		bucket := t.Format(layout)
		point := TrendPoint{Bucket: bucket, Values: make(map[string]*float64, len(rep.Metrics))}

		row, present := byBucket[bucket]
		for i, name := range rep.Metrics {
			switch {
			case present && i < len(row.Metrics):
				v := row.Metrics[i]
				point.Values[name] = &v
			case report.Metrics[name].Ratio:
				// Ratio with no data: null, never a fabricated zero.
				point.Values[name] = nil
			default:
				zero := 0.0
				point.Values[name] = &zero
			}
		}
		series.Points = append(series.Points, point)
	}

	return series, nil
}

package derive

import (
	"github.com/creatorops/tubectl/internal/yt"
)

// Direction indicates the sign of a delta.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// MetricDelta is the period-over-period movement of one metric. DeltaPct is
// nil when the previous value is zero: the relative change is undefined, and
// that is reported as such rather than as infinity.
type MetricDelta struct {
	Metric    string    `json:"metric"`
	Current   float64   `json:"current"`
	Previous  float64   `json:"previous"`
	Delta     float64   `json:"delta"`
	DeltaPct  *float64  `json:"delta_pct"`
	Direction Direction `json:"direction"`
}

// Comparison pairs a current and previous period per metric.
type Comparison struct {
	Current  Period        `json:"current"`
	Previous Period        `json:"previous"`
	Deltas   []MetricDelta `json:"deltas"`
}

// Compare computes per-metric deltas between two reports over the metrics of
// the current report, in the current report's metric order.
func Compare(current, previous *yt.Report, curPeriod, prevPeriod Period) Comparison {
	cmp := Comparison{Current: curPeriod, Previous: prevPeriod}
	for _, name := range current.Metrics {
		cur := current.Total(name)
		var prev float64
		if previous != nil {
			prev = previous.Total(name)
		}
		cmp.Deltas = append(cmp.Deltas, delta(name, cur, prev))
	}
	return cmp
}

func delta(metric string, current, previous float64) MetricDelta {
	d := MetricDelta{
		Metric:   metric,
		Current:  current,
		Previous: previous,
		Delta:    current - previous,
	}
	if previous != 0 {
		pct := d.Delta / previous * 100
		d.DeltaPct = &pct
	}
	switch {
	case d.Delta > 0:
		d.Direction = DirectionUp
	case d.Delta < 0:
		d.Direction = DirectionDown
	default:
		d.Direction = DirectionFlat
	}
	return d
}

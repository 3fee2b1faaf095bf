package derive

import (
	"fmt"

	"github.com/creatorops/tubectl/internal/yt"
)

// Severity orders alerts. The verdict is the maximum severity present.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// MarshalText makes severity render as its name in machine-readable output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AlertType is the closed set of health-check rules.
type AlertType string

const (
	AlertViralCandidate  AlertType = "viral_candidate"
	AlertEngagementDrop  AlertType = "engagement_drop"
	AlertSubscriberSpike AlertType = "subscriber_spike"
)

// Alert is a computed, never persisted rule hit.
type Alert struct {
	Type     AlertType          `json:"type"`
	Severity Severity           `json:"severity"`
	Detail   string             `json:"detail"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Status is the verdict level, ordered ok < attention < warning. The values
// double as process exit codes.
type Status int

const (
	StatusOK        Status = 0
	StatusAttention Status = 1
	StatusWarning   Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusAttention:
		return "attention"
	case StatusWarning:
		return "warning"
	default:
		return "ok"
	}
}

// MarshalText makes status render as its name in machine-readable output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Verdict is the health-check result over one period.
type Verdict struct {
	Status  Status  `json:"status"`
	Period  Period  `json:"period"`
	Alerts  []Alert `json:"alerts"`
	Summary string  `json:"summary"`
}

// Thresholds configures the alert rules.
type Thresholds struct {
	// ViralMultiplier: a video is a viral candidate when its views exceed
	// the channel-average views by this factor.
	ViralMultiplier float64
	// EngagementDropPct: alert when the engagement-rate delta is at or below
	// this (negative) percentage.
	EngagementDropPct float64
	// SubscriberSpikeFactor: alert when net subscriber gain exceeds this
	// multiple of the trailing weekly average.
	SubscriberSpikeFactor float64
}

// HealthInput carries the metric snapshots the rules evaluate. All values
// are computed by the caller from raw reports; the rules themselves are pure.
type HealthInput struct {
	Period                Period
	Videos                []yt.Video
	ChannelAvgViews       float64
	EngagementPct         float64
	PrevEngagementPct     float64
	NetSubscribers        float64
	TrailingWeeklyAvgSubs float64
}

// ViralCandidates flags videos whose views exceed the channel average by the
// configured multiplier. One alert per qualifying video, in input order.
func ViralCandidates(videos []yt.Video, avgViews, multiplier float64) []Alert {
	if avgViews <= 0 || multiplier <= 0 {
		return nil
	}
	var alerts []Alert
	for _, v := range videos {
		if float64(v.Views) > avgViews*multiplier {
			alerts = append(alerts, Alert{
				Type:     AlertViralCandidate,
				Severity: SeverityInfo,
				Detail: fmt.Sprintf("%q has %d views, %.1fx the channel average of %.0f",
					v.Title, v.Views, float64(v.Views)/avgViews, avgViews),
				Metrics: map[string]float64{
					"views":         float64(v.Views),
					"channel_avg":   avgViews,
					"multiplier":    multiplier,
					"actual_factor": float64(v.Views) / avgViews,
				},
			})
		}
	}
	return alerts
}

// EngagementDrop flags an engagement-rate delta at or below the configured
// negative threshold.
func EngagementDrop(currentPct, previousPct, thresholdPct float64) []Alert {
	deltaPct := currentPct - previousPct
	if thresholdPct >= 0 || deltaPct > thresholdPct {
		return nil
	}
	return []Alert{{
		Type:     AlertEngagementDrop,
		Severity: SeverityWarning,
		Detail: fmt.Sprintf("engagement rate fell %.1f points (%.2f%% -> %.2f%%)",
			-deltaPct, previousPct, currentPct),
		Metrics: map[string]float64{
			"current_pct":   currentPct,
			"previous_pct":  previousPct,
			"delta_pct":     deltaPct,
			"threshold_pct": thresholdPct,
		},
	}}
}

// SubscriberSpike flags a net subscriber gain above the configured multiple
// of the trailing weekly average.
func SubscriberSpike(netGain, trailingWeeklyAvg, factor float64) []Alert {
	if trailingWeeklyAvg <= 0 || factor <= 0 || netGain <= trailingWeeklyAvg*factor {
		return nil
	}
	return []Alert{{
		Type:     AlertSubscriberSpike,
		Severity: SeverityInfo,
		Detail: fmt.Sprintf("net +%.0f subscribers, %.1fx the trailing weekly average of %.0f",
			netGain, netGain/trailingWeeklyAvg, trailingWeeklyAvg),
		Metrics: map[string]float64{
			"net_gain":     netGain,
			"trailing_avg": trailingWeeklyAvg,
			"factor":       factor,
		},
	}}
}

// CheckHealth evaluates all rules and derives the verdict from the alert set:
// no alerts is ok, info-only is attention, any warning is warning.
func CheckHealth(in HealthInput, th Thresholds) Verdict {
	var alerts []Alert
	alerts = append(alerts, ViralCandidates(in.Videos, in.ChannelAvgViews, th.ViralMultiplier)...)
	alerts = append(alerts, EngagementDrop(in.EngagementPct, in.PrevEngagementPct, th.EngagementDropPct)...)
	alerts = append(alerts, SubscriberSpike(in.NetSubscribers, in.TrailingWeeklyAvgSubs, th.SubscriberSpikeFactor)...)

	v := Verdict{Period: in.Period, Alerts: alerts, Status: StatusOK}
	for _, a := range alerts {
		switch {
		case a.Severity == SeverityWarning:
			v.Status = StatusWarning
		case v.Status < StatusAttention:
			v.Status = StatusAttention
		}
	}

	switch len(alerts) {
	case 0:
		v.Summary = "no alerts"
	case 1:
		v.Summary = fmt.Sprintf("1 alert (%s)", v.Status)
	default:
		v.Summary = fmt.Sprintf("%d alerts (%s)", len(alerts), v.Status)
	}
	return v
}

package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

func defaultThresholds() Thresholds {
	return Thresholds{
		ViralMultiplier:       5.0,
		EngagementDropPct:     -25.0,
		SubscriberSpikeFactor: 3.0,
	}
}

func TestViralCandidates(t *testing.T) {
	t.Parallel()

	videos := []yt.Video{
		{ID: "a", Title: "normal", Views: 1200},
		{ID: "b", Title: "breakout", Views: 8000},
	}
	alerts := ViralCandidates(videos, 1000, 5.0)

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertViralCandidate, alerts[0].Type)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.Contains(t, alerts[0].Detail, "breakout")
}

func TestViralCandidates_NoBaseline(t *testing.T) {
	t.Parallel()

	videos := []yt.Video{{ID: "a", Views: 8000}}
	assert.Nil(t, ViralCandidates(videos, 0, 5.0))
}

func TestEngagementDrop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		current, previous  float64
		wantAlert          bool
	}{
		{"sharp drop", 3.0, 30.0, true},
		{"exactly at threshold", 5.0, 30.0, true},
		{"mild drop", 25.0, 30.0, false},
		{"improvement", 35.0, 30.0, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			alerts := EngagementDrop(tt.current, tt.previous, -25.0)
			if tt.wantAlert {
				require.Len(t, alerts, 1)
				assert.Equal(t, SeverityWarning, alerts[0].Severity)
			} else {
				assert.Empty(t, alerts)
			}
		})
	}
}

func TestSubscriberSpike(t *testing.T) {
	t.Parallel()

	alerts := SubscriberSpike(400, 100, 3.0)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertSubscriberSpike, alerts[0].Type)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)

	assert.Empty(t, SubscriberSpike(250, 100, 3.0))
	assert.Empty(t, SubscriberSpike(400, 0, 3.0))
}

func TestCheckHealth_StatusFromSeverities(t *testing.T) {
	t.Parallel()

	period := LastNDays(day("2026-03-28"), 7)

	// No alerts: ok.
	v := CheckHealth(HealthInput{Period: period}, defaultThresholds())
	assert.Equal(t, StatusOK, v.Status)
	assert.Equal(t, "no alerts", v.Summary)

	// Info-only alert: attention.
	v = CheckHealth(HealthInput{
		Period:                period,
		NetSubscribers:        400,
		TrailingWeeklyAvgSubs: 100,
	}, defaultThresholds())
	assert.Equal(t, StatusAttention, v.Status)

	// Info plus warning: the warning dominates.
	v = CheckHealth(HealthInput{
		Period:                period,
		NetSubscribers:        400,
		TrailingWeeklyAvgSubs: 100,
		EngagementPct:         2.0,
		PrevEngagementPct:     40.0,
	}, defaultThresholds())
	assert.Equal(t, StatusWarning, v.Status)
	assert.Len(t, v.Alerts, 2)
}

func TestStatus_ExitCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, int(StatusOK))
	assert.Equal(t, 1, int(StatusAttention))
	assert.Equal(t, 2, int(StatusWarning))
	assert.Equal(t, "attention", StatusAttention.String())
	assert.Equal(t, "warning", StatusWarning.String())
}

package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	t.Parallel()

	population := []float64{10, 20, 30, 40, 50}
	subject := 40.0

	b := Rank("views", subject, ExcludeSelf(population, subject))

	assert.Equal(t, 4, b.Peers)
	assert.InDelta(t, 75.0, b.Percentile, 1e-9)
	assert.Equal(t, 25, b.TopPercent)
}

func TestRank_BestAndWorst(t *testing.T) {
	t.Parallel()

	peers := []float64{10, 20, 30}

	best := Rank("views", 100, peers)
	assert.InDelta(t, 100.0, best.Percentile, 1e-9)
	assert.Equal(t, 0, best.TopPercent)

	worst := Rank("views", 5, peers)
	assert.InDelta(t, 0.0, worst.Percentile, 1e-9)
	assert.Equal(t, 100, worst.TopPercent)
}

func TestRank_EmptyPeers(t *testing.T) {
	t.Parallel()

	b := Rank("views", 42, nil)
	assert.Equal(t, 0, b.Peers)
	assert.InDelta(t, 100.0, b.Percentile, 1e-9)
	assert.Equal(t, 0, b.TopPercent)
}

func TestRank_TiesCountAtOrBelow(t *testing.T) {
	t.Parallel()

	b := Rank("views", 20, []float64{20, 20, 30, 10})
	// 3 of 4 peers are at or below the subject.
	assert.InDelta(t, 75.0, b.Percentile, 1e-9)
}

func TestExcludeSelf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		population []float64
		subject    float64
		want       []float64
	}{
		{"member", []float64{10, 20, 30}, 20, []float64{10, 30}},
		{"not a member", []float64{10, 20, 30}, 99, []float64{10, 20, 30}},
		{"only one occurrence removed", []float64{20, 20, 30}, 20, []float64{20, 30}},
		{"empty", nil, 20, []float64{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExcludeSelf(tt.population, tt.subject))
		})
	}
}

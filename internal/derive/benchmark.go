package derive

import "math"

// Benchmark is a subject's standing relative to a peer population on one
// metric, as a rank-based percentile.
type Benchmark struct {
	Metric     string  `json:"metric"`
	Subject    float64 `json:"subject"`
	Peers      int     `json:"peers"`
	Percentile float64 `json:"percentile"`
	TopPercent int     `json:"top_percent"`
}

// ExcludeSelf removes one occurrence of subject from the population, so a
// subject that is a member is not compared against itself.
func ExcludeSelf(population []float64, subject float64) []float64 {
	out := make([]float64, 0, len(population))
	removed := false
	for _, v := range population {
		if !removed && v == subject {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// Rank computes the subject's percentile among peers: the fraction of peer
// values less than or equal to the subject, expressed 0-100. "Top X%" is
// 100 minus the percentile, rounded down. An empty peer set yields
// percentile 100 / top 0, since nothing outranks the subject.
func Rank(metric string, subject float64, peers []float64) Benchmark {
	b := Benchmark{Metric: metric, Subject: subject, Peers: len(peers)}
	if len(peers) == 0 {
		b.Percentile = 100
		return b
	}

	atOrBelow := 0
	for _, v := range peers {
		if v <= subject {
			atOrBelow++
		}
	}
	b.Percentile = float64(atOrBelow) / float64(len(peers)) * 100
	b.TopPercent = int(math.Floor(100 - b.Percentile))
	return b
}

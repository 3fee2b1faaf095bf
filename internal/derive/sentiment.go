package derive

import (
	"strings"

	"github.com/creatorops/tubectl/internal/yt"
)

// Keyword sets for coarse comment classification. A comment counts as
// positive or negative only when it matches exactly one of the two sets;
// everything else is neutral.
var (
	positiveWords = []string{
		"love", "great", "amazing", "awesome", "best", "perfect", "fantastic",
		"excellent", "good", "nice", "beautiful", "haha", "lol", "genius",
		"brilliant", "😂", "❤️", "👍", "🔥",
	}
	negativeWords = []string{
		"hate", "bad", "worst", "terrible", "awful", "boring", "stupid",
		"trash", "garbage", "disappointing", "cringe", "sucks", "👎",
	}
)

// flaggedSampleMax caps how many negative comments the summary carries.
const flaggedSampleMax = 5

// SentimentSummary buckets a comment set by keyword match. Flagged holds a
// sample of the negative comments for display.
type SentimentSummary struct {
	Total    int          `json:"total"`
	Positive int          `json:"positive"`
	Negative int          `json:"negative"`
	Neutral  int          `json:"neutral"`
	Flagged  []yt.Comment `json:"flagged,omitempty"`
}

// AnalyzeSentiment classifies comments case-insensitively against the
// keyword sets. It is pure and preserves input order in the flagged sample.
func AnalyzeSentiment(comments []yt.Comment) SentimentSummary {
	sum := SentimentSummary{Total: len(comments)}
	for _, c := range comments {
		text := strings.ToLower(c.Text)
		pos := containsAny(text, positiveWords)
		neg := containsAny(text, negativeWords)
		switch {
		case neg && !pos:
			sum.Negative++
			if len(sum.Flagged) < flaggedSampleMax {
				sum.Flagged = append(sum.Flagged, c)
			}
		case pos && !neg:
			sum.Positive++
		default:
			sum.Neutral++
		}
	}
	return sum
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

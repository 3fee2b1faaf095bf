package seo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/creatorops/tubectl/internal/yt"
)

// Thresholds configures the scoring rules.
type Thresholds struct {
	TitleMin int
	TitleMax int
	DescMin  int
	TagsMin  int
}

// DefaultThresholds matches the documented guidance: titles 30-70 chars,
// descriptions at least 200 chars, at least 5 tags.
func DefaultThresholds() Thresholds {
	return Thresholds{TitleMin: 30, TitleMax: 70, DescMin: 200, TagsMin: 5}
}

// Score is the per-video SEO analysis.
type Score struct {
	VideoID     string   `json:"video_id"`
	Title       string   `json:"title"`
	Total       int      `json:"total_score"`
	TitleScore  int      `json:"title_score"`
	TitleIssues []string `json:"title_issues,omitempty"`
	DescScore   int      `json:"desc_score"`
	DescIssues  []string `json:"desc_issues,omitempty"`
	TagsScore   int      `json:"tags_score"`
	TagsIssues  []string `json:"tags_issues,omitempty"`
}

// Analyze scores one video's metadata. Total is the integer mean of the
// three component scores.
func Analyze(v *yt.Video, th Thresholds) Score {
	s := Score{VideoID: v.ID, Title: v.Title}

	// Character counts, not byte counts: the guidance is about what a
	// viewer reads, so multibyte titles must not be over-counted.
	titleLen := utf8.RuneCountInString(v.Title)
	descLen := utf8.RuneCountInString(v.Description)

	s.TitleScore = 100
	if titleLen < th.TitleMin {
		s.TitleScore -= 30
		s.TitleIssues = append(s.TitleIssues, fmt.Sprintf("too short (%d chars)", titleLen))
	} else if titleLen > th.TitleMax {
		s.TitleScore -= 20
		s.TitleIssues = append(s.TitleIssues, fmt.Sprintf("too long (%d chars)", titleLen))
	}

	s.DescScore = 100
	if descLen < th.DescMin {
		s.DescScore -= 40
		s.DescIssues = append(s.DescIssues, fmt.Sprintf("too short (%d chars)", descLen))
	}
	if strings.TrimSpace(v.Description) == "" {
		s.DescScore = 0
		s.DescIssues = []string{"empty"}
	}

	s.TagsScore = 100
	if len(v.Tags) < th.TagsMin {
		s.TagsScore -= 30
		s.TagsIssues = append(s.TagsIssues, fmt.Sprintf("too few (%d tags)", len(v.Tags)))
	}
	if len(v.Tags) == 0 {
		s.TagsScore = 0
		s.TagsIssues = []string{"no tags"}
	}

	s.Total = (s.TitleScore + s.DescScore + s.TagsScore) / 3
	return s
}

// Audit scores a set of videos and returns the scores with the average.
func Audit(videos []yt.Video, th Thresholds) ([]Score, float64) {
	if len(videos) == 0 {
		return nil, 0
	}
	scores := make([]Score, 0, len(videos))
	sum := 0
	for i := range videos {
		s := Analyze(&videos[i], th)
		scores = append(scores, s)
		sum += s.Total
	}
	return scores, float64(sum) / float64(len(scores))
}

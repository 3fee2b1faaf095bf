package bulkedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

func planVideos() []yt.Video {
	return []yt.Video{
		{ID: "a", Title: "Ep 1: Old Series", Description: "Watch the Old Series here", Tags: []string{"old", "series"}},
		{ID: "b", Title: "Unrelated upload", Description: "nothing to see", Tags: []string{"misc"}},
		{ID: "c", Title: "Ep 2: Old Series", Description: "", Tags: []string{"old", "old-series"}},
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"title", "description", "tags"} {
		f, err := ParseField(name)
		require.NoError(t, err)
		assert.Equal(t, Field(name), f)
	}

	_, err := ParseField("privacy")
	assert.Error(t, err)
}

func TestBuild_LiteralTitle(t *testing.T) {
	t.Parallel()

	plan, err := Build(planVideos(), MatchSpec{
		Field:       FieldTitle,
		Pattern:     "Old Series",
		Replacement: "New Series",
	})
	require.NoError(t, err)

	require.Len(t, plan.Items, 3)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, 2, plan.Changed())

	assert.Equal(t, "Ep 1: New Series", plan.Items[0].New)
	assert.True(t, plan.Items[0].WillChange)

	// Unmatched records are kept, flagged unchanged.
	assert.Equal(t, "Unrelated upload", plan.Items[1].New)
	assert.False(t, plan.Items[1].WillChange)
}

func TestBuild_RegexAnchors(t *testing.T) {
	t.Parallel()

	videos := []yt.Video{
		{ID: "a", Title: "prefixVideo"},
		{ID: "b", Title: "Video"},
		{ID: "c", Title: "has prefix inside"},
	}
	plan, err := Build(videos, MatchSpec{
		Field:       FieldTitle,
		Pattern:     "^prefix",
		Regex:       true,
		Replacement: "",
	})
	require.NoError(t, err)

	assert.Equal(t, "Video", plan.Items[0].New)
	assert.True(t, plan.Items[0].WillChange)

	assert.Equal(t, "Video", plan.Items[1].New)
	assert.False(t, plan.Items[1].WillChange)

	// Anchored pattern must not match mid-string.
	assert.False(t, plan.Items[2].WillChange)
}

func TestBuild_RegexCaptureGroups(t *testing.T) {
	t.Parallel()

	videos := []yt.Video{{ID: "a", Title: "Episode 12 - Finale"}}
	plan, err := Build(videos, MatchSpec{
		Field:       FieldTitle,
		Pattern:     `Episode (\d+)`,
		Regex:       true,
		Replacement: "Ep. $1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ep. 12 - Finale", plan.Items[0].New)
}

func TestBuild_LiteralPatternIsNotRegex(t *testing.T) {
	t.Parallel()

	videos := []yt.Video{{ID: "a", Title: "cost is 1.5 dollars"}}
	plan, err := Build(videos, MatchSpec{
		Field:       FieldTitle,
		Pattern:     "1.5",
		Replacement: "2.0",
	})
	require.NoError(t, err)

	// "1x5" would match if the dot were treated as a metacharacter.
	assert.Equal(t, "cost is 2.0 dollars", plan.Items[0].New)
}

func TestBuild_TagsPerElement(t *testing.T) {
	t.Parallel()

	plan, err := Build(planVideos(), MatchSpec{
		Field:       FieldTags,
		Pattern:     "old",
		Replacement: "new",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "series"}, plan.Items[0].NewTags)
	assert.Equal(t, []string{"old", "series"}, plan.Items[0].OldTags)
	assert.True(t, plan.Items[0].WillChange)

	assert.False(t, plan.Items[1].WillChange)
	assert.Equal(t, []string{"new", "new-series"}, plan.Items[2].NewTags)
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	spec := MatchSpec{Field: FieldDescription, Pattern: "Old", Replacement: "New"}
	first, err := Build(planVideos(), spec)
	require.NoError(t, err)
	second, err := Build(planVideos(), spec)
	require.NoError(t, err)

	// Replanning the same inputs yields an identical plan, ID included.
	assert.Equal(t, first, second)

	// Different candidates or a different spec change the ID.
	fewer, err := Build(planVideos()[:2], spec)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fewer.ID)

	other, err := Build(planVideos(), MatchSpec{Field: FieldTitle, Pattern: "Old", Replacement: "New"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestBuild_InvalidPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec MatchSpec
	}{
		{"empty pattern", MatchSpec{Field: FieldTitle, Pattern: ""}},
		{"bad regex", MatchSpec{Field: FieldTitle, Pattern: "[unclosed", Regex: true}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(planVideos(), tt.spec)
			var perr *InvalidPatternError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestBuild_EmptyCandidates(t *testing.T) {
	t.Parallel()

	plan, err := Build(nil, MatchSpec{Field: FieldTitle, Pattern: "x", Replacement: "y"})
	require.NoError(t, err)
	assert.Empty(t, plan.Items)
	assert.Equal(t, 0, plan.Changed())
}

package derive

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	var fetched []Period
	fetch := func(p Period) (*yt.Report, error) {
		fetched = append(fetched, p)
		return totalsReport([]string{"views"}, []float64{float64(p.Days() * 100)}), nil
	}

	end := day("2026-03-28")
	digest, err := BuildDigest(fetch, end, []int{7, 28})
	require.NoError(t, err)

	require.Len(t, digest.Entries, 2)
	assert.Equal(t, "7d", digest.Entries[0].Label)
	assert.Equal(t, "28d", digest.Entries[1].Label)

	// Each length fetches its own current and previous period.
	require.Len(t, fetched, 4)
	assert.Equal(t, 7, fetched[0].Days())
	assert.Equal(t, 7, fetched[1].Days())
	assert.Equal(t, 28, fetched[2].Days())
	assert.Equal(t, 28, fetched[3].Days())

	// Periods of different lengths never mix within one comparison.
	for _, entry := range digest.Entries {
		assert.Equal(t, entry.Comparison.Current.Days(), entry.Comparison.Previous.Days())
	}
}

func TestBuildDigest_FetchError(t *testing.T) {
	t.Parallel()

	fetch := func(p Period) (*yt.Report, error) {
		return nil, eris.New("boom")
	}
	_, err := BuildDigest(fetch, day("2026-03-28"), []int{7})
	assert.Error(t, err)
}

func TestBuildDigest_InvalidLength(t *testing.T) {
	t.Parallel()

	fetch := func(p Period) (*yt.Report, error) {
		t.Fatal("fetch must not be called for invalid lengths")
		return nil, nil
	}
	_, err := BuildDigest(fetch, day("2026-03-28"), []int{0})
	assert.Error(t, err)
}

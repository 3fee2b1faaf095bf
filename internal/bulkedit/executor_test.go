package bulkedit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

// fakeUpdater is an in-memory remote: GetVideo and UpdateVideo operate on a
// map, with per-video injected failures.
type fakeUpdater struct {
	videos    map[string]*yt.Video
	updateErr map[string]error
	gets      int
	updates   int
}

func newFakeUpdater(videos ...yt.Video) *fakeUpdater {
	f := &fakeUpdater{
		videos:    make(map[string]*yt.Video),
		updateErr: make(map[string]error),
	}
	for i := range videos {
		v := videos[i]
		f.videos[v.ID] = &v
	}
	return f
}

func (f *fakeUpdater) GetVideo(_ context.Context, id string) (*yt.Video, error) {
	f.gets++
	v, ok := f.videos[id]
	if !ok {
		return nil, &yt.RemoteError{Kind: yt.KindNotFound, Message: "video not found: " + id}
	}
	copied := *v
	return &copied, nil
}

func (f *fakeUpdater) UpdateVideo(_ context.Context, upd yt.VideoUpdate) error {
	f.updates++
	if err := f.updateErr[upd.ID]; err != nil {
		return err
	}
	v := f.videos[upd.ID]
	v.Title = upd.Title
	v.Description = upd.Description
	v.Tags = upd.Tags
	return nil
}

func titlePlan(t *testing.T, remote *fakeUpdater, ids ...string) *Plan {
	t.Helper()
	var candidates []yt.Video
	for _, id := range ids {
		candidates = append(candidates, *remote.videos[id])
	}
	plan, err := Build(candidates, MatchSpec{Field: FieldTitle, Pattern: "old", Replacement: "new"})
	require.NoError(t, err)
	return plan
}

func TestExecute_DryRunIssuesNoCalls(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(yt.Video{ID: "a", Title: "old title"})
	plan := titlePlan(t, remote, "a")

	result, err := NewExecutor(remote).Execute(context.Background(), plan, ModeDryRun)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, remote.gets)
	assert.Zero(t, remote.updates)
}

func TestExecute_Apply(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(
		yt.Video{ID: "a", Title: "old one"},
		yt.Video{ID: "b", Title: "untouched"},
	)
	plan := titlePlan(t, remote, "a", "b")

	result, err := NewExecutor(remote).Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "new one", remote.videos["a"].Title)
	assert.Equal(t, "untouched", remote.videos["b"].Title)
}

func TestExecute_PartialFailureContinues(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(
		yt.Video{ID: "a", Title: "old a"},
		yt.Video{ID: "b", Title: "old b"},
		yt.Video{ID: "c", Title: "old c"},
	)
	remote.updateErr["b"] = &yt.RemoteError{Kind: yt.KindRejected, StatusCode: 400, Message: "invalid"}
	plan := titlePlan(t, remote, "a", "b", "c")

	result, err := NewExecutor(remote).Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)

	// b's failure must not prevent c from being applied.
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "new a", remote.videos["a"].Title)
	assert.Equal(t, "old b", remote.videos["b"].Title)
	assert.Equal(t, "new c", remote.videos["c"].Title)

	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, StatusFailed, result.Outcomes[1].Status)
}

func TestExecute_QuotaAbortsBatch(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(
		yt.Video{ID: "a", Title: "old a"},
		yt.Video{ID: "b", Title: "old b"},
	)
	remote.updateErr["a"] = &yt.RemoteError{Kind: yt.KindQuota, StatusCode: 403, Reason: "quotaExceeded"}
	plan := titlePlan(t, remote, "a", "b")

	result, err := NewExecutor(remote).Execute(context.Background(), plan, ModeApply)
	require.Error(t, err)
	assert.True(t, yt.IsQuotaExceeded(err))

	// The batch stops before touching b.
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "old b", remote.videos["b"].Title)
}

func TestExecute_ReapplyIsIdempotent(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(yt.Video{ID: "a", Title: "old title"})
	plan := titlePlan(t, remote, "a")
	exec := NewExecutor(remote)

	first, err := exec.Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Applied)

	// Second run of the same plan: the remote value no longer matches the
	// recorded old value, so the record is skipped, not rewritten.
	second, err := exec.Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Applied)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, "new title", remote.videos["a"].Title)
}

func TestExecute_DivergedRecordSkipped(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(yt.Video{ID: "a", Title: "old title"})
	plan := titlePlan(t, remote, "a")

	// Someone edits the video between plan and apply.
	remote.videos["a"].Title = "edited elsewhere"

	result, err := NewExecutor(remote).Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "edited elsewhere", remote.videos["a"].Title)
}

func TestExecute_PreservesOtherFields(t *testing.T) {
	t.Parallel()

	remote := newFakeUpdater(yt.Video{
		ID:          "a",
		Title:       "old title",
		Description: "keep me",
		Tags:        []string{"keep", "tags"},
	})
	plan := titlePlan(t, remote, "a")

	_, err := NewExecutor(remote).Execute(context.Background(), plan, ModeApply)
	require.NoError(t, err)

	assert.Equal(t, "new title", remote.videos["a"].Title)
	assert.Equal(t, "keep me", remote.videos["a"].Description)
	assert.Equal(t, []string{"keep", "tags"}, remote.videos["a"].Tags)
}

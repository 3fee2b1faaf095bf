package bulkedit

import (
	"context"
	"errors"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/yt"
)

// Mode gates the execute phase. Dry-run is the default; apply must be
// requested explicitly.
type Mode int

const (
	ModeDryRun Mode = iota
	ModeApply
)

// Status is the per-record outcome of an apply.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome records what happened to one record during apply.
type Outcome struct {
	VideoID string `json:"video_id"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// Result aggregates an apply run. Only apply produces one; a dry-run yields
// nothing beyond the plan itself.
type Result struct {
	PlanID    string    `json:"plan_id"`
	Attempted int       `json:"attempted"`
	Applied   int       `json:"applied"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusApplied:
		r.Applied++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Updater is the write-side remote capability the executor consumes.
type Updater interface {
	GetVideo(ctx context.Context, id string) (*yt.Video, error)
	UpdateVideo(ctx context.Context, upd yt.VideoUpdate) error
}

// Executor applies an accepted plan one record at a time.
type Executor struct {
	client Updater
}

// NewExecutor creates an executor over the given remote capability.
func NewExecutor(client Updater) *Executor {
	return &Executor{client: client}
}

// Execute runs the plan in the given mode. In dry-run it returns (nil, nil)
// and issues zero calls. In apply it walks the WillChange entries
// sequentially: each record is re-read and skipped when the remote value has
// diverged from the plan's recorded old value, a single record's failure is
// captured without aborting the rest, and only auth or quota failures abort
// the remaining batch. Failed records are not retried here; the caller
// re-plans and re-invokes.
func (e *Executor) Execute(ctx context.Context, plan *Plan, mode Mode) (*Result, error) {
	if mode == ModeDryRun {
		return nil, nil
	}

	log := zap.L().With(zap.String("plan_id", plan.ID))
	result := &Result{PlanID: plan.ID}

	for _, item := range plan.Items {
		if !item.WillChange {
			result.record(Outcome{VideoID: item.VideoID, Status: StatusSkipped, Detail: "no match"})
			continue
		}
		result.Attempted++

		outcome, err := e.applyOne(ctx, item)
		result.record(outcome)
		if err != nil {
			// Auth and quota failures make the rest of the batch futile.
			return result, eris.Wrapf(err, "bulkedit: apply %s", item.VideoID)
		}
	}

	log.Info("apply complete",
		zap.Int("attempted", result.Attempted),
		zap.Int("applied", result.Applied),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// applyOne applies a single proposal. The returned error is non-nil only for
// batch-fatal failures; per-record failures come back inside the Outcome.
func (e *Executor) applyOne(ctx context.Context, item Item) (Outcome, error) {
	current, err := e.client.GetVideo(ctx, item.VideoID)
	if err != nil {
		if batchFatal(err) {
			return Outcome{VideoID: item.VideoID, Status: StatusFailed, Detail: errKind(err)}, err
		}
		return Outcome{VideoID: item.VideoID, Status: StatusFailed, Detail: errKind(err)}, nil
	}

	// Precondition: the remote value must still match the plan's old value.
	// Divergence (including an earlier apply of this same plan) is a normal
	// no-op, not a conflict.
	if !preconditionHolds(current, item) {
		return Outcome{VideoID: item.VideoID, Status: StatusSkipped, Detail: "remote value changed since plan"}, nil
	}

	upd := yt.UpdateFrom(current)
	switch item.Field {
	case FieldTitle:
		upd.Title = item.New
	case FieldDescription:
		upd.Description = item.New
	case FieldTags:
		upd.Tags = item.NewTags
	}

	if err := e.client.UpdateVideo(ctx, upd); err != nil {
		if batchFatal(err) {
			return Outcome{VideoID: item.VideoID, Status: StatusFailed, Detail: errKind(err)}, err
		}
		return Outcome{VideoID: item.VideoID, Status: StatusFailed, Detail: errKind(err)}, nil
	}

	return Outcome{VideoID: item.VideoID, Status: StatusApplied}, nil
}

func preconditionHolds(current *yt.Video, item Item) bool {
	switch item.Field {
	case FieldTitle:
		return current.Title == item.Old
	case FieldDescription:
		return current.Description == item.Old
	case FieldTags:
		return slices.Equal(current.Tags, item.OldTags)
	}
	return false
}

func batchFatal(err error) bool {
	return yt.IsAuth(err) || yt.IsQuotaExceeded(err)
}

func errKind(err error) string {
	var re *yt.RemoteError
	if errors.As(err, &re) {
		return string(re.Kind)
	}
	if yt.IsAuth(err) {
		return "auth"
	}
	return err.Error()
}

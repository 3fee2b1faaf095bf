package bulkedit

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/creatorops/tubectl/internal/yt"
)

// Field is a mutable video field targeted by search/replace.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
)

// ParseField validates a user-supplied field name.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldTitle, FieldDescription, FieldTags:
		return Field(s), nil
	default:
		return "", fmt.Errorf("unsupported field %q (must be title, description, or tags)", s)
	}
}

// InvalidPatternError means the match spec cannot be used: empty pattern or a
// regex that does not compile. Raised before any record is scanned.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q", e.Pattern)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// MatchSpec describes one search/replace operation.
type MatchSpec struct {
	Field       Field  `json:"field"`
	Pattern     string `json:"pattern"`
	Regex       bool   `json:"regex"`
	Replacement string `json:"replacement"`
}

// Item is one per-record proposal. Old/New hold the scalar value for title
// and description; OldTags/NewTags hold the element sequence for tags.
type Item struct {
	VideoID    string   `json:"video_id"`
	Field      Field    `json:"field"`
	Old        string   `json:"old,omitempty"`
	New        string   `json:"new,omitempty"`
	OldTags    []string `json:"old_tags,omitempty"`
	NewTags    []string `json:"new_tags,omitempty"`
	WillChange bool     `json:"will_change"`
}

// Plan is an ordered, immutable set of proposals. It is a pure function of
// (candidates, spec): computing one never touches the write endpoint, and
// the ID is derived from the inputs so replanning yields an identical plan.
type Plan struct {
	ID    string    `json:"id"`
	Spec  MatchSpec `json:"spec"`
	Items []Item    `json:"items"`
}

// Changed counts the proposals that would modify their record.
func (p *Plan) Changed() int {
	n := 0
	for _, item := range p.Items {
		if item.WillChange {
			n++
		}
	}
	return n
}

// planNamespace scopes derived plan IDs to this tool.
var planNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("tubectl.bulkedit.plan"))

// planID hashes the spec and candidate IDs into a stable UUID.
func planID(spec MatchSpec, candidates []yt.Video) string {
	var b strings.Builder
	b.WriteString(string(spec.Field))
	b.WriteByte(0)
	b.WriteString(spec.Pattern)
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(spec.Regex))
	b.WriteByte(0)
	b.WriteString(spec.Replacement)
	for _, v := range candidates {
		b.WriteByte(0)
		b.WriteString(v.ID)
	}
	return uuid.NewSHA1(planNamespace, []byte(b.String())).String()
}

// replacer applies the spec's match rule to one string.
type replacer func(string) string

func compile(spec MatchSpec) (replacer, error) {
	if spec.Pattern == "" {
		return nil, &InvalidPatternError{Pattern: spec.Pattern}
	}
	if !spec.Regex {
		return func(s string) string {
			return strings.ReplaceAll(s, spec.Pattern, spec.Replacement)
		}, nil
	}

	re, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: spec.Pattern, Err: err}
	}
	return func(s string) string {
		return re.ReplaceAllString(s, spec.Replacement)
	}, nil
}

// Build computes the mutation plan for the candidate set. Candidate order is
// preserved, unmatched records are kept with WillChange=false, and the result
// is deterministic for fixed inputs. Tags are matched per element; the field
// counts as changed when any element differs.
func Build(candidates []yt.Video, spec MatchSpec) (*Plan, error) {
	if _, err := ParseField(string(spec.Field)); err != nil {
		return nil, err
	}
	replace, err := compile(spec)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		ID:    planID(spec, candidates),
		Spec:  spec,
		Items: make([]Item, 0, len(candidates)),
	}

	for _, v := range candidates {
		item := Item{VideoID: v.ID, Field: spec.Field}
		switch spec.Field {
		case FieldTags:
			item.OldTags = slices.Clone(v.Tags)
			item.NewTags = make([]string, len(v.Tags))
			for i, tag := range v.Tags {
				item.NewTags[i] = replace(tag)
			}
			item.WillChange = !slices.Equal(item.OldTags, item.NewTags)
		case FieldTitle:
			item.Old = v.Title
			item.New = replace(v.Title)
			item.WillChange = item.New != item.Old
		case FieldDescription:
			item.Old = v.Description
			item.New = replace(v.Description)
			item.WillChange = item.New != item.Old
		}
		plan.Items = append(plan.Items, item)
	}

	return plan, nil
}

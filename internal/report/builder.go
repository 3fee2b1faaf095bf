package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/creatorops/tubectl/internal/yt"
)

// EarliestStart is the reporting API's historical-availability floor. Start
// dates before it are rejected locally with the constraint surfaced verbatim.
var EarliestStart = time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC)

// UnknownFieldError names a token outside the closed enumerations.
type UnknownFieldError struct {
	Kind       string // "metric", "dimension", or "filter"
	Token      string
	Suggestion string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.Kind, e.Token)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// InsufficientScopeError means revenue-class metrics were requested without
// the monetary grant. Raised before any remote call.
type InsufficientScopeError struct {
	Metrics []string
}

func (e *InsufficientScopeError) Error() string {
	return fmt.Sprintf("metrics %s require the monetary scope; re-run 'tubectl login --monetary'",
		strings.Join(e.Metrics, ", "))
}

// ValidationError covers all other local spec failures.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Raw is the user-supplied, unvalidated query input.
type Raw struct {
	Metrics    []string
	Dimensions []string
	Filters    map[string]string
	Start      time.Time
	End        time.Time
	Sort       string // metric name, "-" prefix for descending
	Limit      int
}

// Spec is a validated, assembled query. It is pure data: building one never
// contacts the remote service.
type Spec struct {
	Metrics    []Metric
	Dimensions []Dimension
	Filters    map[string]string
	Start      time.Time
	End        time.Time
	Sort       string
	Limit      int
}

// Build validates raw input against the closed enumerations and assembles a
// Spec. monetary is the session's revenue capability flag.
func Build(raw Raw, monetary bool) (*Spec, error) {
	if len(raw.Metrics) == 0 {
		return nil, &ValidationError{Msg: "at least one metric is required"}
	}

	spec := &Spec{
		Filters: raw.Filters,
		Start:   raw.Start,
		End:     raw.End,
		Sort:    raw.Sort,
		Limit:   raw.Limit,
	}

	var gated []string
	for _, name := range raw.Metrics {
		m, ok := Metrics[name]
		if !ok {
			return nil, &UnknownFieldError{Kind: "metric", Token: name, Suggestion: ClosestMetric(name)}
		}
		if m.Monetary && !monetary {
			gated = append(gated, name)
		}
		spec.Metrics = append(spec.Metrics, m)
	}
	if len(gated) > 0 {
		return nil, &InsufficientScopeError{Metrics: gated}
	}

	for _, name := range raw.Dimensions {
		d, ok := Dimensions[name]
		if !ok {
			return nil, &UnknownFieldError{Kind: "dimension", Token: name, Suggestion: ClosestDimension(name)}
		}
		if d.FilterOnly {
			return nil, &ValidationError{Msg: fmt.Sprintf("dimension %q can only be used as a filter", name)}
		}
		spec.Dimensions = append(spec.Dimensions, d)
	}

	for key := range raw.Filters {
		if _, ok := Dimensions[key]; !ok {
			return nil, &UnknownFieldError{Kind: "filter", Token: key, Suggestion: ClosestDimension(key)}
		}
	}

	if raw.Start.IsZero() || raw.End.IsZero() {
		return nil, &ValidationError{Msg: "start and end dates are required"}
	}
	if raw.End.Before(raw.Start) {
		return nil, &ValidationError{Msg: fmt.Sprintf("start date %s is after end date %s",
			raw.Start.Format("2006-01-02"), raw.End.Format("2006-01-02"))}
	}
	if raw.Start.Before(EarliestStart) {
		return nil, &ValidationError{Msg: fmt.Sprintf("reporting data is only available from %s",
			EarliestStart.Format("2006-01-02"))}
	}

	if raw.Sort != "" {
		name := strings.TrimPrefix(raw.Sort, "-")
		found := false
		for _, m := range spec.Metrics {
			if m.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, &ValidationError{Msg: fmt.Sprintf("sort metric %q is not among the requested metrics", name)}
		}
	}

	if raw.Limit < 0 {
		return nil, &ValidationError{Msg: "limit must not be negative"}
	}

	return spec, nil
}

// Query lowers the spec to the client's wire form. Filter keys are sorted so
// the same spec always yields the same query string.
func (s *Spec) Query(channelID string) yt.ReportQuery {
	metrics := make([]string, 0, len(s.Metrics))
	for _, m := range s.Metrics {
		metrics = append(metrics, m.Name)
	}
	dims := make([]string, 0, len(s.Dimensions))
	for _, d := range s.Dimensions {
		dims = append(dims, d.Name)
	}

	var filters []string
	for key := range s.Filters {
		filters = append(filters, key)
	}
	sort.Strings(filters)
	for i, key := range filters {
		filters[i] = key + "==" + s.Filters[key]
	}

	return yt.ReportQuery{
		ChannelID:  channelID,
		StartDate:  s.Start,
		EndDate:    s.End,
		Metrics:    metrics,
		Dimensions: dims,
		Filters:    strings.Join(filters, ";"),
		Sort:       s.Sort,
		MaxResults: s.Limit,
	}
}

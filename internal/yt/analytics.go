package yt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ReportQuery is the wire-level form of an analytics query. The typed
// validation lives in the report package; by the time a query reaches the
// client it is assumed well-formed.
type ReportQuery struct {
	ChannelID  string    `json:"channel_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Metrics    []string  `json:"metrics"`
	Dimensions []string  `json:"dimensions,omitempty"`
	Filters    string    `json:"filters,omitempty"`
	Sort       string    `json:"sort,omitempty"`
	MaxResults int       `json:"max_results,omitempty"`
}

// ReportRow is one result row: the dimension key tuple and the metric value
// tuple, in query order.
type ReportRow struct {
	Dimensions []string  `json:"dimensions"`
	Metrics    []float64 `json:"metrics"`
}

// Report is a query result plus the originating query, kept for
// auditability and reproduction.
type Report struct {
	Query      ReportQuery `json:"query"`
	Dimensions []string    `json:"dimensions"`
	Metrics    []string    `json:"metrics"`
	Rows       []ReportRow `json:"rows"`
}

// MetricIndex returns the column index of a metric, or -1.
func (r *Report) MetricIndex(name string) int {
	for i, m := range r.Metrics {
		if m == name {
			return i
		}
	}
	return -1
}

// Metric returns the named metric value of a row.
func (r *Report) Metric(row int, name string) (float64, bool) {
	i := r.MetricIndex(name)
	if i < 0 || row < 0 || row >= len(r.Rows) || i >= len(r.Rows[row].Metrics) {
		return 0, false
	}
	return r.Rows[row].Metrics[i], true
}

// Total sums a metric column over all rows.
func (r *Report) Total(name string) float64 {
	i := r.MetricIndex(name)
	if i < 0 {
		return 0
	}
	var sum float64
	for _, row := range r.Rows {
		if i < len(row.Metrics) {
			sum += row.Metrics[i]
		}
	}
	return sum
}

// Column extracts a metric column in row order.
func (r *Report) Column(name string) []float64 {
	i := r.MetricIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]float64, 0, len(r.Rows))
	for _, row := range r.Rows {
		if i < len(row.Metrics) {
			out = append(out, row.Metrics[i])
		}
	}
	return out
}

type reportResponse struct {
	ColumnHeaders []struct {
		Name       string `json:"name"`
		ColumnType string `json:"columnType"`
	} `json:"columnHeaders"`
	Rows [][]json.RawMessage `json:"rows"`
}

// RunReport executes an analytics query and reshapes the positional row
// format into dimension/metric tuples.
func (c *Client) RunReport(ctx context.Context, query ReportQuery) (*Report, error) {
	q := url.Values{}
	q.Set("ids", "channel=="+query.ChannelID)
	q.Set("startDate", query.StartDate.Format("2006-01-02"))
	q.Set("endDate", query.EndDate.Format("2006-01-02"))
	q.Set("metrics", strings.Join(query.Metrics, ","))
	if len(query.Dimensions) > 0 {
		q.Set("dimensions", strings.Join(query.Dimensions, ","))
	}
	if query.Filters != "" {
		q.Set("filters", query.Filters)
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.MaxResults > 0 {
		q.Set("maxResults", strconv.Itoa(query.MaxResults))
	}

	var resp reportResponse
	if err := c.do(ctx, http.MethodGet, c.analyticsBaseURL+"/reports", q, nil, &resp); err != nil {
		return nil, err
	}

	report := &Report{Query: query}
	var dimIdx, metIdx []int
	for i, h := range resp.ColumnHeaders {
		if h.ColumnType == "DIMENSION" {
			report.Dimensions = append(report.Dimensions, h.Name)
			dimIdx = append(dimIdx, i)
		} else {
			report.Metrics = append(report.Metrics, h.Name)
			metIdx = append(metIdx, i)
		}
	}

	for _, raw := range resp.Rows {
		row := ReportRow{
			Dimensions: make([]string, 0, len(dimIdx)),
			Metrics:    make([]float64, 0, len(metIdx)),
		}
		for _, i := range dimIdx {
			var s string
			if i < len(raw) {
				_ = json.Unmarshal(raw[i], &s)
			}
			row.Dimensions = append(row.Dimensions, s)
		}
		for _, i := range metIdx {
			var f float64
			if i < len(raw) {
				_ = json.Unmarshal(raw[i], &f)
			}
			row.Metrics = append(row.Metrics, f)
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// Package export writes video listings and analytics reports to files for
// use outside the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/creatorops/tubectl/internal/yt"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", eris.Errorf("export: unsupported format %q (csv, json, xlsx)", s)
}

var videoHeader = []string{
	"video_id", "title", "published_at", "privacy",
	"views", "likes", "comments", "engagement_pct", "tags",
}

func videoRow(v *yt.Video) []string {
	return []string{
		v.ID,
		v.Title,
		v.PublishedAt.Format("2006-01-02"),
		v.Privacy,
		strconv.FormatInt(v.Views, 10),
		strconv.FormatInt(v.Likes, 10),
		strconv.FormatInt(v.Comments, 10),
		fmt.Sprintf("%.2f", v.EngagementRate()),
		strings.Join(v.Tags, "|"),
	}
}

// Videos writes a video listing to path in the given format.
func Videos(path string, format Format, videos []yt.Video) error {
	switch format {
	case FormatCSV:
		return writeCSV(path, videoHeader, videoRows(videos))
	case FormatJSON:
		return writeJSON(path, videos)
	case FormatXLSX:
		return writeXLSX(path, "videos", videoHeader, videoRows(videos))
	}
	return eris.Errorf("export: unsupported format %q", string(format))
}

func videoRows(videos []yt.Video) [][]string {
	rows := make([][]string, 0, len(videos))
	for i := range videos {
		rows = append(rows, videoRow(&videos[i]))
	}
	return rows
}

// Report writes an analytics report to path in the given format. The header
// is the report's dimension columns followed by its metric columns.
func Report(path string, format Format, rep *yt.Report) error {
	header := append(append([]string{}, rep.Dimensions...), rep.Metrics...)
	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		row := append([]string{}, r.Dimensions...)
		for _, m := range r.Metrics {
			row = append(row, strconv.FormatFloat(m, 'f', -1, 64))
		}
		rows = append(rows, row)
	}

	switch format {
	case FormatCSV:
		return writeCSV(path, header, rows)
	case FormatJSON:
		return writeJSON(path, rep)
	case FormatXLSX:
		return writeXLSX(path, "report", header, rows)
	}
	return eris.Errorf("export: unsupported format %q", string(format))
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	if err := w.WriteAll(rows); err != nil {
		return eris.Wrap(err, "export: write rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return eris.Wrap(f.Close(), "export: close file")
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return eris.Wrap(f.Close(), "export: close file")
}

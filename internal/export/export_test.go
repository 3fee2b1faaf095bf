package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/creatorops/tubectl/internal/yt"
)

func sampleVideos() []yt.Video {
	return []yt.Video{
		{
			ID:          "a",
			Title:       "First Video",
			PublishedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			Privacy:     "public",
			Views:       1000,
			Likes:       40,
			Comments:    10,
			Tags:        []string{"go", "tutorial"},
		},
		{ID: "b", Title: "Second Video", Privacy: "unlisted"},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"csv", "JSON", "Xlsx"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestVideos_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "videos.csv")
	require.NoError(t, Videos(path, FormatCSV, sampleVideos()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "video_id", rows[0][0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "First Video", rows[1][1])
	assert.Equal(t, "1000", rows[1][4])
	assert.Equal(t, "go|tutorial", rows[1][8])
}

func TestVideos_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, Videos(path, FormatJSON, sampleVideos()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []yt.Video
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "First Video", got[0].Title)
}

func TestVideos_XLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "videos.xlsx")
	require.NoError(t, Videos(path, FormatXLSX, sampleVideos()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	assert.Equal(t, "videos", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "video_id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "a", sheet.Rows[1].Cells[0].String())
}

func TestReport_CSV(t *testing.T) {
	t.Parallel()

	rep := &yt.Report{
		Dimensions: []string{"day"},
		Metrics:    []string{"views", "likes"},
		Rows: []yt.ReportRow{
			{Dimensions: []string{"2026-01-01"}, Metrics: []float64{100, 5}},
			{Dimensions: []string{"2026-01-02"}, Metrics: []float64{200.5, 10}},
		},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, Report(path, FormatCSV, rep))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"day", "views", "likes"}, rows[0])
	assert.Equal(t, []string{"2026-01-01", "100", "5"}, rows[1])
	assert.Equal(t, "200.5", rows[2][1])
}

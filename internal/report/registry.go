package report

import (
	"sort"
	"strings"
)

// Metric describes one entry of the reporting API's closed metric vocabulary.
// Ratio metrics (rates, averages, percentages) have different gap semantics
// in time series than count metrics.
type Metric struct {
	Name        string
	Description string
	Group       string
	Core        bool
	Monetary    bool
	Ratio       bool
}

// Dimension describes one entry of the closed dimension vocabulary.
type Dimension struct {
	Name        string
	Description string
	Group       string
	FilterOnly  bool
}

// Metrics is the closed metric enumeration, keyed by API name.
var Metrics = indexMetrics([]Metric{
	// View metrics
	{Name: "views", Description: "Number of times videos were viewed", Group: "views", Core: true},
	{Name: "engagedViews", Description: "Views past the initial seconds", Group: "views", Core: true},
	{Name: "redViews", Description: "Views by YouTube Premium members", Group: "views"},
	{Name: "viewerPercentage", Description: "Percentage of logged-in viewers", Group: "views", Core: true, Ratio: true},

	// Reach metrics
	{Name: "videoThumbnailImpressions", Description: "Times thumbnails were shown to viewers", Group: "reach"},
	{Name: "videoThumbnailImpressionsClickRate", Description: "Percentage of impressions that became views (CTR)", Group: "reach", Ratio: true},

	// Watch time metrics
	{Name: "estimatedMinutesWatched", Description: "Total minutes watched", Group: "watch_time", Core: true},
	{Name: "estimatedRedMinutesWatched", Description: "Minutes watched by YouTube Premium members", Group: "watch_time"},
	{Name: "averageViewDuration", Description: "Average playback length in seconds", Group: "watch_time", Core: true, Ratio: true},
	{Name: "averageViewPercentage", Description: "Average percentage of video watched", Group: "watch_time", Ratio: true},

	// Engagement metrics
	{Name: "likes", Description: "Number of likes", Group: "engagement", Core: true},
	{Name: "dislikes", Description: "Number of dislikes", Group: "engagement", Core: true},
	{Name: "comments", Description: "Number of comments", Group: "engagement", Core: true},
	{Name: "shares", Description: "Number of shares via the Share button", Group: "engagement", Core: true},
	{Name: "subscribersGained", Description: "New subscribers gained", Group: "engagement", Core: true},
	{Name: "subscribersLost", Description: "Subscribers lost", Group: "engagement", Core: true},
	{Name: "videosAddedToPlaylists", Description: "Times videos were added to any playlist", Group: "engagement"},
	{Name: "videosRemovedFromPlaylists", Description: "Times videos were removed from any playlist", Group: "engagement"},

	// Card metrics
	{Name: "cardImpressions", Description: "Number of card impressions", Group: "cards"},
	{Name: "cardClicks", Description: "Number of card clicks", Group: "cards"},
	{Name: "cardClickRate", Description: "Card click-through rate", Group: "cards", Ratio: true},
	{Name: "cardTeaserImpressions", Description: "Number of card teaser impressions", Group: "cards"},
	{Name: "cardTeaserClicks", Description: "Number of card teaser clicks", Group: "cards"},
	{Name: "cardTeaserClickRate", Description: "Card teaser click-through rate", Group: "cards", Ratio: true},

	// Annotation metrics
	{Name: "annotationImpressions", Description: "Total annotation impressions", Group: "annotations"},
	{Name: "annotationClicks", Description: "Number of annotation clicks", Group: "annotations"},
	{Name: "annotationClickThroughRate", Description: "Annotation click-through rate", Group: "annotations", Core: true, Ratio: true},
	{Name: "annotationClosableImpressions", Description: "Closable annotation impressions", Group: "annotations"},
	{Name: "annotationCloses", Description: "Number of annotation closes", Group: "annotations"},
	{Name: "annotationCloseRate", Description: "Annotation close rate", Group: "annotations", Core: true, Ratio: true},
	{Name: "annotationClickableImpressions", Description: "Clickable annotation impressions", Group: "annotations"},

	// Revenue metrics (monetary scope required)
	{Name: "estimatedRevenue", Description: "Estimated total net revenue", Group: "revenue", Core: true, Monetary: true},
	{Name: "estimatedAdRevenue", Description: "Estimated ad net revenue", Group: "revenue", Monetary: true},
	{Name: "grossRevenue", Description: "Estimated gross revenue from ads", Group: "revenue", Monetary: true},
	{Name: "estimatedRedPartnerRevenue", Description: "Estimated YouTube Premium revenue", Group: "revenue", Monetary: true},
	{Name: "monetizedPlaybacks", Description: "Playbacks that showed at least one ad", Group: "revenue", Monetary: true},
	{Name: "playbackBasedCpm", Description: "Estimated gross revenue per 1000 playbacks", Group: "revenue", Monetary: true, Ratio: true},
	{Name: "adImpressions", Description: "Number of verified ad impressions", Group: "revenue", Monetary: true},
	{Name: "cpm", Description: "Estimated gross revenue per 1000 ad impressions", Group: "revenue", Monetary: true, Ratio: true},

	// Playlist metrics (in-playlist)
	{Name: "playlistViews", Description: "Video views in the context of a playlist", Group: "playlist"},
	{Name: "playlistStarts", Description: "Number of times playlist playback was initiated", Group: "playlist"},
	{Name: "viewsPerPlaylistStart", Description: "Average views per playlist start", Group: "playlist", Ratio: true},
	{Name: "averageTimeInPlaylist", Description: "Average time (min) viewers spent in playlist", Group: "playlist", Ratio: true},
	{Name: "playlistSaves", Description: "Net number of playlist saves", Group: "playlist"},
	{Name: "playlistEstimatedMinutesWatched", Description: "Minutes watched in playlist context", Group: "playlist"},
	{Name: "playlistAverageViewDuration", Description: "Average video view length in playlist context", Group: "playlist", Ratio: true},

	// Unique viewers
	{Name: "uniques", Description: "Estimated unique viewers", Group: "audience"},
})

// Dimensions is the closed dimension enumeration, keyed by API name.
var Dimensions = indexDimensions([]Dimension{
	// Time
	{Name: "day", Description: "Date in YYYY-MM-DD format", Group: "time"},
	{Name: "month", Description: "Month in YYYY-MM format", Group: "time"},

	// Geographic
	{Name: "country", Description: "Two-letter ISO 3166-1 country code", Group: "geographic"},
	{Name: "province", Description: "US state (ISO 3166-2, requires country==US filter)", Group: "geographic"},
	{Name: "city", Description: "Estimated city (available from 2022-01-01)", Group: "geographic"},
	{Name: "continent", Description: "UN statistical region code", Group: "geographic", FilterOnly: true},
	{Name: "subContinent", Description: "UN sub-region code", Group: "geographic", FilterOnly: true},
	{Name: "dma", Description: "Nielsen Designated Market Area (3-digit)", Group: "geographic"},

	// Content
	{Name: "video", Description: "YouTube video ID", Group: "content"},
	{Name: "playlist", Description: "YouTube playlist ID", Group: "content"},
	{Name: "group", Description: "YouTube Analytics group ID", Group: "content", FilterOnly: true},
	{Name: "creatorContentType", Description: "Content type: shorts, videos, or live", Group: "content"},

	// Traffic sources
	{Name: "insightTrafficSourceType", Description: "Traffic source category", Group: "traffic"},
	{Name: "insightTrafficSourceDetail", Description: "Specific traffic source (search term, URL)", Group: "traffic"},

	// Playback
	{Name: "playbackLocationType", Description: "Where the video was played (watch page, embed, etc)", Group: "playback"},
	{Name: "liveOrOnDemand", Description: "Whether content was live or on-demand", Group: "playback"},

	// Device
	{Name: "deviceType", Description: "Device type (mobile, desktop, tablet, tv, etc)", Group: "device"},
	{Name: "operatingSystem", Description: "Operating system", Group: "device"},

	// Audience
	{Name: "ageGroup", Description: "Viewer age group", Group: "audience"},
	{Name: "gender", Description: "Viewer gender", Group: "audience"},
	{Name: "subscribedStatus", Description: "Whether viewer is subscribed", Group: "audience"},
	{Name: "youtubeProduct", Description: "YouTube product (main, shorts, music, etc)", Group: "audience"},

	// Sharing
	{Name: "sharingService", Description: "Service used to share (whatsapp, twitter, etc)", Group: "sharing"},

	// Ads
	{Name: "adType", Description: "Type of ad that ran during playback", Group: "ads"},
})

func indexMetrics(list []Metric) map[string]Metric {
	m := make(map[string]Metric, len(list))
	for _, entry := range list {
		m[entry.Name] = entry
	}
	return m
}

func indexDimensions(list []Dimension) map[string]Dimension {
	m := make(map[string]Dimension, len(list))
	for _, entry := range list {
		m[entry.Name] = entry
	}
	return m
}

// MetricNames returns all metric names sorted.
func MetricNames() []string {
	names := make([]string, 0, len(Metrics))
	for name := range Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DimensionNames returns all dimension names sorted.
func DimensionNames() []string {
	names := make([]string, 0, len(Dimensions))
	for name := range Dimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const suggestionDistance = 3

// ClosestMetric returns the closest metric name for typo suggestions, or "".
func ClosestMetric(name string) string {
	return closest(name, MetricNames())
}

// ClosestDimension returns the closest dimension name for typo suggestions, or "".
func ClosestDimension(name string) string {
	return closest(name, DimensionNames())
}

func closest(name string, candidates []string) string {
	best := ""
	bestDist := suggestionDistance + 1
	for _, candidate := range candidates {
		d := levenshtein(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}

func levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 0; i < len(a); i++ {
		curr[0] = i + 1
		for j := 0; j < len(b); j++ {
			cost := 0
			if a[i] != b[j] {
				cost = 1
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

package yt

import "time"

// Video is a channel content item. Title, description, and tags are mutable;
// the stats are owned by the remote service and read-only here.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CategoryID  string    `json:"category_id"`
	PublishedAt time.Time `json:"published_at"`
	Duration    string    `json:"duration"`
	Privacy     string    `json:"privacy"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
}

// EngagementRate is (likes+comments)/views as a percentage, 0 when unviewed.
func (v Video) EngagementRate() float64 {
	if v.Views == 0 {
		return 0
	}
	return float64(v.Likes+v.Comments) / float64(v.Views) * 100
}

// Channel is the authenticated user's channel.
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Subscribers     int64  `json:"subscribers"`
	TotalViews      int64  `json:"total_views"`
	VideoCount      int64  `json:"video_count"`
	UploadsPlaylist string `json:"uploads_playlist"`
}

// VideoUpdate carries the mutable snippet fields for an update call. All
// fields are written as a unit, per the API's snippet-replacement contract.
type VideoUpdate struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// UpdateFrom builds a full snippet update from a video's current state.
func UpdateFrom(v *Video) VideoUpdate {
	return VideoUpdate{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.Tags,
		CategoryID:  v.CategoryID,
	}
}

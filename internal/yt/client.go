package yt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultDataBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultAnalyticsBaseURL = "https://youtubeanalytics.googleapis.com/v2"

	// maxPageSize is the server's hard cap per listing page.
	maxPageSize = 50
)

// Client issues authenticated calls against the Data and Analytics APIs.
// It holds no business logic: every method is one remote operation returning
// typed results or a classified error. All outbound calls pass the shared
// rate limiter and are counted toward the per-invocation budget.
type Client struct {
	http             *http.Client
	dataBaseURL      string
	analyticsBaseURL string
	limiter          *rate.Limiter
	pageSize         int
	calls            atomic.Int64
}

// Option configures the client.
type Option func(*Client)

// WithBaseURLs overrides both API base URLs. Empty values keep the default.
func WithBaseURLs(data, analytics string) Option {
	return func(c *Client) {
		if data != "" {
			c.dataBaseURL = data
		}
		if analytics != "" {
			c.analyticsBaseURL = analytics
		}
	}
}

// WithRateLimit overrides the default outbound rate limit.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithPageSize sets the listing page-size hint (capped at the server maximum).
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.pageSize = n
		}
	}
}

// NewClient wraps an authenticated HTTP client. The given client is copied so
// the timeout can be set without mutating the caller's.
func NewClient(authed *http.Client, opts ...Option) *Client {
	hc := *authed
	if hc.Timeout == 0 {
		hc.Timeout = 30 * time.Second
	}
	c := &Client{
		http:             &hc,
		dataBaseURL:      defaultDataBaseURL,
		analyticsBaseURL: defaultAnalyticsBaseURL,
		limiter:          rate.NewLimiter(5, 5),
		pageSize:         maxPageSize,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Calls returns the number of outbound calls issued by this client so far.
func (c *Client) Calls() int64 { return c.calls.Load() }

// apiError is the error envelope both APIs return.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "yt: rate limiter wait")
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "yt: marshal request")
		}
		reqBody = bytes.NewReader(data)
	}

	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return eris.Wrap(err, "yt: create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.calls.Add(1)
	resp, err := c.http.Do(req)
	if err != nil {
		if IsAuth(err) {
			return err
		}
		return classifyTransport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(respBody, &ae)
		reason := ""
		if len(ae.Error.Errors) > 0 {
			reason = ae.Error.Errors[0].Reason
		}
		zap.L().Debug("yt: call failed",
			zap.String("url", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", reason),
		)
		return classifyStatus(resp.StatusCode, reason, ae.Error.Message)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return eris.Wrap(err, "yt: unmarshal response")
		}
	}
	return nil
}

// --- channels ---

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			ViewCount       string `json:"viewCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// MyChannel fetches the authenticated user's channel.
func (c *Client) MyChannel(ctx context.Context) (*Channel, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	q.Set("mine", "true")

	var resp channelsResponse
	if err := c.do(ctx, http.MethodGet, c.dataBaseURL+"/channels", q, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, &RemoteError{Kind: KindNotFound, Message: "no channel for authenticated user"}
	}

	item := resp.Items[0]
	return &Channel{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		Subscribers:     parseCount(item.Statistics.SubscriberCount),
		TotalViews:      parseCount(item.Statistics.ViewCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
		UploadsPlaylist: item.ContentDetails.RelatedPlaylists.Uploads,
	}, nil
}

// --- playlist items ---

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *Client) playlistItemsPage(ctx context.Context, playlistID, pageToken string, maxResults int) ([]string, string, error) {
	q := url.Values{}
	q.Set("part", "contentDetails")
	q.Set("playlistId", playlistID)
	q.Set("maxResults", strconv.Itoa(maxResults))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp playlistItemsResponse
	if err := c.do(ctx, http.MethodGet, c.dataBaseURL+"/playlistItems", q, nil, &resp); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.ContentDetails.VideoID)
	}
	return ids, resp.NextPageToken, nil
}

// --- videos ---

type videosResponse struct {
	Items []videoResource `json:"items"`
}

type videoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		CategoryID  string   `json:"categoryId"`
		PublishedAt string   `json:"publishedAt"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
}

func (r videoResource) toVideo() Video {
	published, _ := time.Parse(time.RFC3339, r.Snippet.PublishedAt)
	return Video{
		ID:          r.ID,
		Title:       r.Snippet.Title,
		Description: r.Snippet.Description,
		Tags:        r.Snippet.Tags,
		CategoryID:  r.Snippet.CategoryID,
		PublishedAt: published,
		Duration:    r.ContentDetails.Duration,
		Privacy:     r.Status.PrivacyStatus,
		Views:       parseCount(r.Statistics.ViewCount),
		Likes:       parseCount(r.Statistics.LikeCount),
		Comments:    parseCount(r.Statistics.CommentCount),
	}
}

// ListVideos hydrates up to 50 video IDs in a single call, preserving the
// requested order. IDs the server does not return are dropped.
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails,status")
	q.Set("id", strings.Join(ids, ","))

	var resp videosResponse
	if err := c.do(ctx, http.MethodGet, c.dataBaseURL+"/videos", q, nil, &resp); err != nil {
		return nil, err
	}

	byID := make(map[string]videoResource, len(resp.Items))
	for _, item := range resp.Items {
		byID[item.ID] = item
	}

	videos := make([]Video, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			videos = append(videos, item.toVideo())
		}
	}
	return videos, nil
}

// GetVideo fetches a single video, or KindNotFound if it does not exist.
func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	videos, err := c.ListVideos(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, &RemoteError{Kind: KindNotFound, Message: "video not found: " + id}
	}
	return &videos[0], nil
}

// UpdateVideo replaces the video's snippet. The snippet is written as a unit,
// so callers must populate every field from current state first.
func (c *Client) UpdateVideo(ctx context.Context, upd VideoUpdate) error {
	q := url.Values{}
	q.Set("part", "snippet")

	body := map[string]any{
		"id": upd.ID,
		"snippet": map[string]any{
			"title":       upd.Title,
			"description": upd.Description,
			"tags":        upd.Tags,
			"categoryId":  upd.CategoryID,
		},
	}
	return c.do(ctx, http.MethodPut, c.dataBaseURL+"/videos", q, body, nil)
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}


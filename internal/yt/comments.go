package yt

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxCommentPage is the server's hard cap for commentThreads.list.
const maxCommentPage = 100

// Comment is a top-level comment on a video. Replies are not fetched.
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Likes       int64     `json:"likes"`
	PublishedAt time.Time `json:"published_at"`
}

type commentThreadsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextOriginal      string `json:"textOriginal"`
					LikeCount         int64  `json:"likeCount"`
					PublishedAt       string `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// CommentThreads fetches up to limit top-level comments on a video, most
// relevant first. A video with comments disabled surfaces as a KindRejected
// RemoteError from the server.
func (c *Client) CommentThreads(ctx context.Context, videoID string, limit int) ([]Comment, error) {
	if limit <= 0 || limit > maxCommentPage {
		limit = maxCommentPage
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("videoId", videoID)
	q.Set("maxResults", strconv.Itoa(limit))
	q.Set("order", "relevance")

	var resp commentThreadsResponse
	if err := c.do(ctx, http.MethodGet, c.dataBaseURL+"/commentThreads", q, nil, &resp); err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		s := item.Snippet.TopLevelComment.Snippet
		published, _ := time.Parse(time.RFC3339, s.PublishedAt)
		comments = append(comments, Comment{
			ID:          item.ID,
			Author:      s.AuthorDisplayName,
			Text:        s.TextOriginal,
			Likes:       s.LikeCount,
			PublishedAt: published,
		})
	}
	return comments, nil
}

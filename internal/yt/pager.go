package yt

import "context"

// PageFunc fetches one page of a listing endpoint. An empty pageToken starts
// a fresh continuation; the returned token is opaque and empty on the last
// page.
type PageFunc[T any] func(ctx context.Context, pageToken string, maxResults int) (items []T, nextToken string, err error)

// Pager turns a paginated listing call into a lazy, finite sequence. Each
// Pager owns its own continuation, so creating a new one restarts from the
// beginning. Page boundaries are the server's: the page-size value is a hint,
// never an assumption.
type Pager[T any] struct {
	fetch    PageFunc[T]
	pageSize int
	token    string
	started  bool
	done     bool
}

// NewPager creates a pager over fetch with the given page-size hint.
func NewPager[T any](fetch PageFunc[T], pageSize int) *Pager[T] {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &Pager[T]{fetch: fetch, pageSize: pageSize}
}

// Next returns the next page. ok is false once the sequence is exhausted.
// A failed page request fails the whole sequence; pages are never dropped.
func (p *Pager[T]) Next(ctx context.Context) (items []T, ok bool, err error) {
	for !p.done {
		items, next, err := p.fetch(ctx, p.token, p.pageSize)
		if err != nil {
			p.done = true
			return nil, false, err
		}

		p.started = true
		p.token = next
		if next == "" {
			p.done = true
		}
		if len(items) > 0 {
			return items, true, nil
		}
		// Empty page with a continuation token: keep following.
	}
	return nil, false, nil
}

// Collect drains the sequence into a slice, stopping once limit items are
// gathered. limit <= 0 means no cap.
func (p *Pager[T]) Collect(ctx context.Context, limit int) ([]T, error) {
	var out []T
	for {
		if limit > 0 && len(out) >= limit {
			return out[:limit], nil
		}
		items, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, items...)
	}
}

// Uploads returns a pager over the videos of an uploads playlist, hydrated
// with stats. Each page costs two calls: one listing, one hydration.
func (c *Client) Uploads(playlistID string) *Pager[Video] {
	fetch := func(ctx context.Context, pageToken string, maxResults int) ([]Video, string, error) {
		ids, next, err := c.playlistItemsPage(ctx, playlistID, pageToken, maxResults)
		if err != nil {
			return nil, "", err
		}
		if len(ids) == 0 {
			return nil, next, nil
		}
		videos, err := c.ListVideos(ctx, ids)
		if err != nil {
			return nil, "", err
		}
		return videos, next, nil
	}
	return NewPager(fetch, c.pageSize)
}

package yt

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages builds a PageFunc over a fixed sequence of pages keyed by token.
type fakePages struct {
	pages map[string]struct {
		items []string
		next  string
	}
	calls int
}

func newFakePages() *fakePages {
	return &fakePages{pages: make(map[string]struct {
		items []string
		next  string
	})}
}

func (f *fakePages) add(token string, items []string, next string) {
	f.pages[token] = struct {
		items []string
		next  string
	}{items, next}
}

func (f *fakePages) fetch(_ context.Context, token string, _ int) ([]string, string, error) {
	f.calls++
	page, ok := f.pages[token]
	if !ok {
		return nil, "", eris.Errorf("unknown page token %q", token)
	}
	return page.items, page.next, nil
}

func TestPager_WalksAllPages(t *testing.T) {
	t.Parallel()

	pages := newFakePages()
	pages.add("", []string{"a", "b"}, "t1")
	pages.add("t1", []string{"c"}, "t2")
	pages.add("t2", []string{"d"}, "")

	p := NewPager(pages.fetch, 50)
	var got []string
	for {
		items, ok, err := p.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, items...)
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 3, pages.calls)

	// Exhausted pager stays exhausted without refetching.
	_, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, pages.calls)
}

func TestPager_SkipsEmptyMiddlePages(t *testing.T) {
	t.Parallel()

	pages := newFakePages()
	pages.add("", []string{"a"}, "t1")
	pages.add("t1", nil, "t2")
	pages.add("t2", []string{"b"}, "")

	p := NewPager(pages.fetch, 50)
	got, err := p.Collect(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestPager_FreshPagerRestarts(t *testing.T) {
	t.Parallel()

	pages := newFakePages()
	pages.add("", []string{"a"}, "t1")
	pages.add("t1", []string{"b"}, "")

	first, err := NewPager(pages.fetch, 50).Collect(context.Background(), 0)
	require.NoError(t, err)
	second, err := NewPager(pages.fetch, 50).Collect(context.Background(), 0)
	require.NoError(t, err)

	// Each pager owns its continuation and starts from the beginning.
	assert.Equal(t, first, second)
	assert.Equal(t, 4, pages.calls)
}

func TestPager_CollectLimit(t *testing.T) {
	t.Parallel()

	pages := newFakePages()
	pages.add("", []string{"a", "b", "c"}, "t1")
	pages.add("t1", []string{"d", "e"}, "")

	got, err := NewPager(pages.fetch, 50).Collect(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	// The second page is never fetched.
	assert.Equal(t, 1, pages.calls)
}

func TestPager_ErrorFailsSequence(t *testing.T) {
	t.Parallel()

	pages := newFakePages()
	pages.add("", []string{"a"}, "missing")

	p := NewPager(pages.fetch, 50)
	_, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = p.Next(context.Background())
	require.Error(t, err)
	assert.False(t, ok)

	// A failed sequence does not resume.
	_, ok, err = p.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

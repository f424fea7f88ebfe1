package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/manifest-network/sebakscan/internal/client"
	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetcher serves a fixed list of numbers as HAL pages addressed by
// "/items?start=N&limit=L".
type pagedFetcher struct {
	items []int
	calls int
	err   error
}

func (f *pagedFetcher) href(start, limit int) string {
	return fmt.Sprintf("/items?start=%d&limit=%d", start, limit)
}

func (f *pagedFetcher) page(start, limit int) *client.Envelope {
	end := min(start+limit, len(f.items))
	records := make([]any, 0, end-start)
	for _, n := range f.items[start:end] {
		records = append(records, map[string]any{"n": json.Number(strconv.Itoa(n))})
	}

	links := map[string]any{"self": map[string]any{"href": f.href(start, limit)}}
	if end < len(f.items) {
		links["next"] = map[string]any{"href": f.href(end, limit)}
	}
	if start > 0 {
		links["prev"] = map[string]any{"href": f.href(max(0, start-limit), limit)}
	}

	return &client.Envelope{Data: map[string]any{
		"_embedded": map[string]any{"records": records},
		"_links":    links,
	}}
}

func (f *pagedFetcher) GetLink(_ context.Context, href string) (*client.Envelope, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil, err
	}
	start, _ := strconv.Atoi(u.Query().Get("start"))
	limit, _ := strconv.Atoi(u.Query().Get("limit"))
	return f.page(start, limit), nil
}

func transformNumber(raw map[string]any) (int, error) {
	n, ok := raw["n"].(json.Number)
	if !ok {
		return 0, errors.WithMessage(fault.ErrMalformedRecord, "field 'n' not found")
	}
	v, err := n.Int64()
	return int(v), err
}

func newFetcher(count int) *pagedFetcher {
	items := make([]int, count)
	for i := range items {
		items[i] = i + 1
	}
	return &pagedFetcher{items: items}
}

func TestWrapFirstPage(t *testing.T) {
	f := newFetcher(12)
	cursor, err := Wrap(f.page(0, 5), f, transformNumber)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, cursor.Data)
	assert.True(t, cursor.HasNext())
	assert.False(t, cursor.HasPrevious())
	assert.Zero(t, f.calls)
}

func TestNextThenPreviousRoundTrip(t *testing.T) {
	f := newFetcher(12)
	first, err := Wrap(f.page(0, 5), f, transformNumber)
	require.NoError(t, err)

	second, err := first.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, second.Data)

	back, err := second.Previous(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Data, back.Data)

	third, err := second.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12}, third.Data)
	assert.False(t, third.HasNext())
}

func TestCursorIsNotMutated(t *testing.T) {
	f := newFetcher(12)
	first, err := Wrap(f.page(0, 5), f, transformNumber)
	require.NoError(t, err)

	a, err := first.Next(context.Background())
	require.NoError(t, err)
	b, err := first.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, first.Data)
	assert.Equal(t, a.Data, b.Data)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, f.calls)
}

func TestNoSuchPage(t *testing.T) {
	f := newFetcher(3)
	only, err := Wrap(f.page(0, 5), f, transformNumber)
	require.NoError(t, err)

	_, err = only.Next(context.Background())
	assert.ErrorIs(t, err, fault.ErrNoSuchPage)
	_, err = only.Previous(context.Background())
	assert.ErrorIs(t, err, fault.ErrNoSuchPage)
	assert.Zero(t, f.calls, "no request is made without a link")
}

func TestAllowEmpty(t *testing.T) {
	f := newFetcher(0)
	env := &client.Envelope{Data: map[string]any{
		"_links": map[string]any{"next": map[string]any{"href": "/items?start=0&limit=5"}},
	}}

	cursor, err := Wrap(env, f, transformNumber, AllowEmpty())
	require.NoError(t, err)
	assert.NotNil(t, cursor.Data)
	assert.Empty(t, cursor.Data)
	assert.False(t, cursor.HasNext())

	_, err = cursor.Next(context.Background())
	assert.ErrorIs(t, err, fault.ErrNoSuchPage)

	_, err = Wrap(env, f, transformNumber)
	assert.ErrorIs(t, err, fault.ErrMalformedRecord)
}

func TestAllowEmptyIsKeptAcrossPages(t *testing.T) {
	calls := 0
	fetcher := fetchFunc(func(ctx context.Context, href string) (*client.Envelope, error) {
		calls++
		return &client.Envelope{Data: map[string]any{}}, nil
	})
	env := &client.Envelope{Data: map[string]any{
		"_embedded": map[string]any{"records": []any{map[string]any{"n": json.Number("1")}}},
		"_links":    map[string]any{"next": map[string]any{"href": "/items?start=1"}},
	}}

	cursor, err := Wrap(env, fetcher, transformNumber, AllowEmpty())
	require.NoError(t, err)

	next, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, next.Data)
	assert.Equal(t, 1, calls)
}

func TestTransformErrorPropagates(t *testing.T) {
	env := &client.Envelope{Data: map[string]any{
		"_embedded": map[string]any{"records": []any{
			map[string]any{"n": json.Number("1")},
			map[string]any{"m": json.Number("2")},
		}},
	}}

	_, err := Wrap(env, newFetcher(0), transformNumber)
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "record 1")
}

func TestFetchErrorPropagates(t *testing.T) {
	f := newFetcher(12)
	first, err := Wrap(f.page(0, 5), f, transformNumber)
	require.NoError(t, err)

	f.err = fmt.Errorf("%w: connection refused", fault.ErrNetwork)
	_, err = first.Next(context.Background())
	assert.ErrorIs(t, err, fault.ErrNetwork)
}

func TestReversed(t *testing.T) {
	f := newFetcher(12)
	cursor, err := Wrap(f.page(5, 5), f, transformNumber)
	require.NoError(t, err)

	reversed := cursor.Reversed()
	assert.Equal(t, []int{10, 9, 8, 7, 6}, reversed.Data)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, cursor.Data)
	assert.Equal(t, cursor.HasNext(), reversed.HasNext())
	assert.Equal(t, cursor.HasPrevious(), reversed.HasPrevious())
}

type fetchFunc func(ctx context.Context, href string) (*client.Envelope, error)

func (f fetchFunc) GetLink(ctx context.Context, href string) (*client.Envelope, error) {
	return f(ctx, href)
}

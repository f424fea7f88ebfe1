// Package pagination wraps HAL collection envelopes into cursors that follow
// the server's next and prev links.
package pagination

import (
	"context"
	"slices"

	"github.com/manifest-network/sebakscan/internal/client"
	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/pkg/errors"
)

// LinkFetcher fetches a hypermedia link.
type LinkFetcher interface {
	GetLink(ctx context.Context, href string) (*client.Envelope, error)
}

// TransformFunc maps one raw record to an entity.
type TransformFunc[T any] func(raw map[string]any) (T, error)

type options struct {
	allowEmpty bool
}

// Option configures how an envelope is wrapped.
type Option func(*options)

// AllowEmpty treats a missing `_embedded.records` key as an empty collection
// without links, for resources that are legitimately empty.
func AllowEmpty() Option {
	return func(o *options) {
		o.allowEmpty = true
	}
}

// Cursor is one page of a collection. It keeps only what is needed to fetch
// the neighbouring pages: their hrefs, the fetcher and the transform. Next and
// Previous return new cursors and never modify the receiver.
type Cursor[T any] struct {
	Data []T

	next      string
	prev      string
	fetcher   LinkFetcher
	transform TransformFunc[T]
	opts      options
}

// Wrap transforms every record of env and captures its next and prev links.
func Wrap[T any](env *client.Envelope, fetcher LinkFetcher, transform TransformFunc[T], opts ...Option) (*Cursor[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return wrap(env, fetcher, transform, o)
}

func wrap[T any](env *client.Envelope, fetcher LinkFetcher, transform TransformFunc[T], o options) (*Cursor[T], error) {
	cursor := &Cursor[T]{
		Data:      []T{},
		fetcher:   fetcher,
		transform: transform,
		opts:      o,
	}
	if env == nil {
		return nil, errors.WithMessage(fault.ErrMalformedRecord, "empty envelope")
	}

	records, present, err := env.Records()
	if err != nil {
		return nil, err
	}
	if !present {
		if o.allowEmpty {
			return cursor, nil
		}
		return nil, errors.WithMessage(fault.ErrMalformedRecord, "field '_embedded.records' not found")
	}

	cursor.Data = make([]T, 0, len(records))
	for i, raw := range records {
		item, err := transform(raw)
		if err != nil {
			return nil, errors.WithMessagef(err, "record %d", i)
		}
		cursor.Data = append(cursor.Data, item)
	}

	cursor.next, _ = env.Link("next")
	cursor.prev, _ = env.Link("prev")
	return cursor, nil
}

// HasNext reports whether the server supplied a next link.
func (c *Cursor[T]) HasNext() bool {
	return c.next != ""
}

// HasPrevious reports whether the server supplied a prev link.
func (c *Cursor[T]) HasPrevious() bool {
	return c.prev != ""
}

// Next fetches the page behind the next link.
func (c *Cursor[T]) Next(ctx context.Context) (*Cursor[T], error) {
	if c.next == "" {
		return nil, errors.WithMessage(fault.ErrNoSuchPage, "no next link")
	}
	return c.follow(ctx, c.next)
}

// Previous fetches the page behind the prev link.
func (c *Cursor[T]) Previous(ctx context.Context) (*Cursor[T], error) {
	if c.prev == "" {
		return nil, errors.WithMessage(fault.ErrNoSuchPage, "no prev link")
	}
	return c.follow(ctx, c.prev)
}

func (c *Cursor[T]) follow(ctx context.Context, href string) (*Cursor[T], error) {
	env, err := c.fetcher.GetLink(ctx, href)
	if err != nil {
		return nil, err
	}
	return wrap(env, c.fetcher, c.transform, c.opts)
}

// Reversed returns a copy of the cursor with Data in reverse order. Links are
// kept as they are. Callers paging backwards use it to keep a stable display
// order, since the server returns backward pages in its own iteration order.
func (c *Cursor[T]) Reversed() *Cursor[T] {
	out := *c
	out.Data = slices.Clone(c.Data)
	slices.Reverse(out.Data)
	return &out
}

package batch

import (
	"context"
	"fmt"
	"iter"
)

// PagingHandler fetches the pages of one list operation.
// First retrieves page 1; Next retrieves the page addressed by a continuation link.
type PagingHandler[T any] struct {
	First func(ctx context.Context) (*Page[T], error)
	Next  func(ctx context.Context, nextLink string) (*Page[T], error)
}

// fetch retrieves the first page when link is empty and the linked page otherwise.
func (h PagingHandler[T]) fetch(ctx context.Context, link string) (*Page[T], error) {
	var (
		page *Page[T]
		err  error
	)

	if link == "" {
		page, err = h.First(ctx)
	} else {
		page, err = h.Next(ctx, link)
	}

	if err != nil {
		return nil, err
	}

	if page == nil {
		page = &Page[T]{}
	}

	return page, nil
}

// PaginationOptions bounds how many pages ListAll will fetch.
type PaginationOptions struct {
	// MaxPages stops iteration after this many pages. Zero means no limit.
	MaxPages int
}

// DefaultPaginationOptions returns options without a page limit.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// Pager walks a paged list one page at a time. A Pager is not safe for concurrent use.
type Pager[T any] struct {
	handler  PagingHandler[T]
	nextLink string
	started  bool
	pages    int
	maxPages int
}

// NewPager creates a pager over handler.
func NewPager[T any](handler PagingHandler[T]) *Pager[T] {
	return &Pager[T]{handler: handler}
}

// NewPagerFromLink creates a pager that resumes at a continuation link.
func NewPagerFromLink[T any](handler PagingHandler[T], nextLink string) *Pager[T] {
	return &Pager[T]{handler: handler, nextLink: nextLink, started: nextLink != ""}
}

// WithOptions applies pagination options and returns the pager.
func (p *Pager[T]) WithOptions(opts *PaginationOptions) *Pager[T] {
	if opts != nil {
		p.maxPages = opts.MaxPages
	}

	return p
}

// More reports whether NextPage has a page to return.
func (p *Pager[T]) More() bool {
	if p.maxPages > 0 && p.pages >= p.maxPages {
		return false
	}

	return !p.started || p.nextLink != ""
}

// NextLink returns the continuation link of the last fetched page.
func (p *Pager[T]) NextLink() string {
	return p.nextLink
}

// NextPage fetches the next page. It returns ErrNoMoreItems once the final page was returned.
func (p *Pager[T]) NextPage(ctx context.Context) (*Page[T], error) {
	if !p.More() {
		return nil, ErrNoMoreItems
	}

	page, err := p.handler.fetch(ctx, p.nextLink)
	if err != nil {
		return nil, err
	}

	p.started = true
	p.pages++
	p.nextLink = page.NextLink

	return page, nil
}

// All returns an iterator over every remaining item. Iteration stops at the first fetch error,
// which is yielded with a zero item.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.More() {
			page, err := p.NextPage(ctx)
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// ForEach calls fn for every remaining item. A non-nil error from fn stops iteration.
func (p *Pager[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for item, err := range p.All(ctx) {
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages in the background and delivers them in order on the returned channel.
// The channel is closed after the final page, after the first error, or when ctx is done.
func (p *Pager[T]) StreamPages(ctx context.Context) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		for p.More() {
			page, err := p.NextPage(ctx)

			result := PageResult[T]{Err: err}
			if page != nil {
				result.Items = page.Items
			}

			select {
			case results <- result:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return results
}

// ListAll fetches every page synchronously and returns the concatenated items.
// On failure the items gathered so far are returned together with the error.
func ListAll[T any](ctx context.Context, handler PagingHandler[T], opts *PaginationOptions) ([]T, error) {
	pager := NewPager(handler).WithOptions(opts)

	var all []T

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", pager.pages+1, err)
		}

		all = append(all, page.Items...)
	}

	if all == nil {
		all = []T{}
	}

	return all, nil
}

// Collect is the blocking form of ListAsync: it dispatches the list and waits for the result.
func Collect[T any](ctx context.Context, handler PagingHandler[T]) ([]T, error) {
	return ListAsync(ctx, handler, ListCallbacks[T]{}).Wait()
}

package rpc

import (
	"context"
	"fmt"
)

const (
	// DefaultPageSize is the limit sent with every page request.
	DefaultPageSize = 10
	// DefaultMaxPages bounds a single collection run.
	DefaultMaxPages = 1000
)

// Pager enumerates a cursor-paginated listing. Pages are fetched strictly one after another:
// each request resumes after the identifier of the last item of the previous page.
type Pager[T any, C comparable] struct {
	// Query names the listing in errors.
	Query string
	// PageSize is the limit passed to Fetch. Zero means DefaultPageSize.
	PageSize int
	// MaxPages caps the number of fetches per run. Zero means unbounded.
	MaxPages int
	// Fetch returns one page of at most limit items after the cursor. A nil cursor starts at the beginning.
	Fetch func(ctx context.Context, after *C, limit int) ([]T, error)
	// Cursor extracts the resume token from the last item of a full page.
	Cursor func(last T) (C, error)
	// Done reports whether page ends the listing. Nil means "fewer than pageSize items".
	Done func(page []T, pageSize int) bool
}

// Collect fetches every page and returns the items in fetch order. Any failure discards
// what was collected so far: the caller gets either the whole listing or an error.
func (p Pager[T, C]) Collect(ctx context.Context) ([]T, error) {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	done := p.Done
	if done == nil {
		done = func(page []T, size int) bool { return len(page) < size }
	}

	var (
		all    []T
		cursor *C
	)
	for pages := 0; ; pages++ {
		if p.MaxPages > 0 && pages >= p.MaxPages {
			return nil, &ShapeError{Query: p.Query, Expected: fmt.Sprintf("at most %d pages", p.MaxPages), Got: "more"}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := p.Fetch(ctx, cursor, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if done(page, pageSize) || len(page) == 0 {
			return all, nil
		}

		next, err := p.Cursor(page[len(page)-1])
		if err != nil {
			return nil, err
		}
		if cursor != nil && *cursor == next {
			return nil, &ShapeError{Query: p.Query, Expected: "advancing cursor", Got: fmt.Sprintf("%v twice", next)}
		}
		cursor = &next
	}
}

package httpx

import (
	"fmt"
	"iter"
)

// PageFetcher retrieves one page given the previous page's cursor ("" for
// the first page) and returns the page's items plus the cursor for the
// next page ("" meaning no more pages).
type PageFetcher[T any] func(cursor string) (items []T, nextCursor string, err error)

// Paginate drives a cursor-paginated listing as a Go 1.23 range-over-func
// iterator. No library in the retrieved pack provides a generic
// paginated-HTTP-iterator abstraction, and the protocol here (opaque
// cursor, empty cursor means done, guard against a remote that echoes the
// same cursor forever) is small enough that stdlib iter.Seq2 is more
// honest than adopting a dependency that doesn't exist in the corpus.
//
// Each yielded error is terminal: a non-nil error stops iteration after
// that yield.
func Paginate[T any](fetch PageFetcher[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cursor := ""
		seen := map[string]bool{}

		for {
			items, next, err := fetch(cursor)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}

			if next != "" && seen[next] {
				var zero T
				yield(zero, fmt.Errorf("pagination: cursor %q repeated, aborting to avoid an infinite loop", next))
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			if next == "" {
				return
			}
			seen[next] = true
			cursor = next
		}
	}
}

// Package pagination splits an already-materialized ordered slice into
// fixed-size pages.
package pagination

// Page is one fixed-size (except possibly the last) slice of items.
type Page[T any] []T

// Paginate splits items into pages of pageSize, the final page possibly
// shorter. pageSize <= 0 returns a single page containing every item.
func Paginate[T any](items []T, pageSize int) []Page[T] {
	if pageSize <= 0 || pageSize >= len(items) {
		if len(items) == 0 {
			return []Page[T]{}
		}
		return []Page[T]{Page[T](items)}
	}
	pages := make([]Page[T], 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, Page[T](items[start:end]))
	}
	return pages
}

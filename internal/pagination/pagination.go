// Package pagination slices ordered collections into fixed-size pages.
package pagination

import "strconv"

// Page is one window into an ordered collection.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// HasPrevious reports whether a page exists before this one.
func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a page exists after this one.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// PreviousNumber returns the previous page number, clamped to the first page.
func (p Page[T]) PreviousNumber() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// NextNumber returns the next page number, clamped to the last page.
func (p Page[T]) NextNumber() int {
	if p.Number >= p.TotalPages {
		return p.TotalPages
	}
	return p.Number + 1
}

// Paginate returns the requested page of items. The page parameter is an
// untrusted string: non-numeric or below-range values resolve to the first
// page, above-range values to the last page. An empty collection still has
// exactly one (empty) page.
func Paginate[T any](items []T, pageParam string, size int) Page[T] {
	if size <= 0 {
		size = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(pageParam)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

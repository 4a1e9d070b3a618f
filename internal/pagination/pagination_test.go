package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginateSplitsIntoFixedPages(t *testing.T) {
	items := intRange(11)

	first := Paginate(items, "1", 10)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 11, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, 1, first.Items[0])
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())

	second := Paginate(items, "2", 10)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, 11, second.Items[0])
	assert.True(t, second.HasPrevious())
	assert.False(t, second.HasNext())
}

func TestPaginateClampsBadPageParams(t *testing.T) {
	items := intRange(25)

	tests := []struct {
		name      string
		pageParam string
		expected  int
	}{
		{"empty string", "", 1},
		{"non-numeric", "banana", 1},
		{"zero", "0", 1},
		{"negative", "-3", 1},
		{"beyond last", "99", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.pageParam, 10)
			assert.Equal(t, tt.expected, page.Number)
			assert.NotEmpty(t, page.Items)
		})
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]string{}, "5", 10)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
	assert.False(t, page.HasPrevious())
	assert.False(t, page.HasNext())
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(intRange(20), "2", 10)

	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 11, page.Items[0])
	assert.Equal(t, 20, page.Items[9])
}

func TestPageNeighborNumbers(t *testing.T) {
	items := intRange(30)

	middle := Paginate(items, "2", 10)
	assert.Equal(t, 1, middle.PreviousNumber())
	assert.Equal(t, 3, middle.NextNumber())

	first := Paginate(items, "1", 10)
	assert.Equal(t, 1, first.PreviousNumber())

	last := Paginate(items, "3", 10)
	assert.Equal(t, 3, last.NextNumber())
}

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobID(t *testing.T) {
	id, err := ParseJobID("42")
	require.NoError(t, err)
	assert.Equal(t, JobID(42), id)
	assert.Equal(t, "42", id.String())

	_, err = ParseJobID("0")
	assert.Error(t, err)
	_, err = ParseJobID("abc")
	assert.Error(t, err)
}

func TestPaginationOptions(t *testing.T) {
	opts := PaginationOptions{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
	assert.Equal(t, 0, opts.Offset())

	opts = PaginationOptions{Page: 3, PageSize: 10}.Normalize()
	assert.Equal(t, 20, opts.Offset())
}

func TestPaginationOptions_HugePage(t *testing.T) {
	tests := []struct {
		name string
		opts PaginationOptions
	}{
		{"normalized", PaginationOptions{Page: 461168601842738791, PageSize: 20}.Normalize()},
		{"raw", PaginationOptions{Page: 461168601842738791, PageSize: 20}},
		{"max int", PaginationOptions{Page: math.MaxInt, PageSize: MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := tt.opts.Offset()
			assert.GreaterOrEqual(t, offset, 0)
			assert.LessOrEqual(t, offset, (MaxPage-1)*MaxPageSize)
		})
	}

	opts := PaginationOptions{Page: math.MaxInt, PageSize: 5}.Normalize()
	assert.Equal(t, MaxPage, opts.Page)
	assert.Equal(t, (MaxPage-1)*5, opts.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{4, 5}, PaginationOptions{Page: 2, PageSize: 2}, 5)
	assert.Equal(t, 3, p.Page.Pages)
	assert.Equal(t, 5, p.Page.Total)
	assert.False(t, p.Empty)

	empty := NewPaginated[int](nil, PaginationOptions{Page: 9, PageSize: 2}, 5)
	assert.True(t, empty.Empty)
	assert.NotNil(t, empty.Items)
}

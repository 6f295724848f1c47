package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchParams_Defaults(t *testing.T) {
	tests := []struct {
		name        string
		in          SearchInput
		wantPage    int
		wantPerPage int
	}{
		{name: "omitted", in: SearchInput{}, wantPage: 1, wantPerPage: 10},
		{name: "negative", in: SearchInput{Page: -1, PerPage: -5}, wantPage: 1, wantPerPage: 10},
		{name: "given", in: SearchInput{Page: 3, PerPage: 25}, wantPage: 3, wantPerPage: 25},
		{name: "perPage capped", in: SearchInput{Page: 2, PerPage: 5000}, wantPage: 2, wantPerPage: MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSearchParams(tt.in)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortDirection("asc"))
	assert.Equal(t, SortAsc, ParseSortDirection("ASC"))
	assert.Equal(t, SortDesc, ParseSortDirection(" Desc "))
	assert.Equal(t, SortDirection(""), ParseSortDirection(""))
	assert.Equal(t, SortDirection(""), ParseSortDirection("sideways"))
}

func TestSearchParams_Offset(t *testing.T) {
	p := NewSearchParams(SearchInput{Page: 3, PerPage: 5})
	assert.Equal(t, 10, p.Offset())
}

func TestSearchParams_OffsetSaturates(t *testing.T) {
	tests := []SearchInput{
		{Page: math.MaxInt/10 + 2, PerPage: 10},
		{Page: math.MaxInt, PerPage: MaxPerPage},
	}

	for _, in := range tests {
		p := NewSearchParams(in)
		assert.Equal(t, math.MaxInt, p.Offset(), "page=%d perPage=%d", in.Page, in.PerPage)
	}

	assert.Equal(t, 0, SearchParams{}.Offset())
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{total: 0, perPage: 10, want: 1},
		{total: 4, perPage: 10, want: 1},
		{total: 10, perPage: 10, want: 1},
		{total: 11, perPage: 10, want: 2},
		{total: 54, perPage: 10, want: 6},
		{total: 5, perPage: 0, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LastPage(tt.total, tt.perPage), "total=%d perPage=%d", tt.total, tt.perPage)
	}
}

func TestNewSearchResult_EchoesParams(t *testing.T) {
	params := NewSearchParams(SearchInput{Page: 2, PerPage: 2, Sort: "name", SortDir: "asc", Filter: "x"})

	r := NewSearchResult([]string{"a", "b"}, 54, params)

	assert.Equal(t, SearchResult[string]{
		Items:       []string{"a", "b"},
		Total:       54,
		CurrentPage: 2,
		PerPage:     2,
		LastPage:    27,
		Sort:        "name",
		SortDir:     SortAsc,
		Filter:      "x",
	}, r)
}

func TestNewSearchResult_NilItemsBecomeEmpty(t *testing.T) {
	r := NewSearchResult[string](nil, 0, NewSearchParams(SearchInput{}))

	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
	assert.Equal(t, 1, r.LastPage)
}

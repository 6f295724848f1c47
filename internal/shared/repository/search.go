package repository

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	// MaxPerPage を超える perPage は MaxPerPage に切り詰めます。
	MaxPerPage = 100
)

// SortDirection はソート方向です。空文字は未指定を表します。
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection は大文字小文字を区別せずに asc / desc を解釈します。それ以外は未指定になります。
func ParseSortDirection(s string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return ""
	}
}

// SearchInput は検索パラメータの生の入力です。ゼロ値は未指定として扱います。
type SearchInput struct {
	Page    int
	PerPage int
	Sort    string
	SortDir string
	Filter  string
}

// SearchParams は正規化済みの検索パラメータです。
type SearchParams struct {
	Page    int
	PerPage int
	Sort    string
	SortDir SortDirection
	Filter  string
}

// NewSearchParams は入力を正規化します。1未満の page / perPage は既定値に置き換え、
// perPage は MaxPerPage までに制限します。
func NewSearchParams(in SearchInput) SearchParams {
	p := SearchParams{
		Page:    in.Page,
		PerPage: in.PerPage,
		Sort:    strings.TrimSpace(in.Sort),
		SortDir: ParseSortDirection(in.SortDir),
		Filter:  in.Filter,
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	p.PerPage = min(p.PerPage, MaxPerPage)
	return p
}

// Offset はページングの開始位置です。オーバーフローする場合は math.MaxInt を返します。
func (p SearchParams) Offset() int {
	page, perPage := max(p.Page, 1), max(p.PerPage, 1)
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// SearchResult は1ページ分の検索結果です。
// Total はフィルタ適用後・ページング前の件数です。
type SearchResult[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
	LastPage    int
	Sort        string
	SortDir     SortDirection
	Filter      string
}

// NewSearchResult は検索結果を組み立て、LastPage を ceil(total/perPage)（最小1）で算出します。
func NewSearchResult[E any](items []E, total int, params SearchParams) SearchResult[E] {
	if items == nil {
		items = []E{}
	}
	return SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		LastPage:    LastPage(total, params.PerPage),
		Sort:        params.Sort,
		SortDir:     params.SortDir,
		Filter:      params.Filter,
	}
}

// LastPage は総件数とページサイズから最終ページ番号を返します。
func LastPage(total, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		return 1
	}
	return last
}

package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"user_backend/internal/shared/domainerr"
)

// FilterFunc は item が filter に一致するかを判定します。空の filter では呼ばれません。
type FilterFunc[E any] func(item E, filter string) bool

// ContainsFold は指定フィールドの文字列値に filter が大文字小文字を区別せず含まれるかを判定する FilterFunc を返します。
func ContainsFold[E Record[E]](field string) FilterFunc[E] {
	return func(item E, filter string) bool {
		s, ok := item.ToJSON()[field].(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(filter))
	}
}

// Options は InMemoryRepository の検索挙動を設定します。
type Options[E any] struct {
	// Filter が nil の場合は name フィールドの部分一致になります。
	Filter FilterFunc[E]
	// DefaultSort はソートフィールド未指定時に使うフィールドです。空なら並べ替えません。
	DefaultSort string
	// DefaultSortDir は方向未指定時の方向です。空なら昇順です。
	DefaultSortDir SortDirection
}

// InMemoryRepository はスライスをバックエンドにした SearchableRepository 実装です。
// 保存時・取得時にエンティティを複製するため、呼び出し側の変更は Update まで反映されません。
type InMemoryRepository[E Record[E]] struct {
	mu    sync.RWMutex
	items []E
	opts  Options[E]
}

// NewInMemoryRepository は空の InMemoryRepository を生成します。
func NewInMemoryRepository[E Record[E]](opts Options[E]) *InMemoryRepository[E] {
	if opts.Filter == nil {
		opts.Filter = ContainsFold[E]("name")
	}
	return &InMemoryRepository[E]{opts: opts}
}

func (r *InMemoryRepository[E]) Insert(_ context.Context, e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, e.Clone())
	return nil
}

func (r *InMemoryRepository[E]) FindByID(_ context.Context, id string) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, err := r.indexOf(id)
	if err != nil {
		var zero E
		return zero, err
	}
	return r.items[i].Clone(), nil
}

// FindAll は挿入順にすべてのエンティティを返します。
func (r *InMemoryRepository[E]) FindAll(_ context.Context) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.items), nil
}

func (r *InMemoryRepository[E]) Update(_ context.Context, e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.indexOf(e.ID())
	if err != nil {
		return err
	}
	r.items[i] = e.Clone()
	return nil
}

func (r *InMemoryRepository[E]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.indexOf(id)
	if err != nil {
		return err
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// FindFirst は pred を満たす最初のエンティティを返します。
func (r *InMemoryRepository[E]) FindFirst(pred func(E) bool) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if pred(item) {
			return item.Clone(), true
		}
	}
	var zero E
	return zero, false
}

// Search はフィルタ、安定ソート、ページングの順に適用します。
func (r *InMemoryRepository[E]) Search(_ context.Context, params SearchParams) (SearchResult[E], error) {
	r.mu.RLock()
	filtered := r.applyFilter(params.Filter)
	r.mu.RUnlock()

	sorted := r.applySort(filtered, params.Sort, params.SortDir)
	page := paginate(sorted, params.Offset(), params.PerPage)

	return NewSearchResult(cloneAll(page), len(filtered), params), nil
}

func (r *InMemoryRepository[E]) indexOf(id string) (int, error) {
	i := slices.IndexFunc(r.items, func(e E) bool { return e.ID() == id })
	if i < 0 {
		return -1, domainerr.NewNotFound("Entity not found")
	}
	return i, nil
}

func (r *InMemoryRepository[E]) applyFilter(filter string) []E {
	if filter == "" {
		return slices.Clone(r.items)
	}
	out := make([]E, 0, len(r.items))
	for _, item := range r.items {
		if r.opts.Filter(item, filter) {
			out = append(out, item)
		}
	}
	return out
}

func (r *InMemoryRepository[E]) applySort(items []E, field string, dir SortDirection) []E {
	if field == "" {
		field = r.opts.DefaultSort
	}
	if field == "" {
		return items
	}
	if dir == "" {
		dir = r.opts.DefaultSortDir
	}

	keys := make([]any, len(items))
	for i, item := range items {
		v, ok := item.ToJSON()[field]
		if !ok {
			return items
		}
		keys[i] = v
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		c := compareValues(keys[a], keys[b])
		if dir == SortDesc {
			return -c
		}
		return c
	})

	out := make([]E, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

func paginate[E any](items []E, offset, limit int) []E {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func cloneAll[E Record[E]](items []E) []E {
	out := make([]E, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// compareValues は同じ型の値同士を比較します。型が異なる場合や比較できない型は等しいとみなします。
func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

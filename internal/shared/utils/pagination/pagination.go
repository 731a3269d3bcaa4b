package pagination

import "math"

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Params is the normalized page/size pair parsed from query strings.
type Params struct {
	Page int `form:"page" binding:"omitempty,min=1"`
	Size int `form:"size" binding:"omitempty,min=1,max=100"`
}

// Normalize clamps page and size into their valid ranges.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page wraps a result list with its paging metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// NewPage builds a Page with pages = ceil(total/size).
func NewPage[T any](items []T, total int64, params Params) Page[T] {
	pages := 0
	if params.Size > 0 {
		pages = int(math.Ceil(float64(total) / float64(params.Size)))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
		Pages: pages,
	}
}

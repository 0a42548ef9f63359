package domain

import "strings"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// 允许排序的字段：json 名 -> 列名
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
	"city":      "city",
	"country":   "country",
}

type ListQuery struct {
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=10"`
	Search      string `form:"q"`
	Sort        string `form:"sort"`
	Order       string `form:"order"` // asc / desc
	WithDeleted bool   `form:"with_deleted"`
}

// Normalize 兜底分页参数，并返回排序列与方向
func (q ListQuery) Normalize() (ListQuery, string, bool) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxPageLimit {
		q.Limit = DefaultPageLimit
	}
	col, ok := sortColumns[q.Sort]
	if !ok {
		col = "created_at"
	}
	desc := true
	switch strings.ToLower(q.Order) {
	case "asc", "1":
		desc = false
	}
	return q, col, desc
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

// Page 分页结果，字段与 mongoose-paginate 保持一致
type Page[T any] struct {
	Docs          []T   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int   `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

func NewPage[T any](docs []T, total int64, page, limit int) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		pages = 1
	}
	p := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    pages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < pages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

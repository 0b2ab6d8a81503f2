package usecase

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// Page adalah hasil query berhalaman. Page dimulai dari 0.
type Page[T any] struct {
	Results   []T   `json:"results"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	TotalRows int64 `json:"totalRows"`
	TotalPage int   `json:"totalPage"`
}

func NewPage[T any](results []T, page, limit int, total int64) *Page[T] {
	if results == nil {
		results = []T{}
	}
	totalPage := 0
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Page[T]{Results: results, Page: page, Limit: limit, TotalRows: total, TotalPage: totalPage}
}

func normalizePage(page, limit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

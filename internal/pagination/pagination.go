package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
}

// Paginate returns the 1-based page of items. Pages past the end are empty.
// page and limit must be at least 1.
func Paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		return p
	}
	end := min(start+limit, total)
	p.Items = items[start:end]
	return p
}

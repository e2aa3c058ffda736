package query

// Pagination bounds and defaults, shared by every paginated operation.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Page carries pagination metadata for a single result page.
type Page struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate slices items for the requested page.
//
// TotalPages is ceil(N/pageSize), 0 for an empty list. The requested page is
// clamped into [1, max(TotalPages, 1)], so concatenating pages 1..TotalPages
// reproduces the input exactly once.
func Paginate[T any](items []T, page, pageSize int) ([]T, Page) {
	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], Page{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// NormalizePage clamps a page number to the minimum of 1, defaulting to 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizePageSize clamps a page size into [1, MaxPageSize], defaulting to
// DefaultPageSize when unset.
func NormalizePageSize(size int) int {
	if size == 0 {
		return DefaultPageSize
	}
	if size < 1 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

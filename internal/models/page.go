package models

// Page is the paginated envelope returned by collection queries.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	From        int `json:"from"`
	To          int `json:"to"`
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
}

// HasMore reports whether pages after this one exist.
func (p Page[T]) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

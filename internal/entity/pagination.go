package entity

// Pagination mirrors the list-response metadata block.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPagination computes totalPages as ceiling division of totalItems by limit.
func NewPagination(page, limit, totalItems int) Pagination {
	totalPages := (totalItems + limit - 1) / limit
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
	}
}

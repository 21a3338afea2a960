package model

// PageMeta describes the pagination window of a backend listing response.
type PageMeta struct {
	Total        int  `json:"total"`
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// NewPageMeta derives consistent pagination metadata for a listing of
// total items viewed at the given page and page size.
func NewPageMeta(total, currentPage, itemsPerPage int) PageMeta {
	totalPages := 0
	if itemsPerPage > 0 {
		totalPages = (total + itemsPerPage - 1) / itemsPerPage
	}

	return PageMeta{
		Total:        total,
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		HasNextPage:  currentPage*itemsPerPage < total,
		HasPrevPage:  currentPage > 1,
	}
}

// ProductPage is one page of products plus its pagination metadata.
type ProductPage struct {
	Products []Product `json:"data"`
	Meta     PageMeta  `json:"meta"`
}

// OrderPage is one page of orders plus its pagination metadata.
type OrderPage struct {
	Orders []Order  `json:"data"`
	Meta   PageMeta `json:"meta"`
}

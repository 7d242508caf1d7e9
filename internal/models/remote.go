package models

// Customer is owned by the customer service. It is fetched by id during
// aggregation reads and never persisted here.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product is owned by the inventory service. It is fetched by id during
// aggregation reads and never persisted here.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductPage is one page of the inventory service's product listing.
type ProductPage struct {
	Content []Product `json:"content"`
	Page    PageInfo  `json:"page"`
}

// PageInfo carries the paging metadata returned alongside a listing.
type PageInfo struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

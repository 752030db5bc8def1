package models

// Product is a search result once it has been adapted from the upstream shape.
type Product struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageUrl    string  `json:"imageUrl"`
}

// RawProduct is a single entry of the upstream result-items array. Every field
// is optional upstream, absence is kept as nil.
type RawProduct struct {
	Id          *int64   `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}

type ProductView struct {
	Product
	PriceFormatted string `json:"price_formatted"`
}

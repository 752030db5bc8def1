package models

import "time"

type CartItem struct {
	Product
	AddedAt time.Time `json:"addedAt"`
}

type CartItemView struct {
	CartItem
	PriceFormatted string `json:"price_formatted"`
}

type CartView struct {
	Items          []CartItemView `json:"items"`
	Count          int            `json:"count"`
	Total          string         `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
	IsOpen         bool           `json:"is_open"`
}

type AddToCartRequest struct {
	Id int64 `json:"id"`
}

type EmailCartRequest struct {
	Email string `json:"email"`
}

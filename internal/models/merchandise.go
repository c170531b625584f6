package models

import "time"

type MerchandiseItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MerchandiseSelection is a line item on a reservation.
type MerchandiseSelection struct {
	ItemID   int `json:"item_id" validate:"required"`
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CreateMerchandiseItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gte=0"`
	ImageURL  string  `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

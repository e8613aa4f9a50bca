package order

import (
	"time"

	"github.com/simrandung/Ecommerce-API/internal/catalog"
)

// Item is the snapshot of one cart line taken at placement time.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID         string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Products   []Item    `json:"products"`
	TotalPrice float64   `json:"totalPrice"`
	OrderDate  time.Time `json:"orderDate"`
}

// ResolvedItem carries the full product record for the detail view.
type ResolvedItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Detail is an order with its product references resolved.
type Detail struct {
	ID         string         `json:"orderId"`
	UserID     string         `json:"userId"`
	Products   []ResolvedItem `json:"products"`
	TotalPrice float64        `json:"totalPrice"`
	OrderDate  time.Time      `json:"orderDate"`
}

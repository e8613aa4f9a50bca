package events

import (
	"time"

	"github.com/simrandung/Ecommerce-API/internal/order"
)

// OrderPlaced is the message other processes consume when an order lands.
type OrderPlaced struct {
	EventType  string       `json:"eventType"`
	OrderID    string       `json:"orderId"`
	UserID     string       `json:"userId"`
	Products   []order.Item `json:"products"`
	TotalPrice float64      `json:"totalPrice"`
	Timestamp  time.Time    `json:"timestamp"`
}

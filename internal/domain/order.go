package domain

import "time"

// OrderItem is one position of an order. Price is the café's catalog
// price copied in at order-creation time; later catalog changes never
// touch it.
type OrderItem struct {
	CafeID   int64   `json:"cafe_id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is immutable once created: it can only be fetched or deleted.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CalculateTotal recomputes Total from the items. It is the only way
// Total is ever set.
func (o *Order) CalculateTotal() {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	o.Total = total
}

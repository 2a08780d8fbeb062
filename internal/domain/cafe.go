package domain

import "strings"

// Cafe is a single catalog item: something a customer can order.
type Cafe struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Validate checks the fields a catalog entry must carry before it is stored.
func (c *Cafe) Validate() error {
	if c == nil {
		return ErrNilEntity
	}
	if strings.TrimSpace(c.Name) == "" {
		return fieldRequired("name")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fieldRequired("description")
	}
	if c.Price <= 0 {
		return fieldPositive("price")
	}
	return nil
}

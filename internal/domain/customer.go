package domain

import "strings"

// Customer is somebody who places orders.
// Email uniqueness is not enforced by the stores; callers that need it
// have to check before creating.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrNilEntity
	}
	if strings.TrimSpace(c.Name) == "" {
		return fieldRequired("name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return fieldRequired("email")
	}
	return nil
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCafeValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cafe    *Cafe
		wantErr error
	}{
		{
			name: "valid",
			cafe: &Cafe{Name: "espresso", Description: "short and strong", Price: 2.5},
		},
		{
			name:    "nil",
			cafe:    nil,
			wantErr: ErrNilEntity,
		},
		{
			name:    "empty name",
			cafe:    &Cafe{Name: "   ", Description: "x", Price: 1},
			wantErr: ErrValidation,
		},
		{
			name:    "empty description",
			cafe:    &Cafe{Name: "espresso", Description: "", Price: 1},
			wantErr: ErrValidation,
		},
		{
			name:    "zero price",
			cafe:    &Cafe{Name: "espresso", Description: "x", Price: 0},
			wantErr: ErrValidation,
		},
		{
			name:    "negative price",
			cafe:    &Cafe{Name: "espresso", Description: "x", Price: -1},
			wantErr: ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cafe.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCustomerValidate(t *testing.T) {
	testCases := []struct {
		name     string
		customer *Customer
		wantErr  error
	}{
		{
			name:     "valid",
			customer: &Customer{Name: "Alice", Email: "alice@example.com"},
		},
		{
			name:     "nil",
			customer: nil,
			wantErr:  ErrNilEntity,
		},
		{
			name:     "empty name",
			customer: &Customer{Name: "", Email: "alice@example.com"},
			wantErr:  ErrValidation,
		},
		{
			name:     "whitespace email",
			customer: &Customer{Name: "Alice", Email: "  "},
			wantErr:  ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.customer.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderCalculateTotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{CafeID: 1, Price: 2.5, Quantity: 2},
			{CafeID: 2, Price: 3.0, Quantity: 1},
		},
	}
	order.CalculateTotal()
	require.InDelta(t, 8.0, order.Total, 1e-9)

	order.Items = nil
	order.CalculateTotal()
	require.Zero(t, order.Total)
}

// Package view implements the per-screen state of the storefront client:
// loading/error/data per view, populated from the backend clients. Views are
// the only writers of their own state; rendering reads it through accessors.
package view

import (
	"context"

	"github.com/ordernest/storefront/internal/domain/order"
	"github.com/ordernest/storefront/internal/domain/product"
	"github.com/ordernest/storefront/internal/domain/user"
)

// Inventory is the slice of the inventory backend the views consume.
type Inventory interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
}

// Orders is the slice of the order backend the views consume.
type Orders interface {
	CreateOrder(ctx context.Context, productID string, quantity int) (string, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// Payments is the slice of the payment backend the views consume.
type Payments interface {
	Process(ctx context.Context, orderID string) error
}

// Identity is the slice of the auth backend the views consume.
type Identity interface {
	Me(ctx context.Context) (*user.Profile, error)
}

// staleness is the per-view staleness token. Every load (and teardown) takes
// the next generation; a completion whose generation is no longer current is
// discarded instead of committed, so a response for an abandoned identifier
// can never overwrite state the view has since moved past.
type staleness struct {
	gen uint64
}

func (s *staleness) next() uint64 {
	s.gen++
	return s.gen
}

func (s *staleness) current(gen uint64) bool {
	return s.gen == gen
}

package view

import (
	"context"
	"sync"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/product"
)

// ProductsView is the catalog screen: the fetched product list plus a local,
// case-insensitive search filter that never re-fetches.
type ProductsView struct {
	inventory Inventory
	guard     *Guard

	mu       sync.Mutex
	stale    staleness
	loading  bool
	errMsg   string
	products []product.Product
	query    string
}

// NewProductsView creates a ProductsView.
func NewProductsView(inventory Inventory, guard *Guard) *ProductsView {
	return &ProductsView{inventory: inventory, guard: guard}
}

// Load fetches the catalog. An unauthorized response tears the session down
// via the guard; any other failure becomes an inline error message.
func (v *ProductsView) Load(ctx context.Context) {
	v.mu.Lock()
	gen := v.stale.next()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	list, err := v.inventory.ListProducts(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.stale.current(gen) {
		return
	}
	v.loading = false

	if err != nil {
		if v.guard.Expire(err) {
			v.products = nil
			return
		}
		v.errMsg = backend.Reason(err, "Unable to load products.")
		return
	}
	v.products = list
}

// Teardown abandons any in-flight load; a late response will be discarded.
func (v *ProductsView) Teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stale.next()
}

// SetQuery updates the local filter query.
func (v *ProductsView) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
}

// Visible returns the products matching the current filter, recomputed from
// the full fetched list.
func (v *ProductsView) Visible() []product.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return product.Filter(v.products, v.query)
}

// Loading reports whether a load is in flight.
func (v *ProductsView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the inline error message, empty when the last load succeeded.
func (v *ProductsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

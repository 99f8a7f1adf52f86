package view

import (
	"context"
	"sync"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/product"
)

// ProductDetailView is the single-product screen: the fetched product, a
// desired quantity clamped to the available stock, and the purchase action.
type ProductDetailView struct {
	inventory Inventory
	orders    Orders
	guard     *Guard

	mu       sync.Mutex
	stale    staleness
	id       string
	loading  bool
	errMsg   string
	product  *product.Product
	quantity int
	buying   bool
	buyErr   string
}

// NewProductDetailView creates a ProductDetailView.
func NewProductDetailView(inventory Inventory, orders Orders, guard *Guard) *ProductDetailView {
	return &ProductDetailView{inventory: inventory, orders: orders, guard: guard, quantity: 1}
}

// Load fetches the product with the given ID. Starting a load for a new
// identifier abandons any response still in flight for the previous one.
func (v *ProductDetailView) Load(ctx context.Context, id string) {
	v.mu.Lock()
	gen := v.stale.next()
	v.id = id
	v.loading = true
	v.errMsg = ""
	v.buying = false
	v.buyErr = ""
	v.product = nil
	v.mu.Unlock()

	p, err := v.inventory.GetProduct(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.stale.current(gen) {
		return
	}
	v.loading = false

	if err != nil {
		if v.guard.Expire(err) {
			return
		}
		v.errMsg = backend.Reason(err, "Unable to load product details. Please try again.")
		return
	}
	v.product = p
	v.quantity = 1
}

// Teardown abandons any in-flight load.
func (v *ProductDetailView) Teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stale.next()
}

// SetQuantity sets the desired purchase quantity, floored and clamped to
// [1, availableQuantity]. Out-of-stock products pin the quantity at 1.
func (v *ProductDetailView) SetQuantity(requested float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	available := 0
	if v.product != nil {
		available = v.product.AvailableQuantity
	}
	v.quantity = product.ClampQuantity(requested, available)
	v.buyErr = ""
}

// Quantity returns the current desired quantity.
func (v *ProductDetailView) Quantity() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.quantity
}

// CanBuy reports whether the purchase action is currently enabled.
func (v *ProductDetailView) CanBuy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canBuy()
}

func (v *ProductDetailView) canBuy() bool {
	return v.product != nil && v.product.InStock() && !v.loading && !v.buying
}

// Buy places an order for the loaded product at the current quantity and
// returns the created order's ID for navigation. ok is false when the action
// is disabled or the order could not be placed; the failure reason, if any,
// is available via BuyErr.
func (v *ProductDetailView) Buy(ctx context.Context) (orderID string, ok bool) {
	v.mu.Lock()
	if !v.canBuy() {
		v.mu.Unlock()
		return "", false
	}
	gen := v.stale.gen
	v.buying = true
	v.buyErr = ""
	productID := v.product.ID
	quantity := v.quantity
	v.mu.Unlock()

	orderID, err := v.orders.CreateOrder(ctx, productID, quantity)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.stale.current(gen) {
		return "", false
	}
	v.buying = false

	if err != nil {
		if v.guard.Expire(err) {
			return "", false
		}
		v.buyErr = backend.Reason(err, "Unable to place order. Please try again.")
		return "", false
	}
	return orderID, true
}

// Product returns the loaded product, or nil while loading or after a
// failure.
func (v *ProductDetailView) Product() *product.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.product
}

// Swatch returns the placeholder color for the loaded product, derived from
// its ID (falling back to the requested ID before the load resolves).
func (v *ProductDetailView) Swatch() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	value := v.id
	if v.product != nil {
		value = v.product.ID
	}
	return product.Swatch(value)
}

// Loading reports whether a load is in flight.
func (v *ProductDetailView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the inline load error, empty on success.
func (v *ProductDetailView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// BuyErr returns the inline purchase error, empty when no purchase failed.
func (v *ProductDetailView) BuyErr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buyErr
}

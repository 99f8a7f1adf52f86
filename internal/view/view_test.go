package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/order"
	"github.com/ordernest/storefront/internal/domain/product"
	"github.com/ordernest/storefront/internal/domain/user"
	"github.com/ordernest/storefront/internal/session"
)

// redirectSpy records login-view redirects issued by the guard.
type redirectSpy struct {
	calls int
}

func (r *redirectSpy) redirect() { r.calls++ }

func newTestGuard(t *testing.T) (*Guard, *session.Store, *redirectSpy) {
	t.Helper()
	store := session.NewStore(session.NewMemStorage())
	require.NoError(t, store.SetToken("tok"))

	spy := &redirectSpy{}
	return NewGuard(store, zap.NewNop(), spy.redirect), store, spy
}

func unauthorized() error {
	return &backend.APIError{StatusCode: 401, Message: "expired"}
}

// --- Mock clients ---

type mockInventory struct {
	products   []product.Product
	byID       map[string]*product.Product
	listErr    error
	getErr     error
	listCalls  int
	getCalls   int
	listGate   chan struct{} // when set, the first List call blocks on it
	listOpened chan struct{} // closed when the gated call has started
}

func (m *mockInventory) ListProducts(context.Context) ([]product.Product, error) {
	m.listCalls++
	list := m.products
	if m.listGate != nil && m.listCalls == 1 {
		close(m.listOpened)
		<-m.listGate
	}
	return list, m.listErr
}

func (m *mockInventory) GetProduct(_ context.Context, id string) (*product.Product, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, &backend.APIError{StatusCode: 404, Message: "Product not found"}
	}
	return p, nil
}

type mockOrders struct {
	createID   string
	createErr  error
	orders     map[string]*order.Order
	getErr     error
	createdFor string
	createdQty int
	getCalls   int

	// onGet, when set, is invoked before each GetOrder and may mutate the
	// stored orders to simulate server-side progress between polls.
	onGet func(calls int)
}

func (m *mockOrders) CreateOrder(_ context.Context, productID string, quantity int) (string, error) {
	m.createdFor = productID
	m.createdQty = quantity
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.createID, nil
}

func (m *mockOrders) GetOrder(_ context.Context, id string) (*order.Order, error) {
	m.getCalls++
	if m.onGet != nil {
		m.onGet(m.getCalls)
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, &backend.APIError{StatusCode: 404, Message: "Order not found"}
	}
	cp := *o
	return &cp, nil
}

type mockPayments struct {
	err   error
	calls int
	last  string
}

func (m *mockPayments) Process(_ context.Context, orderID string) error {
	m.calls++
	m.last = orderID
	return m.err
}

type mockIdentity struct {
	profile *user.Profile
	err     error
}

func (m *mockIdentity) Me(context.Context) (*user.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func pendingOrder(id string) *order.Order {
	return &order.Order{
		ID: id,
		Item: order.Item{
			ProductID:   "p1",
			ProductName: "Red Mug",
			Quantity:    2,
			Currency:    "INR",
		},
		Status:        order.StatusCreated,
		PaymentStatus: order.PaymentPending,
	}
}

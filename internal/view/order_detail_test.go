package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/order"
	"github.com/ordernest/storefront/internal/domain/user"
)

func orderFixtures() (*mockOrders, *mockIdentity, *mockPayments) {
	orders := &mockOrders{orders: map[string]*order.Order{
		"ord-1": pendingOrder("ord-1"),
	}}
	identity := &mockIdentity{profile: &user.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}}
	return orders, identity, &mockPayments{}
}

func TestOrderDetailLoad(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	v := NewOrderDetailView(orders, identity, payments, guard)

	v.Load(context.Background(), "ord-1")

	require.NotNil(t, v.Order())
	assert.Equal(t, "ord-1", v.Order().ID)
	require.NotNil(t, v.Profile())
	assert.Equal(t, "Ada Lovelace", v.Profile().FullName())
	assert.Equal(t, order.PaymentPending, v.PaymentStatus())
	assert.Empty(t, v.Err())
	assert.Empty(t, v.ProfileErr())
	assert.True(t, v.CanPay())
}

func TestOrderDetailProfileFailureDegrades(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	identity.err = &backend.APIError{StatusCode: 500}
	v := NewOrderDetailView(orders, identity, payments, guard)

	v.Load(context.Background(), "ord-1")

	// The order section renders; only the buyer section degrades.
	require.NotNil(t, v.Order())
	assert.Nil(t, v.Profile())
	assert.Equal(t, "Unable to load user details.", v.ProfileErr())
	assert.Empty(t, v.Err())
	assert.True(t, v.CanPay())
}

func TestOrderDetailOrderFailureBlocks(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	orders.getErr = &backend.APIError{StatusCode: 500}
	v := NewOrderDetailView(orders, identity, payments, guard)

	v.Load(context.Background(), "ord-1")

	assert.Nil(t, v.Order())
	assert.Equal(t, "Unable to load order details.", v.Err())
	assert.False(t, v.CanPay())
}

func TestOrderDetailLoadUnauthorized(t *testing.T) {
	guard, store, spy := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	orders.getErr = unauthorized()
	v := NewOrderDetailView(orders, identity, payments, guard)

	v.Load(context.Background(), "ord-1")

	assert.Equal(t, 1, spy.calls)
	assert.False(t, store.Authenticated())
	assert.Nil(t, v.Order())
	assert.Empty(t, v.Err())
}

func TestOrderDetailPayNow(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	v.PayNow(context.Background())

	assert.Equal(t, 1, payments.calls)
	assert.Equal(t, "ord-1", payments.last)
	assert.True(t, v.PaymentInitiated())
	assert.False(t, v.CanPay(), "initiated payment disables the action")
	assert.Equal(t, order.PaymentPending, v.PaymentStatus(), "status stays server-confirmed")

	// Gated: a second invocation must not double-post.
	v.PayNow(context.Background())
	assert.Equal(t, 1, payments.calls)
}

func TestOrderDetailRefreshReconcilesInitiated(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")
	v.PayNow(context.Background())

	// Server still reports PENDING: the optimistic flag survives the refresh.
	v.Refresh(context.Background())
	assert.True(t, v.PaymentInitiated())
	assert.False(t, v.CanPay())

	// Server settles: the optimistic flag clears with the confirmed status.
	orders.orders["ord-1"].PaymentStatus = order.PaymentPaid
	v.Refresh(context.Background())
	assert.False(t, v.PaymentInitiated())
	assert.Equal(t, order.PaymentPaid, v.PaymentStatus())
	assert.False(t, v.CanPay())
}

func TestOrderDetailPayNowFailure(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	payments.err = &backend.APIError{StatusCode: 502, Message: "Gateway unavailable"}
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	v.PayNow(context.Background())

	assert.Equal(t, "Gateway unavailable", v.PayErr())
	assert.False(t, v.PaymentInitiated())
	assert.True(t, v.CanPay(), "a failed payment re-enables the action")

	// Refresh clears the stale payment error before re-fetching.
	v.Refresh(context.Background())
	assert.Empty(t, v.PayErr())
}

func TestOrderDetailPayNowUnauthorized(t *testing.T) {
	guard, store, spy := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	payments.err = unauthorized()
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	v.PayNow(context.Background())

	assert.Equal(t, 1, spy.calls)
	assert.False(t, store.Authenticated())
	assert.Empty(t, v.PayErr())
}

func TestOrderDetailIDChangeResetsPaymentState(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	orders.orders["ord-2"] = pendingOrder("ord-2")
	v := NewOrderDetailView(orders, identity, payments, guard)

	v.Load(context.Background(), "ord-1")
	v.PayNow(context.Background())
	require.True(t, v.PaymentInitiated())

	// The optimistic flag belongs to ord-1; ord-2 starts clean.
	v.Load(context.Background(), "ord-2")
	assert.False(t, v.PaymentInitiated())
	assert.True(t, v.CanPay())
}

func TestOrderDetailWatchUntilSettled(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	orders.onGet = func(calls int) {
		// The first poll still sees PENDING; the second sees the settlement.
		if calls >= 3 {
			orders.orders["ord-1"].PaymentStatus = order.PaymentPaid
		}
	}
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	got := v.Watch(context.Background(), time.Millisecond)

	assert.Equal(t, order.PaymentPaid, got)
	assert.Equal(t, order.PaymentPaid, v.PaymentStatus())
}

func TestOrderDetailWatchSettledImmediately(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	orders.orders["ord-1"].PaymentStatus = order.PaymentPaid
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	got := v.Watch(context.Background(), time.Hour)

	assert.Equal(t, order.PaymentPaid, got, "settled status returns without polling")
	assert.Equal(t, 1, orders.getCalls)
}

func TestOrderDetailWatchStopsOnSessionExpiry(t *testing.T) {
	guard, store, spy := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")
	require.Equal(t, order.PaymentPending, v.PaymentStatus())

	// The token expires between the load and the first poll.
	orders.getErr = unauthorized()

	got := v.Watch(context.Background(), time.Millisecond)

	assert.Equal(t, order.PaymentUnknown, got)
	assert.Nil(t, v.Order())
	assert.False(t, store.Authenticated())
	assert.Equal(t, 1, spy.calls, "teardown must redirect exactly once")
	assert.Equal(t, 2, orders.getCalls, "polling must stop after the teardown")
}

func TestOrderDetailWatchStopsOnContext(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	orders, identity, payments := orderFixtures()
	v := NewOrderDetailView(orders, identity, payments, guard)
	v.Load(context.Background(), "ord-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := v.Watch(ctx, time.Hour)
	assert.Equal(t, order.PaymentPending, got)
}

package view

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/domain/order"
	"github.com/ordernest/storefront/internal/domain/user"
)

// OrderDetailView is the order tracking screen: the fetched order, the
// buyer's profile (best effort), and the payment action with its optimistic
// initiated state.
type OrderDetailView struct {
	orders   Orders
	identity Identity
	payments Payments
	guard    *Guard

	mu         sync.Mutex
	stale      staleness
	id         string
	loading    bool
	refreshing bool
	errMsg     string
	order      *order.Order
	payment    order.PaymentView
	profile    *user.Profile
	profileErr string
	paying     bool
	payErr     string
}

// NewOrderDetailView creates an OrderDetailView.
func NewOrderDetailView(orders Orders, identity Identity, payments Payments, guard *Guard) *OrderDetailView {
	return &OrderDetailView{orders: orders, identity: identity, payments: payments, guard: guard}
}

// Load fetches the order and the current user's profile concurrently. The
// view fails only when the order fetch fails; a profile failure degrades the
// buyer section alone. Loading a different order ID resets the payment view
// state, since the optimistic flag belongs to a single order.
func (v *OrderDetailView) Load(ctx context.Context, id string) {
	v.mu.Lock()
	gen := v.stale.next()
	if id != v.id {
		v.order = nil
		v.profile = nil
		v.payment = order.PaymentView{}
		v.payErr = ""
	}
	v.id = id
	v.loading = true
	v.paying = false
	v.errMsg = ""
	v.profileErr = ""
	v.mu.Unlock()

	var (
		fetched    *order.Order
		orderErr   error
		profile    *user.Profile
		profileErr error
	)

	// Plain errgroup, no shared cancellation: the profile failing must not
	// abort the order fetch, and vice versa.
	var g errgroup.Group
	g.Go(func() error {
		fetched, orderErr = v.orders.GetOrder(ctx, id)
		return nil
	})
	g.Go(func() error {
		profile, profileErr = v.identity.Me(ctx)
		return nil
	})
	_ = g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.stale.current(gen) {
		return
	}
	v.loading = false
	v.refreshing = false

	if orderErr != nil {
		if v.guard.Expire(orderErr) {
			v.order = nil
			v.profile = nil
			v.payment = order.PaymentView{}
			return
		}
		v.errMsg = backend.Reason(orderErr, "Unable to load order details.")
		return
	}

	v.order = fetched
	v.payment.Confirm(fetched.PaymentStatus)

	if profileErr != nil {
		v.profile = nil
		v.profileErr = backend.Reason(profileErr, "Unable to load user details.")
	} else {
		v.profile = profile
	}
}

// Refresh re-runs the order and profile fetch for the current order,
// clearing any stale payment error first. The optimistic initiated flag is
// reconciled during commit: it survives only while the server still reports
// PENDING.
func (v *OrderDetailView) Refresh(ctx context.Context) {
	v.mu.Lock()
	if v.refreshing || v.id == "" {
		v.mu.Unlock()
		return
	}
	v.refreshing = true
	v.payErr = ""
	id := v.id
	v.mu.Unlock()

	v.Load(ctx, id)
}

// Watch polls the order on the given interval until the payment status
// settles (anything but PENDING), the order fetch fails, or ctx is done.
// It returns the last effective payment status.
func (v *OrderDetailView) Watch(ctx context.Context, interval time.Duration) order.PaymentStatus {
	if s := v.PaymentStatus(); s != order.PaymentPending && s != order.PaymentUnknown {
		return s
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return v.PaymentStatus()
		case <-ticker.C:
			v.Refresh(ctx)
			// A failed refresh ends the watch. That includes a session
			// teardown, which clears the order without an inline error.
			if v.Err() != "" || v.Order() == nil {
				return v.PaymentStatus()
			}
			if s := v.PaymentStatus(); s != order.PaymentPending && s != order.PaymentUnknown {
				return s
			}
		}
	}
}

// Teardown abandons any in-flight load.
func (v *OrderDetailView) Teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stale.next()
}

// CanPay reports whether the payment action is enabled: the order is loaded,
// the server-confirmed payment status is PENDING, and no payment is in
// flight or already acknowledged.
func (v *OrderDetailView) CanPay() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canPay()
}

func (v *OrderDetailView) canPay() bool {
	return v.order != nil && !v.loading && !v.paying && v.payment.Payable()
}

// PayNow posts the payment request for the loaded order. On success the
// order is marked as having an initiated payment, a transient optimistic
// flag that the next refresh reconciles against the server.
func (v *OrderDetailView) PayNow(ctx context.Context) {
	v.mu.Lock()
	if !v.canPay() {
		v.mu.Unlock()
		return
	}
	gen := v.stale.gen
	v.paying = true
	v.payErr = ""
	orderID := v.order.ID
	v.mu.Unlock()

	err := v.payments.Process(ctx, orderID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.stale.current(gen) {
		return
	}
	v.paying = false

	if err != nil {
		if v.guard.Expire(err) {
			return
		}
		v.payErr = backend.Reason(err, "Unable to initiate payment. Please try again.")
		return
	}
	v.payment.MarkInitiated()
}

// Order returns the loaded order, or nil while loading or after a failure.
func (v *OrderDetailView) Order() *order.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.order
}

// Profile returns the buyer profile, or nil when it failed to load.
func (v *OrderDetailView) Profile() *user.Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profile
}

// ProfileErr returns the degraded-profile message, empty when the profile
// loaded.
func (v *OrderDetailView) ProfileErr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profileErr
}

// PaymentStatus returns the payment status to display: the freshest
// server-confirmed status, or UNKNOWN before the first fetch resolves.
func (v *OrderDetailView) PaymentStatus() order.PaymentStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.payment.Effective()
}

// PaymentInitiated reports whether a locally initiated payment is awaiting
// server confirmation.
func (v *OrderDetailView) PaymentInitiated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.payment.Initiated()
}

// PayErr returns the inline payment error, empty when no payment failed.
func (v *OrderDetailView) PayErr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.payErr
}

// Loading reports whether a load is in flight.
func (v *OrderDetailView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the inline order load error, empty on success.
func (v *OrderDetailView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

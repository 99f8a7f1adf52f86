package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordernest/storefront/internal/domain/product"
)

func TestProductsViewLoad(t *testing.T) {
	guard, _, spy := newTestGuard(t)
	inv := &mockInventory{products: []product.Product{
		{ID: "p1", Name: "Red Mug", Currency: "INR", AvailableQuantity: 5},
		{ID: "p2", Name: "Blue Cup", Currency: "USD", AvailableQuantity: 0},
	}}
	v := NewProductsView(inv, guard)

	v.Load(context.Background())

	assert.False(t, v.Loading())
	assert.Empty(t, v.Err())
	assert.Len(t, v.Visible(), 2)
	assert.Zero(t, spy.calls)
}

func TestProductsViewLoadError(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	inv := &mockInventory{listErr: errors.New("connection refused")}
	v := NewProductsView(inv, guard)

	v.Load(context.Background())

	assert.False(t, v.Loading())
	assert.Equal(t, "Unable to load products.", v.Err())
	assert.Empty(t, v.Visible())
}

func TestProductsViewLoadUnauthorized(t *testing.T) {
	guard, store, spy := newTestGuard(t)
	inv := &mockInventory{listErr: unauthorized()}
	v := NewProductsView(inv, guard)

	v.Load(context.Background())

	assert.Equal(t, 1, spy.calls, "must redirect to login")
	assert.False(t, store.Authenticated(), "credential must be cleared")
	assert.Empty(t, v.Err(), "no inline error on session expiry")
	assert.Empty(t, v.Visible())
}

func TestProductsViewFilter(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	inv := &mockInventory{products: []product.Product{
		{ID: "p1", Name: "Red Mug", Description: "Ceramic", Currency: "INR"},
		{ID: "p2", Name: "Blue Cup", Description: "Glass", Currency: "USD"},
	}}
	v := NewProductsView(inv, guard)
	v.Load(context.Background())

	v.SetQuery("mug")
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "p1", v.Visible()[0].ID)

	// Matches description and currency too.
	v.SetQuery("glass")
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "p2", v.Visible()[0].ID)

	v.SetQuery("usd")
	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "p2", v.Visible()[0].ID)

	// Clearing the query restores the full list without a re-fetch.
	v.SetQuery("")
	assert.Len(t, v.Visible(), 2)
	assert.Equal(t, 1, inv.listCalls)
}

func TestProductsViewStaleLoadDiscarded(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	inv := &mockInventory{
		products:   []product.Product{{ID: "stale", Name: "Old"}},
		listGate:   make(chan struct{}),
		listOpened: make(chan struct{}),
	}
	v := NewProductsView(inv, guard)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Load(context.Background())
	}()
	<-inv.listOpened

	// A second load supersedes the gated one before it completes.
	inv.products = []product.Product{{ID: "fresh", Name: "New"}}
	v.Load(context.Background())
	close(inv.listGate)
	<-done

	require.Len(t, v.Visible(), 1)
	assert.Equal(t, "fresh", v.Visible()[0].ID, "superseded response must not commit")
	assert.False(t, v.Loading())
}

func TestProductsViewTeardownDiscardsInFlight(t *testing.T) {
	guard, _, _ := newTestGuard(t)
	inv := &mockInventory{
		products:   []product.Product{{ID: "late", Name: "Late"}},
		listGate:   make(chan struct{}),
		listOpened: make(chan struct{}),
	}
	v := NewProductsView(inv, guard)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Load(context.Background())
	}()
	<-inv.listOpened

	v.Teardown()
	close(inv.listGate)
	<-done

	assert.Empty(t, v.Visible(), "response after teardown must be dropped")
}

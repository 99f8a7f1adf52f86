package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordernest/storefront/internal/domain/order"
)

func TestOrderClient_CreateOrder(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"orderId":"ord-42"}`))
	}))
	defer srv.Close()

	oc := NewOrderClient(New(srv.URL, srv.Client()))
	orderID, err := oc.CreateOrder(context.Background(), "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, "ord-42", orderID)

	var req struct {
		Item struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(got, &req))
	assert.Equal(t, "p1", req.Item.ProductID)
	assert.Equal(t, 2, req.Item.Quantity)
}

func TestOrderClient_CreateOrder_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	oc := NewOrderClient(New(srv.URL, srv.Client()))
	_, err := oc.CreateOrder(context.Background(), "p1", 1)
	require.ErrorContains(t, err, "missing orderId")
}

func TestOrderClient_GetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/ord-42", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"orderId":"ord-42",
			"item":{"productId":"p1","productName":"Red Mug","quantity":2,"totalAmount":499,"currency":"INR"},
			"status":"CREATED",
			"paymentStatus":"PENDING",
			"createdAt":"2026-08-27T10:15:00Z"
		}`))
	}))
	defer srv.Close()

	oc := NewOrderClient(New(srv.URL, srv.Client()))
	o, err := oc.GetOrder(context.Background(), "ord-42")
	require.NoError(t, err)
	assert.Equal(t, "ord-42", o.ID)
	assert.Equal(t, order.StatusCreated, o.Status)
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)
	assert.Equal(t, 2, o.Item.Quantity)
}

func TestPaymentClient_Process(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/payments/process", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pc := NewPaymentClient(New(srv.URL, srv.Client()))
	require.NoError(t, pc.Process(context.Background(), "ord-42"))
	assert.Equal(t, map[string]string{"orderId": "ord-42"}, got)
}

func TestPaymentClient_Process_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"session expired"}`))
	}))
	defer srv.Close()

	pc := NewPaymentClient(New(srv.URL, srv.Client()))
	err := pc.Process(context.Background(), "ord-42")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

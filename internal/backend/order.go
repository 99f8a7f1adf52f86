package backend

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ordernest/storefront/internal/domain/order"
)

// OrderClient talks to the order backend.
type OrderClient struct {
	c *Client
}

// NewOrderClient creates an OrderClient over the shared client core.
func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// CreateOrder places a single-item order and returns the new order's ID.
func (o *OrderClient) CreateOrder(ctx context.Context, productID string, quantity int) (string, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("item")
	e.ObjStart()
	e.FieldStart("productId")
	e.Str(productID)
	e.FieldStart("quantity")
	e.Int(quantity)
	e.ObjEnd()
	e.ObjEnd()

	body, err := o.c.post(ctx, "/api/orders", e.Bytes())
	if err != nil {
		return "", errors.Wrap(err, "create order")
	}

	var orderID string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "orderId" {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		orderID = v
		return nil
	}); err != nil {
		return "", errors.Wrap(err, "decode create order response")
	}
	if orderID == "" {
		return "", errors.New("missing orderId in create order response")
	}
	return orderID, nil
}

// GetOrder fetches an order by ID.
func (o *OrderClient) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	body, err := o.c.get(ctx, "/api/orders/"+url.PathEscape(id))
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}

	ord, err := order.Decode(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrap(err, "decode order")
	}
	return &ord, nil
}

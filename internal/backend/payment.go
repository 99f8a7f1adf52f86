package backend

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// PaymentClient talks to the payment backend.
type PaymentClient struct {
	c *Client
}

// NewPaymentClient creates a PaymentClient over the shared client core.
func NewPaymentClient(c *Client) *PaymentClient {
	return &PaymentClient{c: c}
}

// Process asks the payment backend to start processing the given order. The
// call is fire-and-acknowledge: the resulting payment status is discovered
// by re-fetching the order, never from this response.
func (p *PaymentClient) Process(ctx context.Context, orderID string) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("orderId")
	e.Str(orderID)
	e.ObjEnd()

	if _, err := p.c.post(ctx, "/api/payments/process", e.Bytes()); err != nil {
		return errors.Wrap(err, "process payment")
	}
	return nil
}

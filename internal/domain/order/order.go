// Package order holds the client-side model of an order: the entity fetched
// from the order backend plus the payment-status view state layered on top.
package order

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state reported by the order backend.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPending   Status = "PENDING"
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// PaymentStatus is the payment state reported by the order backend.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"

	// PaymentUnknown is never sent by the backend; it is what the client
	// displays before any order fetch has resolved.
	PaymentUnknown PaymentStatus = "UNKNOWN"
)

// Item is the single line item of an order.
type Item struct {
	ProductID   string
	ProductName string
	Quantity    int
	TotalAmount decimal.Decimal
	Currency    string
}

// Order is the entity fetched from the order backend. The client reads and
// displays it; it is never mutated locally.
type Order struct {
	ID            string
	Item          Item
	Status        Status
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}

// Decode reads an order object from d.
func Decode(d *jx.Decoder) (Order, error) {
	var o Order
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "orderId":
			o.ID, err = d.Str()
		case "item":
			o.Item, err = decodeItem(d)
		case "status":
			var s string
			s, err = d.Str()
			o.Status = Status(s)
		case "paymentStatus":
			var s string
			s, err = d.Str()
			o.PaymentStatus = PaymentStatus(s)
		case "createdAt":
			o.CreatedAt, err = decodeTime(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return Order{}, errors.Wrap(err, "decode order")
	}
	return o, nil
}

func decodeItem(d *jx.Decoder) (Item, error) {
	var it Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			it.ProductID, err = d.Str()
		case "productName":
			it.ProductName, err = d.Str()
		case "quantity":
			it.Quantity, err = d.Int()
		case "totalAmount":
			var n jx.Num
			n, err = d.Num()
			if err == nil {
				it.TotalAmount, err = decimal.NewFromString(n.String())
			}
		case "currency":
			it.Currency, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	return it, err
}

// decodeTime tolerates non-RFC3339 timestamps: the backends have shipped
// several formats and a bad value must not sink the whole order view.
func decodeTime(d *jx.Decoder) (time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, nil
}

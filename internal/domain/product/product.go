package product

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Product represents a catalog item served by the inventory backend. The
// client only ever reads products; nothing here is written back.
type Product struct {
	ID                string
	Name              string
	Price             decimal.Decimal
	Currency          string
	AvailableQuantity int
	Description       string
}

// InStock reports whether the product can currently be purchased.
func (p Product) InStock() bool {
	return p.AvailableQuantity > 0
}

// Decode reads a single product object from d. Unknown fields are skipped so
// older and newer inventory responses both decode.
func Decode(d *jx.Decoder) (Product, error) {
	var p Product
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "price":
			p.Price, err = decodePrice(d)
		case "currency":
			p.Currency, err = d.Str()
		case "availableQuantity":
			p.AvailableQuantity, err = d.Int()
		case "description":
			p.Description, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return Product{}, errors.Wrap(err, "decode product")
	}
	return p, nil
}

func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}

package backend

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/ordernest/storefront/internal/domain/product"
)

// InventoryClient talks to the inventory backend.
type InventoryClient struct {
	c *Client
}

// NewInventoryClient creates an InventoryClient over the shared client core.
func NewInventoryClient(c *Client) *InventoryClient {
	return &InventoryClient{c: c}
}

// ListProducts fetches the full catalog. A response that is not a JSON array
// decodes to an empty list rather than an error.
func (i *InventoryClient) ListProducts(ctx context.Context) ([]product.Product, error) {
	body, err := i.c.get(ctx, "/api/products")
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Array {
		return []product.Product{}, nil
	}

	products := make([]product.Product, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := product.Decode(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (i *InventoryClient) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	body, err := i.c.get(ctx, "/api/products/"+url.PathEscape(id))
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}

	p, err := product.Decode(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrap(err, "decode product")
	}
	return &p, nil
}

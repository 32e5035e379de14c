package hub

import (
	"context"
	"fmt"
	"strings"
)

// productRoot is the OData root for a single product.
func (c *Client) productRoot(productID string) string {
	return fmt.Sprintf("%s/odata/v1/Products('%s')", c.base, productID)
}

// ProductURL returns the retrieval endpoint for a product's bytes.
func (c *Client) ProductURL(productID string) string {
	return c.productRoot(productID) + "/$value"
}

// checksumURL is the sibling endpoint carrying the product's checksum value.
func (c *Client) checksumURL(productID string) string {
	return c.productRoot(productID) + "/Checksum/Value/$value"
}

// Checksum fetches the hub's current digest for a product, normalized to
// lowercase hex. It is always fetched fresh; the hub is the source of truth.
func (c *Client) Checksum(ctx context.Context, productID string) (string, error) {
	text, err := c.getText(ctx, c.checksumURL(productID))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(text)), nil
}

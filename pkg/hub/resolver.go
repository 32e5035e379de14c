package hub

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/model"
)

// Filter narrows a catalog search to one product type, platform and
// processing mode.
type Filter struct {
	Product  string // producttype, e.g. L2__NO2___
	Platform string // platformname, e.g. Sentinel-5
	Mode     string // processingmode, e.g. Offline
}

// searchPageSize matches the hub's feed paging; one UTC day of a single
// product type fits well within it.
const searchPageSize = 50

// searchURL builds the OpenSearch query covering the whole UTC day of date.
func (c *Client) searchURL(date time.Time, f Filter) string {
	day := date.UTC().Format("2006-01-02")
	q := fmt.Sprintf("beginPosition:[%sT00:00:00.000Z TO %sT23:59:59.000Z] AND platformname:%s AND producttype:%s AND processingmode:%s",
		day, day, f.Platform, f.Product, f.Mode)

	v := url.Values{}
	v.Set("q", q)
	v.Set("rows", fmt.Sprint(searchPageSize))
	v.Set("start", "0")
	return c.base + "/search?" + v.Encode()
}

// ProductsForDate queries the catalog for all products matching the filter
// on the given date and returns them sorted by filename, so batch runs
// process files in a deterministic order.
func (c *Client) ProductsForDate(ctx context.Context, date time.Time, f Filter) ([]model.Product, error) {
	resp, err := c.get(ctx, c.searchURL(date, f))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	products, err := parseFeed(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not parse search feed for %s", date.UTC().Format("2006-01-02"))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Filename < products[j].Filename })
	return products, nil
}

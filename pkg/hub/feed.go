package hub

import (
	"encoding/xml"
	"io"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/model"
)

// The search endpoint returns an Atom feed. Decoding it structurally keeps
// the feed's own <id> and <title> separate from the per-entry ones, which a
// line scraper has to skip by position.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string     `xml:"id"`
	Title string     `xml:"title"`
	Links []atomLink `xml:"link"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// parseFeed extracts one Product per feed entry: its id, its title (the
// product filename) and the link advertised with rel="alternative".
func parseFeed(r io.Reader) ([]model.Product, error) {
	var feed atomFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode search feed")
	}

	products := make([]model.Product, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		p := model.Product{ID: e.ID, Filename: e.Title}
		for _, l := range e.Links {
			if l.Rel == "alternative" {
				p.Link = l.Href
				break
			}
		}
		products = append(products, p)
	}
	return products, nil
}

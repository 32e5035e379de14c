// Package testutil provides a fake data hub for tests: an HTTP server with
// the same three endpoint shapes as a real hub (OpenSearch feed, product
// bytes, checksum value), guarded by basic auth.
package testutil

import (
	"crypto/md5" //nolint:gosec // matches the hub's integrity scheme
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

// Credentials every fake hub expects.
const (
	Username = "testuser"
	Password = "testpass"
)

// FakeProduct is one canned product served by the fake hub.
type FakeProduct struct {
	ID       string
	Filename string
	Body     []byte
	// ServedBody, when set, is what the retrieval endpoint actually returns
	// while the checksum endpoint still reports the digest of Body. Use it
	// to simulate a transfer that corrupts on every attempt.
	ServedBody []byte
}

// FakeHub serves an OpenSearch feed, product bytes and checksum values the
// way a Copernicus hub does.
type FakeHub struct {
	Products []FakeProduct
	srv      *httptest.Server

	// SearchQueries records the raw query string of every /search request.
	SearchQueries []string
}

// NewFakeHub starts the fake hub. Callers must Close it.
func NewFakeHub(products []FakeProduct) *FakeHub {
	h := &FakeHub{Products: products}
	h.srv = httptest.NewServer(http.HandlerFunc(h.handle))
	return h
}

// URL returns the hub base URL.
func (h *FakeHub) URL() string { return h.srv.URL }

// Close shuts the server down.
func (h *FakeHub) Close() { h.srv.Close() }

// Digest returns the hex MD5 of b, the digest the checksum endpoint reports.
func Digest(b []byte) string {
	sum := md5.Sum(b) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func (h *FakeHub) handle(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != Username || pass != Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.URL.Path == "/search" {
		h.SearchQueries = append(h.SearchQueries, r.URL.RawQuery)
		h.writeFeed(w)
		return
	}

	for _, p := range h.Products {
		root := fmt.Sprintf("/odata/v1/Products('%s')", p.ID)
		switch r.URL.Path {
		case root + "/$value":
			body := p.Body
			if p.ServedBody != nil {
				body = p.ServedBody
			}
			_, _ = w.Write(body)
			return
		case root + "/Checksum/Value/$value":
			_, _ = w.Write([]byte(strings.ToUpper(Digest(p.Body))))
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *FakeHub) writeFeed(w http.ResponseWriter) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("<title>Products search results</title>\n")
	b.WriteString("<id>" + h.srv.URL + "/search</id>\n")
	for _, p := range h.Products {
		b.WriteString("<entry>\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", p.Filename)
		fmt.Fprintf(&b, "<id>%s</id>\n", p.ID)
		fmt.Fprintf(&b, `<link href="%s/odata/v1/Products('%s')/$value"/>`+"\n", h.srv.URL, p.ID)
		fmt.Fprintf(&b, `<link rel="alternative" href="%s/odata/v1/Products('%s')/"/>`+"\n", h.srv.URL, p.ID)
		b.WriteString("</entry>\n")
	}
	b.WriteString("</feed>\n")

	w.Header().Set("Content-Type", "application/atom+xml")
	_, _ = w.Write([]byte(b.String()))
}

package model

// Product is one downloadable file known to the hub catalog. The resolver
// produces these sorted by filename; a repair run rebuilds them from ledger
// lines.
type Product struct {
	ID       string // hub product identifier (opaque hex/UUID string)
	Link     string // alternate download link advertised by the search feed
	Filename string // product filename, also used as the local destination name
}

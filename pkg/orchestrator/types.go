//go:generate mockgen -destination=./mocks/orchestrator.go -package mocks . Resolver,ChecksumSource,Transferer,Recorder

package orchestrator

import (
	"context"
	"hash"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gggplot/s5get/pkg/hub"
	"github.com/gggplot/s5get/pkg/ledger"
	"github.com/gggplot/s5get/pkg/model"
	"github.com/gggplot/s5get/pkg/transfer"
)

// Resolver is the subset of the hub client that maps a date to candidate
// products.
type Resolver interface {
	ProductsForDate(ctx context.Context, date time.Time, f hub.Filter) ([]model.Product, error)
}

// ChecksumSource supplies the hub-side truth for a product: its retrieval
// endpoint and its current digest.
type ChecksumSource interface {
	Checksum(ctx context.Context, productID string) (string, error)
	ProductURL(productID string) string
}

// Transferer is the download-and-verify engine.
type Transferer interface {
	Transfer(ctx context.Context, task transfer.Task, policy transfer.RetryPolicy) (transfer.Outcome, error)
}

// Recorder captures failed transfers. *ledger.Writer satisfies it.
type Recorder interface {
	Record(e ledger.Entry) error
}

// Orchestrator ties the resolver, checksum source, transfer engine and
// failure ledger together for batch, check and repair runs. Files are
// processed strictly sequentially, in resolver order, and ledger entries are
// written in the order failures occur.
type Orchestrator struct {
	Resolver  Resolver
	Checksums ChecksumSource
	Engine    Transferer
	Filter    hub.Filter
	Policy    transfer.RetryPolicy
	OutputDir string
	NewHash   func() hash.Hash // digest used by CheckByDates; defaults to MD5 like the engine
	Log       logrus.FieldLogger
}

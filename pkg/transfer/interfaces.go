package transfer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Action decides what the engine does when a completed download fails digest
// verification.
type Action int

const (
	// ActionRecord accepts the failure after the first mismatch so the
	// ledger can capture it for a later repair pass.
	ActionRecord Action = iota
	// ActionRetry restarts the transfer from byte 0, up to MaxAttempts.
	ActionRetry
)

// ParseAction converts a config value ("record" or "retry") into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "record":
		return ActionRecord, nil
	case "retry":
		return ActionRetry, nil
	default:
		return ActionRecord, fmt.Errorf("unknown on_bad_checksum action %q (want record or retry)", s)
	}
}

func (a Action) String() string {
	if a == ActionRetry {
		return "retry"
	}
	return "record"
}

// Task describes one file to fetch and verify. Immutable once created; the
// expected digest is always fetched fresh from the hub for the current run.
type Task struct {
	ProductID      string // hub identifier, recorded in the ledger on failure
	SourceURL      string // retrieval endpoint for the product bytes
	DestPath       string // local destination, overwritten on every attempt
	ExpectedDigest string // lowercase hex digest from the hub's checksum endpoint
}

// Outcome is produced exactly once per Task and never mutated after return.
// A failed-but-recorded download is a normal outcome, not an error.
type Outcome struct {
	Succeeded        bool
	BytesTransferred int64 // bytes written during the last attempt
	ObservedDigest   string
	Attempts         int
}

// RetryPolicy bounds the outer digest-retry loop. It is distinct from the
// transport retry budget inside the BlobSource: a transport-level success can
// still yield a bad checksum.
type RetryPolicy struct {
	MaxAttempts int           // >= 1; attempts stop early on a matching digest
	OnMismatch  Action        // record or retry
	Backoff     time.Duration // fixed delay between digest-retry attempts
}

// BlobSource opens a streaming read for a source URL. The hub client
// implements this with its own transport retry budget; an exhausted budget
// surfaces as errors.ErrTransport.
type BlobSource interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// Transferer is the engine contract consumed by the orchestrator.
type Transferer interface {
	Transfer(ctx context.Context, task Task, policy RetryPolicy) (Outcome, error)
}

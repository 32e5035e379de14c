package transfer

import (
	"context"
	"crypto/md5" //nolint:gosec // the hub publishes MD5 checksums
	"hash"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
)

// Default streaming parameters. Both are overridable through EngineOptions
// and, from the CLI, through the block_size / log_block_size config keys.
const (
	DefaultChunkSize int64 = 1 << 20  // 1 MiB per read
	DefaultLogEvery  int64 = 25 << 20 // progress log every 25 MiB
)

// EngineOptions configure the transfer engine.
type EngineOptions struct {
	// ChunkSize is how much data to stream from the hub at once.
	ChunkSize int64

	// LogEvery is how many new bytes accumulate between progress logs.
	// Progress logging is a side effect only and never affects control flow.
	LogEvery int64

	// NewHash constructs the digest used for verification. Defaults to MD5,
	// the integrity scheme of the Copernicus hubs.
	NewHash func() hash.Hash
}

// EngineImpl streams products to disk and verifies them against the hub's
// checksum, restarting from byte 0 on mismatch when the policy allows.
type EngineImpl struct {
	src  BlobSource
	opts EngineOptions
	log  logrus.FieldLogger
}

// NewEngine creates a transfer engine reading from src. The logger is
// required by the progress contract; pass a discard logger to silence it.
func NewEngine(src BlobSource, opts EngineOptions, log logrus.FieldLogger) *EngineImpl {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = DefaultLogEvery
	}
	if opts.NewHash == nil {
		opts.NewHash = md5.New
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &EngineImpl{src: src, opts: opts, log: log}
}

// Transfer runs the outer digest-retry loop for one task. It returns a
// non-nil error only for hard failures: transport budget exhaustion from the
// source, an unopenable destination, or an unreadable file at verify time.
// Checksum mismatches, including an exhausted retry budget, come back as
// Succeeded=false with a nil error; the last attempt's bytes stay on disk.
func (e *EngineImpl) Transfer(ctx context.Context, task Task, policy RetryPolicy) (Outcome, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	want := normalizeHex(task.ExpectedDigest)

	var outcome Outcome
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		outcome.Attempts = attempt

		written, err := e.downloadOnce(ctx, task)
		outcome.BytesTransferred = written
		if err != nil {
			return outcome, err
		}

		got, err := FileDigest(task.DestPath, e.opts.NewHash)
		if err != nil {
			return outcome, pkgerrors.Wrapf(err, "could not digest %s", task.DestPath)
		}
		outcome.ObservedDigest = got

		if got == want {
			outcome.Succeeded = true
			e.log.Infof("%s digest is correct", task.DestPath)
			return outcome, nil
		}
		if policy.OnMismatch == ActionRecord {
			e.log.Warnf("%s digest is incorrect, recording", task.DestPath)
			return outcome, nil
		}
		e.log.Warnf("%s digest is incorrect, will retry", task.DestPath)

		if attempt < policy.MaxAttempts && policy.Backoff > 0 {
			select {
			case <-ctx.Done():
				return outcome, ctx.Err()
			case <-time.After(policy.Backoff):
			}
		}
	}

	// Retry budget exhausted. Not an error: the failure is recorded and the
	// run continues.
	return outcome, nil
}

// downloadOnce performs one full attempt: open the stream, write the
// destination from scratch, count bytes and emit progress logs. A read or
// write failure mid-stream still closes the partial file and reports how far
// the attempt got; verification then decides what happens next.
func (e *EngineImpl) downloadOnce(ctx context.Context, task Task) (int64, error) {
	body, err := e.src.Open(ctx, task.SourceURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	dst, err := os.Create(task.DestPath)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "could not open destination %s", task.DestPath)
	}

	var written, lastLog int64
	var streamErr error
	buf := make([]byte, e.opts.ChunkSize)
	for {
		nr, rerr := body.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				streamErr = werr
				break
			}
			if written-lastLog > e.opts.LogEvery {
				e.log.Infof("%s downloaded for %s", humanize.IBytes(uint64(written)), task.DestPath)
				lastLog = written
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			streamErr = rerr
			break
		}
	}

	closeErr := dst.Close()
	if streamErr != nil {
		e.log.Warnf("FAILURE:  %s downloaded for %s: %v", humanize.IBytes(uint64(written)), task.DestPath, streamErr)
		return written, nil
	}
	if closeErr != nil {
		return written, pkgerrors.Wrapf(closeErr, "could not close %s", task.DestPath)
	}
	e.log.Infof("COMPLETE: %s downloaded for %s", humanize.IBytes(uint64(written)), task.DestPath)
	return written, nil
}

package orchestrator

import (
	"context"
	"crypto/md5" //nolint:gosec // the hub publishes MD5 checksums
	"errors"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/ledger"
	"github.com/gggplot/s5get/pkg/transfer"
)

func (o *Orchestrator) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o *Orchestrator) hashFunc() func() hash.Hash {
	if o.NewHash != nil {
		return o.NewHash
	}
	return md5.New
}

// runTask fetches the product's fresh digest, runs the transfer engine and
// records the task in the ledger when it does not verify. Transport budget
// exhaustion is logged distinctly from a checksum mismatch, recorded like a
// failed download, and returned to the caller (batch runs skip past it,
// single downloads surface it). Any other error is fatal to the run.
func (o *Orchestrator) runTask(ctx context.Context, rec Recorder, productID, destPath string) error {
	log := o.logger()
	entry := ledger.Entry{Filename: filepath.Base(destPath), ProductID: productID}

	digest, err := o.Checksums.Checksum(ctx, productID)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrTransport) {
			return err
		}
		log.Errorf("transport failure fetching checksum for %s: %v", productID, err)
		entry.Digest = "-"
		if recErr := rec.Record(entry); recErr != nil {
			return recErr
		}
		return err
	}
	entry.Digest = digest

	task := transfer.Task{
		ProductID:      productID,
		SourceURL:      o.Checksums.ProductURL(productID),
		DestPath:       destPath,
		ExpectedDigest: digest,
	}
	outcome, err := o.Engine.Transfer(ctx, task, o.Policy)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrTransport) {
			return err
		}
		log.Errorf("transport failure downloading %s: %v", productID, err)
		if recErr := rec.Record(entry); recErr != nil {
			return recErr
		}
		return err
	}
	if !outcome.Succeeded {
		// Ledger carries the expected digest, not the observed one: a repair
		// run needs to know what the file should have been.
		return rec.Record(entry)
	}
	return nil
}

// DownloadOne downloads a single product to outputName. The ledger at
// recordPath is only created when the download fails to verify.
func (o *Orchestrator) DownloadOne(ctx context.Context, productID, outputName, recordPath string) error {
	rec := &lazyLedger{path: recordPath}
	defer func() { _ = rec.Close() }()
	return o.runTask(ctx, rec, productID, outputName)
}

// DownloadBatch downloads every matching product for each date in
// [start, end], one day and one file at a time. The ledger at recordPath is
// truncated up front so it reflects only this run's failures. Transport
// failures are recorded and skipped; everything else aborts the run.
func (o *Orchestrator) DownloadBatch(ctx context.Context, start, end time.Time, recordPath string) error {
	log := o.logger()
	rec, err := ledger.OpenForRun(recordPath)
	if err != nil {
		return err
	}
	defer func() { _ = rec.Close() }()

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		products, err := o.Resolver.ProductsForDate(ctx, day, o.Filter)
		if err != nil {
			return err
		}
		log.Infof("%d products found for %s", len(products), day.Format("2006-01-02"))
		for _, p := range products {
			err := o.runTask(ctx, rec, p.ID, filepath.Join(o.OutputDir, p.Filename))
			if err != nil && !errors.Is(err, pkgerrors.ErrTransport) {
				return err
			}
		}
	}

	log.Infof("batch finished, %d failed downloads recorded in %s", rec.Count(), recordPath)
	return nil
}

// CheckByDates verifies already-downloaded files against fresh hub digests
// without re-downloading anything. Missing files and digest mismatches are
// recorded exactly like failed downloads, so the resulting ledger feeds
// straight into a repair run.
func (o *Orchestrator) CheckByDates(ctx context.Context, start, end time.Time, recordPath string) error {
	log := o.logger()
	rec, err := ledger.OpenForRun(recordPath)
	if err != nil {
		return err
	}
	defer func() { _ = rec.Close() }()

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		products, err := o.Resolver.ProductsForDate(ctx, day, o.Filter)
		if err != nil {
			return err
		}
		for _, p := range products {
			outName := filepath.Join(o.OutputDir, p.Filename)
			entry := ledger.Entry{Filename: p.Filename, ProductID: p.ID}

			digest, err := o.Checksums.Checksum(ctx, p.ID)
			if err != nil {
				if !errors.Is(err, pkgerrors.ErrTransport) {
					return err
				}
				log.Errorf("transport failure fetching checksum for %s: %v", p.ID, err)
				entry.Digest = "-"
				if recErr := rec.Record(entry); recErr != nil {
					return recErr
				}
				continue
			}
			entry.Digest = digest

			if _, err := os.Stat(outName); err != nil {
				if !os.IsNotExist(err) {
					return pkgerrors.Wrapf(err, "could not stat %s", outName)
				}
				log.Warnf("%s missing, recording", outName)
				if recErr := rec.Record(entry); recErr != nil {
					return recErr
				}
				continue
			}

			ok, got, err := transfer.Verify(outName, digest, o.hashFunc())
			if err != nil {
				return err
			}
			if !ok {
				log.Warnf("%s digest is incorrect (got %s), recording", outName, got)
				if recErr := rec.Record(entry); recErr != nil {
					return recErr
				}
			}
		}
	}

	log.Infof("check finished, %d files recorded in %s", rec.Count(), recordPath)
	return nil
}

// RedownloadFailed re-attempts every entry of a previously written ledger.
// The input list is fully read into memory before the output ledger is
// opened; when both are the same file it is additionally backed up to a
// timestamped copy before being truncated.
func (o *Orchestrator) RedownloadFailed(ctx context.Context, listPath, recordPath string) error {
	log := o.logger()
	entries, err := ledger.Load(listPath)
	if err != nil {
		return err
	}

	if filepath.Clean(listPath) == filepath.Clean(recordPath) {
		log.Warnf("backing up list of failed files (%s) as it will be overwritten with new downloads", listPath)
		backup, err := ledger.Backup(listPath)
		if err != nil {
			return err
		}
		log.Infof("backup written to %s", backup)
	}

	rec, err := ledger.OpenForRun(recordPath)
	if err != nil {
		return err
	}
	defer func() { _ = rec.Close() }()

	for _, e := range entries {
		err := o.runTask(ctx, rec, e.ProductID, filepath.Join(o.OutputDir, e.Filename))
		if err != nil && !errors.Is(err, pkgerrors.ErrTransport) {
			return err
		}
	}

	log.Infof("repair finished, %d of %d downloads failed again", rec.Count(), len(entries))
	return nil
}

// lazyLedger opens the ledger file on first record, so a fully successful
// single download leaves no empty ledger behind.
type lazyLedger struct {
	path string
	w    *ledger.Writer
}

func (l *lazyLedger) Record(e ledger.Entry) error {
	if l.w == nil {
		w, err := ledger.OpenForRun(l.path)
		if err != nil {
			return err
		}
		l.w = w
	}
	return l.w.Record(e)
}

func (l *lazyLedger) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

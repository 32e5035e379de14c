// Package ledger persists the list of transfers that did not verify. The
// file is plain text, one failed download per line, three whitespace
// separated fields: filename, product identifier, expected digest. A later
// repair run re-ingests the same file as its task list.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/fsutil"
)

// Entry is one failed transfer. Digest holds the expected (hub-side) digest,
// not the observed one; "-" marks an entry whose digest could not be fetched.
type Entry struct {
	Filename  string
	ProductID string
	Digest    string
}

// Writer appends entries to the ledger file for the duration of one run.
// Each run truncates the file: the ledger reflects only failures from that
// run, never an accumulation across runs.
type Writer struct {
	f     *os.File
	count int
}

// OpenForRun truncates or creates the ledger file at path, creating parent
// directories as needed.
func OpenForRun(path string) (*Writer, error) {
	if path == "" {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigValidation, "ledger path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, fsutil.DirModeDefault); err != nil {
			return nil, pkgerrors.Wrapf(err, "could not create ledger directory %s", dir)
		}
	}
	f, err := fsutil.CreateFilePerm(path, fsutil.FileModeDefault)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not open ledger %s", path)
	}
	return &Writer{f: f}, nil
}

// Record appends one entry and flushes it to the OS, so a killed process
// loses at most the in-flight task.
func (w *Writer) Record(e Entry) error {
	digest := e.Digest
	if digest == "" {
		digest = "-"
	}
	if _, err := fmt.Fprintf(w.f, "%s  %s  %s\n", e.Filename, e.ProductID, digest); err != nil {
		return pkgerrors.Wrap(err, "could not write ledger entry")
	}
	if err := w.f.Sync(); err != nil {
		return pkgerrors.Wrap(err, "could not flush ledger")
	}
	w.count++
	return nil
}

// Count returns how many entries this run has recorded.
func (w *Writer) Count() int { return w.count }

// Close closes the ledger file.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// Load reads a previously written ledger back into entries, preserving
// order. Lines are split on whitespace; anything other than exactly three
// fields means the file is not a ledger.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not open ledger %s", path)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, pkgerrors.Wrapf(pkgerrors.ErrLedgerFormat, "%s line %d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		entries = append(entries, Entry{Filename: fields[0], ProductID: fields[1], Digest: fields[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, pkgerrors.Wrapf(err, "could not read ledger %s", path)
	}
	return entries, nil
}

// Backup copies the ledger to a timestamped sibling and returns the new
// name. A repair run that writes back to its own input file calls this
// before truncating, so the input list is never destroyed mid-run.
func Backup(path string) (string, error) {
	backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102T150405"))
	if err := fsutil.Copy(path, backup); err != nil {
		return "", pkgerrors.Wrapf(err, "could not back up ledger %s", path)
	}
	return backup, nil
}

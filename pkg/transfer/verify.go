package transfer

import (
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
)

// verifyReadSize is the read size used while digesting a file. Products can
// run to gigabytes, so the content is streamed rather than loaded whole.
const verifyReadSize = 1000000

// FileDigest computes the hex digest of the file at path using the supplied
// hash constructor.
func FileDigest(path string, newHash func() hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()

	h := newHash()
	buf := make([]byte, verifyReadSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", pkgerrors.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether the file content matches the expected hex digest.
// Comparison is case-insensitive; the observed digest is returned for
// diagnostics either way.
func Verify(path, expected string, newHash func() hash.Hash) (bool, string, error) {
	got, err := FileDigest(path, newHash)
	if err != nil {
		return false, "", err
	}
	return got == normalizeHex(expected), got, nil
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

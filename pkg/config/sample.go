package config

import (
	"fmt"
	"os"
	"strings"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/fsutil"
)

// sampleConfig is what make-cfg emits: working defaults plus one example
// section for NO2 products. Credentials are left for the user to fill in.
const sampleConfig = `defaults:
  hub: https://s5phub.copernicus.eu/dhus
  username: ""
  password: ""
  num_tries: 5
  on_bad_checksum: record
  record_file: failed_downloads.txt
sections:
  NO2:
    product: L2__NO2___
`

// keyHelp documents every recognized key with its fallback value.
var keyHelp = []struct {
	key, fallback, help string
}{
	{"hub", "required", "URL to the data hub."},
	{"username", "required", "Username to access the data hub."},
	{"password", "required", "Password to access the data hub."},
	{"product", "required for batch", "Which data product to download."},
	{"platform", "default: " + DefaultPlatform, "Which satellite to download data for."},
	{"mode", "default: " + DefaultMode, "Which processing mode of the satellite data to download."},
	{"block_size", "default: " + DefaultBlockSize, "How much data to stream from the data hub at once. A number, optionally followed by K, M, or G."},
	{"log_block_size", "default: " + DefaultLogBlockSize, "How frequently to report download progress. A number, optionally followed by K, M, or G."},
	{"on_bad_checksum", "default: " + DefaultOnBadChecksum, `What to do if a data file has a bad checksum: "record" (just write it to a list) or "retry".`},
	{"num_tries", fmt.Sprintf("default: %d", DefaultNumTries), "How many times to try retrieving information from the data hub."},
	{"record_file", "default: " + DefaultRecordFile, "File to write reports of failed downloads to."},
	{"output_dir", "default: " + DefaultOutputDir, "Directory to save batch downloaded files to."},
}

// WriteSample writes the sample config file to path.
func WriteSample(path string) error {
	if path == "" {
		return pkgerrors.ErrEmptyConfigPath
	}
	if err := os.WriteFile(path, []byte(sampleConfig), fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrapf(err, "could not write sample config to %s", path)
	}
	return nil
}

// SampleHelp returns a human-readable description of the config format and
// every recognized key.
func SampleHelp() string {
	var b strings.Builder
	b.WriteString("A config file looks like this:\n\n")
	for _, line := range strings.Split(strings.TrimRight(sampleConfig, "\n"), "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	b.WriteString(`
The defaults block holds values shared by every data set. Each entry under
sections describes one data set; when you run the batch downloader you pass
the section name, and its values override the defaults key by key. In the
example only "product" is set in the NO2 section, so everything else comes
from defaults.

Recognized keys and their fallback values:

`)
	for _, k := range keyHelp {
		fmt.Fprintf(&b, "  %s (%s) - %s\n", k.key, k.fallback, k.help)
	}
	return b.String()
}

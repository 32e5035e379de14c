// Package config loads the s5get settings file: a YAML document with a
// defaults mapping and named override sections, one per data set. Section
// values override defaults field by field and everything is resolved into a
// fully typed Settings struct, validated once at load time.
package config

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
	"github.com/gggplot/s5get/pkg/transfer"
)

// Fallback values applied when neither the defaults block nor the chosen
// section sets a key.
const (
	DefaultPlatform      = "Sentinel-5"
	DefaultMode          = "Offline"
	DefaultBlockSize     = "1M"
	DefaultLogBlockSize  = "25M"
	DefaultOnBadChecksum = "record"
	DefaultNumTries      = 5
	DefaultRecordFile    = "failed_downloads.txt"
	DefaultOutputDir     = "."
)

// Section holds the raw string-typed keys of one config section. Empty
// values mean "inherit".
type Section struct {
	Hub           string `yaml:"hub,omitempty"`
	Username      string `yaml:"username,omitempty"`
	Password      string `yaml:"password,omitempty"`
	Product       string `yaml:"product,omitempty"`
	Platform      string `yaml:"platform,omitempty"`
	Mode          string `yaml:"mode,omitempty"`
	BlockSize     string `yaml:"block_size,omitempty"`
	LogBlockSize  string `yaml:"log_block_size,omitempty"`
	OnBadChecksum string `yaml:"on_bad_checksum,omitempty"`
	NumTries      int    `yaml:"num_tries,omitempty"`
	RecordFile    string `yaml:"record_file,omitempty"`
	OutputDir     string `yaml:"output_dir,omitempty"`
}

// Config is the whole settings file.
type Config struct {
	Defaults Section            `yaml:"defaults"`
	Sections map[string]Section `yaml:"sections,omitempty"`
}

// Settings is the resolved, typed configuration for one run.
type Settings struct {
	Hub           string
	Username      string
	Password      string
	Product       string
	Platform      string
	Mode          string
	BlockSize     int64
	LogBlockSize  int64
	OnBadChecksum transfer.Action
	NumTries      int
	RecordFile    string
	OutputDir     string
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, pkgerrors.ErrEmptyConfigPath
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadFromReader(file)
}

// LoadFromReader parses a config document from an io.Reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigParse, err.Error())
	}
	return &config, nil
}

// Resolve merges the named section over the defaults block and validates the
// result. An empty name (or "defaults"/"DEFAULT") resolves the defaults
// alone; any other name must exist under sections.
func (c *Config) Resolve(name string) (*Settings, error) {
	merged := c.Defaults
	switch strings.ToLower(name) {
	case "", "default", "defaults":
		// defaults only
	default:
		sect, ok := c.Sections[name]
		if !ok {
			return nil, pkgerrors.Wrapf(pkgerrors.ErrUnknownSection, "%q", name)
		}
		merged = overlay(c.Defaults, sect)
	}
	return merged.typed()
}

// overlay returns base with every non-empty field of over applied on top.
func overlay(base, over Section) Section {
	out := base
	if over.Hub != "" {
		out.Hub = over.Hub
	}
	if over.Username != "" {
		out.Username = over.Username
	}
	if over.Password != "" {
		out.Password = over.Password
	}
	if over.Product != "" {
		out.Product = over.Product
	}
	if over.Platform != "" {
		out.Platform = over.Platform
	}
	if over.Mode != "" {
		out.Mode = over.Mode
	}
	if over.BlockSize != "" {
		out.BlockSize = over.BlockSize
	}
	if over.LogBlockSize != "" {
		out.LogBlockSize = over.LogBlockSize
	}
	if over.OnBadChecksum != "" {
		out.OnBadChecksum = over.OnBadChecksum
	}
	if over.NumTries != 0 {
		out.NumTries = over.NumTries
	}
	if over.RecordFile != "" {
		out.RecordFile = over.RecordFile
	}
	if over.OutputDir != "" {
		out.OutputDir = over.OutputDir
	}
	return out
}

// typed converts a merged section into validated Settings.
func (s Section) typed() (*Settings, error) {
	if s.Hub == "" {
		return nil, pkgerrors.Wrap(pkgerrors.ErrMissingSetting, "hub")
	}
	if s.Username == "" {
		return nil, pkgerrors.Wrap(pkgerrors.ErrMissingSetting, "username")
	}
	if s.Password == "" {
		return nil, pkgerrors.Wrap(pkgerrors.ErrMissingSetting, "password")
	}

	if s.Platform == "" {
		s.Platform = DefaultPlatform
	}
	if s.Mode == "" {
		s.Mode = DefaultMode
	}
	if s.BlockSize == "" {
		s.BlockSize = DefaultBlockSize
	}
	if s.LogBlockSize == "" {
		s.LogBlockSize = DefaultLogBlockSize
	}
	if s.OnBadChecksum == "" {
		s.OnBadChecksum = DefaultOnBadChecksum
	}
	if s.NumTries == 0 {
		s.NumTries = DefaultNumTries
	}
	if s.RecordFile == "" {
		s.RecordFile = DefaultRecordFile
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}

	blockSize, err := ParseByteSize(s.BlockSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigValidation, err.Error())
	}
	logBlockSize, err := ParseByteSize(s.LogBlockSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigValidation, err.Error())
	}
	action, err := transfer.ParseAction(s.OnBadChecksum)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigValidation, err.Error())
	}
	if s.NumTries < 1 {
		return nil, pkgerrors.Wrap(pkgerrors.ErrConfigValidation, "num_tries must be at least 1")
	}

	return &Settings{
		Hub:           s.Hub,
		Username:      s.Username,
		Password:      s.Password,
		Product:       s.Product,
		Platform:      s.Platform,
		Mode:          s.Mode,
		BlockSize:     blockSize,
		LogBlockSize:  logBlockSize,
		OnBadChecksum: action,
		NumTries:      s.NumTries,
		RecordFile:    s.RecordFile,
		OutputDir:     s.OutputDir,
	}, nil
}

// RequireProduct enforces the product key for batch and check modes, where a
// catalog query is built from it.
func (s *Settings) RequireProduct() error {
	if s.Product == "" {
		return pkgerrors.Wrap(pkgerrors.ErrMissingSetting, "product (required for batch operations)")
	}
	return nil
}

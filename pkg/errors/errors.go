package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrUnknownSection   = fmt.Errorf("unknown config section")
	ErrMissingSetting   = fmt.Errorf("required setting missing")

	// Transport errors. ErrTransport means the hub never returned a
	// successful response within the retry budget. It is fatal to the
	// current task and is never retried by the digest loop.
	ErrTransport = fmt.Errorf("request retry budget exhausted")

	// Ledger errors.
	ErrLedgerFormat = fmt.Errorf("malformed ledger line")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

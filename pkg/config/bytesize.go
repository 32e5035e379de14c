package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseByteSize converts a byte-size string to a byte count. The value is a
// bare number of bytes, optionally suffixed with K, M or G for binary
// kilobytes, megabytes or gigabytes ("1M" is 1048576).
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'M', 'm':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'G', 'g':
		mult = 1 << 30
		s = s[:len(s)-1]
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid byte size %q: want a number with optional K/M/G suffix", s)
	}
	return val * mult, nil
}

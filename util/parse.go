package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable size string (e.g. "10MB", "512KB", "2GB")
// into bytes. A bare number is taken as bytes.
func ParseSize(s string) (int64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, errors.New("empty size")
	}

	multiplier := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(v, u.suffix) {
			multiplier = u.multiplier
			v = strings.TrimSpace(strings.TrimSuffix(v, u.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * multiplier, nil
}

// ParseSizeOr is ParseSize with a fallback for unparsable input.
func ParseSizeOr(s string, fallback int64) int64 {
	n, err := ParseSize(s)
	if err != nil {
		return fallback
	}
	return n
}

// MaskSecret hides sensitive parts of a string for safe display in logs.
// If the string is shorter than visiblePrefix, it is fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}

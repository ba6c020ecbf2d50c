// Package postlib provides the core building blocks of fridayd: the weekly
// trigger timer, media file resolution, chunked media uploads and the
// remote posting client.
package postlib

import (
	"fmt"
	"strconv"
	"strings"
)

// Size unit constants for byte conversions.
const (
	// B represents one byte.
	B int64 = 1
	// KB represents one kilobyte (1024 bytes).
	KB = 1024 * B
	// MB represents one megabyte (1024 kilobytes).
	MB = 1024 * KB
	// GB represents one gigabyte (1024 megabytes).
	GB = 1024 * MB
)

const (
	// DefaultChunkSize is the upload segment size used when no
	// explicit chunk size is configured.
	DefaultChunkSize = 1 * MB

	defUserAgent = "fridayd/1.0"
)

// ParseSize parses a human-readable byte size string and returns the
// number of bytes. 0 means "use the default".
//
// Supported formats:
//   - Plain bytes: "100", "1024"
//   - With B suffix: "100B"
//   - Kilobytes: "512KB", "512kb", "512K"
//   - Megabytes: "1MB", "1.5mb"
//   - Gigabytes: "1GB"
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	s = strings.ToUpper(s)

	var numStr, unit string
	for i, c := range s {
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			numStr = s[:i]
			unit = s[i:]
			break
		}
	}
	if numStr == "" {
		numStr = s
		unit = ""
	}
	if numStr == "" {
		return 0, fmt.Errorf("invalid size: no numeric value in %q", s)
	}
	if strings.HasPrefix(numStr, "-") {
		return 0, fmt.Errorf("invalid size: negative value not allowed in %q", s)
	}

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q is not a valid number", numStr)
	}

	var multiplier int64
	switch unit {
	case "", "B":
		multiplier = B
	case "KB", "K":
		multiplier = KB
	case "MB", "M":
		multiplier = MB
	case "GB", "G":
		multiplier = GB
	default:
		return 0, fmt.Errorf("invalid size unit: %q (use B, KB, MB, or GB)", unit)
	}

	result := int64(num * float64(multiplier))
	if result < 0 {
		return 0, fmt.Errorf("invalid size: result is negative")
	}
	return result, nil
}

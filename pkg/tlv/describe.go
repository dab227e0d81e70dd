package tlv

import (
	"fmt"
	"strings"
)

// Describe renders a TLV payload as an indented, human-readable listing,
// one line per field. Input that does not decode as TLV is dumped as a
// plain hex string.
//
// The applet's tags carry raw bytes even when the BER constructed bit is
// set, so this uses the strict protocol decoder rather than a recursive
// BER parser.
func Describe(data []byte) string {
	records, err := DecodeRecords(data)
	if err != nil {
		return fmt.Sprintf("    (not TLV) %X", data)
	}

	var lines []string
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("    %02X [%3d] %X (%q)",
			r.Tag, len(r.Value), r.Value, MakeSafeASCII(r.Value)))
	}
	return strings.Join(lines, "\n")
}

// MakeSafeASCII replaces non-printable bytes with '.' for display.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}

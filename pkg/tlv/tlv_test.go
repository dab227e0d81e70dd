package tlv

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/moov-io/bertlv"
)

func TestAppendLength_Encoding(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0x00, "00"},
		{0x01, "01"},
		{0x7F, "7F"},
		{0x80, "8180"},
		{0xFF, "81FF"},
		{0x100, "820100"},
		{0x1234, "821234"},
		{0xFFFF, "82FFFF"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			got, err := AppendLength(nil, tt.n)
			if err != nil {
				t.Fatalf("AppendLength(%d) failed: %v", tt.n, err)
			}
			if gotHex := strings.ToUpper(hex.EncodeToString(got)); gotHex != tt.expected {
				t.Errorf("AppendLength(%d) = %s, want %s", tt.n, gotHex, tt.expected)
			}
		})
	}
}

func TestAppendLength_OutOfRange(t *testing.T) {
	for _, n := range []int{-1, MaxLength + 1} {
		if _, err := AppendLength(nil, n); err == nil {
			t.Errorf("AppendLength(%d) should fail", n)
		}
	}
}

// Length headers must round-trip through the decoder and use 1, 2 or 3
// bytes depending on the range.
func TestLength_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		lengths   []int
		headerLen int
	}{
		{"short form", []int{0, 1, 0x40, 0x7F}, 1},
		{"two-byte form", []int{0x80, 0xAB, 0xFF}, 2},
		{"three-byte form", []int{0x100, 0x1234, 0xFFFF}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range tt.lengths {
				field, err := AppendField(nil, 0x71, make([]byte, n), 0)
				if err != nil {
					t.Fatalf("AppendField(len=%d) failed: %v", n, err)
				}

				// tag + header + value
				if want := 1 + tt.headerLen + n; len(field) != want {
					t.Errorf("field for n=%d is %d bytes, want %d", n, len(field), want)
				}

				records, err := DecodeRecords(field)
				if err != nil {
					t.Fatalf("DecodeRecords(len=%d) failed: %v", n, err)
				}
				if len(records) != 1 || len(records[0].Value) != n {
					t.Errorf("round trip of n=%d gave %d records, value len %d",
						n, len(records), len(records[0].Value))
				}
			}
		})
	}
}

func TestAppendField_Padding(t *testing.T) {
	// 4-byte password padded to 16: length header covers value + padding.
	field, err := AppendField(nil, 0x73, []byte("1234"), 12)
	if err != nil {
		t.Fatalf("AppendField failed: %v", err)
	}

	expected := Hex("73 10 31323334", "000000000000000000000000")
	if !bytes.Equal(field, expected) {
		t.Errorf("padded field = %X, want %X", field, expected)
	}
}

func TestAppendField_NegativePad(t *testing.T) {
	if _, err := AppendField(nil, 0x73, []byte("1234"), -1); err == nil {
		t.Error("negative padding should fail")
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    []Record
		wantErr bool
	}{
		{
			name: "two records",
			raw:  Hex("71 03 616263", "74 01 26"),
			want: []Record{
				{Tag: 0x71, Value: []byte("abc")},
				{Tag: 0x74, Value: []byte{0x26}},
			},
		},
		{
			name: "empty value",
			raw:  Hex("79 00"),
			want: []Record{{Tag: 0x79, Value: []byte{}}},
		},
		{
			name: "empty buffer",
			raw:  []byte{},
			want: nil,
		},
		{
			name:    "declared length exceeds buffer",
			raw:     Hex("71 05 6162"),
			wantErr: true,
		},
		{
			name:    "trailing byte after last record",
			raw:     Hex("71 01 61", "FF"),
			wantErr: true,
		},
		{
			name:    "bare tag without length",
			raw:     Hex("71"),
			wantErr: true,
		},
		{
			name:    "reserved length prefix",
			raw:     Hex("71 80 61"),
			wantErr: true,
		},
		{
			name:    "truncated two-byte header",
			raw:     Hex("71 81"),
			wantErr: true,
		},
		{
			name:    "truncated three-byte header",
			raw:     Hex("71 82 01"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeRecords() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The length encoding is BER definite-length compatible; a general BER-TLV
// decoder must agree with ours on every encoded field. Primitive-class tags
// are used here so the reference decoder does not recurse into the values.
func TestAppendField_BERCompatible(t *testing.T) {
	tests := []struct {
		name  string
		tag   byte
		value []byte
		pad   int
	}{
		{"short value", 0x50, []byte("abc"), 0},
		{"padded value", 0x5A, []byte("1234"), 12},
		{"two-byte length", 0x4F, make([]byte, 0x90), 0},
		{"three-byte length", 0x4F, make([]byte, 0x150), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := AppendField(nil, tt.tag, tt.value, tt.pad)
			if err != nil {
				t.Fatalf("AppendField failed: %v", err)
			}

			packets, err := bertlv.Decode(field)
			if err != nil {
				t.Fatalf("bertlv.Decode rejected our encoding: %v", err)
			}
			if len(packets) != 1 {
				t.Fatalf("expected 1 packet, got %d", len(packets))
			}

			if got := strings.ToUpper(packets[0].Tag); got != fmt.Sprintf("%02X", tt.tag) {
				t.Errorf("tag = %s, want %02X", got, tt.tag)
			}

			wantValue := append(append([]byte{}, tt.value...), make([]byte, tt.pad)...)
			if !bytes.Equal(packets[0].Value, wantValue) {
				t.Errorf("value mismatch: got %d bytes, want %d", len(packets[0].Value), len(wantValue))
			}
		})
	}
}

func TestMakeSafeASCII(t *testing.T) {
	got := MakeSafeASCII([]byte{0x41, 0x00, 0x62, 0x7F})
	if got != "A.b." {
		t.Errorf("MakeSafeASCII = %q, want %q", got, "A.b.")
	}
}

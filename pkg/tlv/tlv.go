// Package tlv implements the tag-length-value field encoding used inside
// the applet's command and response frames.
package tlv

import (
	"fmt"
)

// FIELD ENCODING:
// Each field is a single tag byte, a length header, and the value bytes.
// The length header uses the BER definite short/long forms restricted to
// 16-bit lengths:
//
//   n <= 0x7F:   [n]
//   n <= 0xFF:   [81 n]
//   n <= 0xFFFF: [82 hi lo]
//
// Secret fields (passwords, management keys) are padded on the wire to a
// fixed width: the length header covers value plus padding, and the padding
// is always zero bytes appended after the value. Padding is applied by the
// encoder, never by the caller.
//
// DECODING:
// A buffer is a contiguous run of fields with nothing in between. Decoding
// is strict: a length header that reaches past the end of the buffer, an
// unknown length prefix, or bytes left over after the last field are all
// errors. Garbled input is rejected, never truncated into a partial result.

// MaxLength is the largest value length the 16-bit header can carry.
const MaxLength = 0xFFFF

// Record is a single decoded tag-value pair. The Value slice aliases the
// input buffer.
type Record struct {
	Tag   byte
	Value []byte
}

// AppendLength appends the encoded length header for n to dst and returns
// the extended slice.
func AppendLength(dst []byte, n int) ([]byte, error) {
	switch {
	case n < 0 || n > MaxLength:
		return dst, fmt.Errorf("length %d outside [0, %d]", n, MaxLength)
	case n <= 0x7F:
		return append(dst, byte(n)), nil
	case n <= 0xFF:
		return append(dst, 0x81, byte(n)), nil
	default:
		return append(dst, 0x82, byte(n>>8), byte(n)), nil
	}
}

// AppendField appends a complete field to dst: the tag byte, the length
// header covering len(value)+pad, the value, and pad zero bytes. It returns
// the extended slice. Callers bound the total frame size; AppendField only
// rejects lengths the header cannot express.
func AppendField(dst []byte, tag byte, value []byte, pad int) ([]byte, error) {
	if pad < 0 {
		return dst, fmt.Errorf("negative padding %d", pad)
	}

	dst = append(dst, tag)
	dst, err := AppendLength(dst, len(value)+pad)
	if err != nil {
		return dst, err
	}

	dst = append(dst, value...)
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// DecodeRecords parses buf as a sequence of fields. It fails if any record
// declares more bytes than remain, or if the cursor does not land exactly on
// the end of the buffer.
func DecodeRecords(buf []byte) ([]Record, error) {
	var records []Record

	i := 0
	for i < len(buf) {
		if len(buf)-i < 2 {
			return nil, fmt.Errorf("truncated record at offset %d", i)
		}

		tag := buf[i]
		i++

		n, headerLen, err := decodeLength(buf[i:])
		if err != nil {
			return nil, fmt.Errorf("record 0x%02X at offset %d: %w", tag, i-1, err)
		}
		i += headerLen

		if n > len(buf)-i {
			return nil, fmt.Errorf("record 0x%02X declares %d bytes, only %d remain", tag, n, len(buf)-i)
		}

		records = append(records, Record{Tag: tag, Value: buf[i : i+n]})
		i += n
	}

	return records, nil
}

// decodeLength reads one length header and returns the value length and the
// number of header bytes consumed.
func decodeLength(buf []byte) (int, int, error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("missing length header")
	}

	switch b := buf[0]; {
	case b <= 0x7F:
		return int(b), 1, nil
	case b == 0x81:
		if len(buf) < 2 {
			return 0, 0, fmt.Errorf("truncated 2-byte length header")
		}
		return int(buf[1]), 2, nil
	case b == 0x82:
		if len(buf) < 3 {
			return 0, 0, fmt.Errorf("truncated 3-byte length header")
		}
		return int(buf[1])<<8 | int(buf[2]), 3, nil
	default:
		return 0, 0, fmt.Errorf("unsupported length prefix 0x%02X", b)
	}
}

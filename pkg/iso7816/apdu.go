package iso7816

import (
	"fmt"

	"github.com/cardkit/hsmauth/pkg/tlv"
)

// APDU (Application Protocol Data Unit) structures according to ISO/IEC
// 7816-3 and 7816-4, restricted to the short encoding.
//
// COMMAND APDU (C-APDU):
//   - CLA (Class), INS (Instruction), P1, P2: 4-byte header.
//   - Lc: number of data bytes, always present (0 for a bare header).
//   - Data: at most 255 bytes of TLV-encoded fields.
//
// The applet speaks T=1 with short frames only, so there is no Le field and
// no extended-length mode: the card returns whatever the command produces.
//
// RESPONSE APDU (R-APDU):
//   - Data: variable-length payload, possibly empty.
//   - SW1, SW2: mandatory 2-byte trailer (Status Word).

// APDU limits for the short encoding.
const (
	// HeaderLen is the fixed command header size: CLA, INS, P1, P2, Lc.
	HeaderLen = 5

	// MaxData is the maximum data length (Nc) encodable in a short frame.
	MaxData = 255
)

// CommandAPDU represents a command sent to the card.
type CommandAPDU struct {
	Class       byte
	Instruction byte
	P1, P2      byte
	Data        []byte
}

// NewCommandAPDU creates a command with an empty data field.
func NewCommandAPDU(cla, ins, p1, p2 byte) *CommandAPDU {
	return &CommandAPDU{
		Class:       cla,
		Instruction: ins,
		P1:          p1,
		P2:          p2,
	}
}

// AddField appends one TLV field (tag, length of value+pad, value, zero
// padding) to the command data. It fails if the grown data field would no
// longer fit a short frame; the frame is left unchanged on error.
func (c *CommandAPDU) AddField(tag byte, value []byte, pad int) error {
	grown, err := tlv.AppendField(c.Data, tag, value, pad)
	if err != nil {
		return fmt.Errorf("field 0x%02X: %w", tag, err)
	}
	if len(grown) > MaxData {
		return fmt.Errorf("field 0x%02X: data length %d exceeds short-frame limit %d",
			tag, len(grown), MaxData)
	}
	c.Data = grown
	return nil
}

// Bytes encodes the CommandAPDU into its byte representation (C-APDU).
func (c *CommandAPDU) Bytes() ([]byte, error) {
	if len(c.Data) > MaxData {
		return nil, fmt.Errorf("data length %d exceeds short-frame limit %d", len(c.Data), MaxData)
	}

	buf := make([]byte, 0, HeaderLen+len(c.Data))
	buf = append(buf, c.Class, c.Instruction, c.P1, c.P2, byte(len(c.Data)))
	buf = append(buf, c.Data...)
	return buf, nil
}

// String returns a readable representation of the command meta-data.
func (c *CommandAPDU) String() string {
	return fmt.Sprintf("CLA: %02X | INS: %02X | P1: %02X, P2: %02X | Lc: %d",
		c.Class, c.Instruction, c.P1, c.P2, len(c.Data))
}

// ResponseAPDU represents the reply from the card (R-APDU).
type ResponseAPDU struct {
	Data   []byte
	Status StatusWord
}

// ParseResponseAPDU parses raw bytes received from the card into a
// ResponseAPDU. The input must contain at least 2 bytes (SW1, SW2).
func ParseResponseAPDU(raw []byte) (*ResponseAPDU, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("response too short: length %d", len(raw))
	}

	indexSW1 := len(raw) - 2
	return &ResponseAPDU{
		Data:   raw[:indexSW1],
		Status: NewStatusWord(raw[indexSW1], raw[indexSW1+1]),
	}, nil
}

// String returns a readable representation of the response.
func (r *ResponseAPDU) String() string {
	return fmt.Sprintf("Data (%d bytes) | Status: %s", len(r.Data), r.Status.Verbose())
}

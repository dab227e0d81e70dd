package hsmauth

import (
	"fmt"
	"io"

	"github.com/cardkit/hsmauth/pkg/iso7816"
	"github.com/cardkit/hsmauth/pkg/tlv"
)

// CLIENT & PROTOCOL LOGIC:
// The Client drives the applet over a Transmitter. Every operation is one
// synchronous exchange: validate arguments, build the TLV data field, send
// the frame, split the response into payload and status word. Nothing is
// retried and no state is kept between commands; the applet's retry
// counters and credential store live on the card.

// Client manages the high-level communication with the applet.
type Client struct {
	Card iso7816.Transmitter

	// Trace, when set, receives a hex dump of every frame sent and
	// received. Frames carry passwords and key material; only wire traces
	// of test devices belong in logs.
	Trace io.Writer
}

// NewClient creates a new Client instance.
func NewClient(card iso7816.Transmitter) *Client {
	return &Client{Card: card}
}

// newCommand starts a command frame for the applet: class 0x00, applet
// instruction, fixed parameters.
func newCommand(ins, p1, p2 byte) *iso7816.CommandAPDU {
	return iso7816.NewCommandAPDU(0x00, ins, p1, p2)
}

// exchange sends one command frame and returns the response payload and
// status word. A transport or framing failure yields a typed error and a
// zero status.
func (c *Client) exchange(cmd *iso7816.CommandAPDU) ([]byte, iso7816.StatusWord, *Error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return nil, 0, errGeneric("encoding failed: %v", err)
	}

	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "> %X\n", raw)
		if len(raw) > iso7816.HeaderLen {
			fmt.Fprintln(c.Trace, tlv.Describe(raw[iso7816.HeaderLen:]))
		}
	}

	rawResp, err := c.Card.Transmit(raw)
	if err != nil {
		return nil, 0, errTransport(err)
	}

	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "< %X\n", rawResp)
	}

	resp, err := iso7816.ParseResponseAPDU(rawResp)
	if err != nil {
		return nil, 0, errGeneric("malformed response: %v", err)
	}

	return resp.Data, resp.Status, nil
}

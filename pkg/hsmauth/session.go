package hsmauth

import (
	"fmt"
	"strings"

	"github.com/ebfe/scard"

	"github.com/cardkit/hsmauth/pkg/iso7816"
)

// PC/SC session handling. The Session owns one PC/SC context and one card
// connection for its whole lifetime; it satisfies iso7816.Transmitter, so
// a Client can drive the applet over it. One logical session owns the
// transport exclusively; concurrent callers need their own Session.

// insSelect is the interindustry SELECT instruction used once per
// connection to select the applet by AID.
const insSelect byte = 0xA4

// Session is an open connection to a card running the applet.
type Session struct {
	ctx  *scard.Context
	card *scard.Card

	// Reader is the name of the PC/SC reader the card was found in.
	Reader string
}

// ListReaders returns the names of the smart-card readers currently
// attached.
func ListReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing PC/SC context: %w", err)
	}
	defer ctx.Release()

	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("listing readers: %w", err)
	}
	return readers, nil
}

// Connect opens the first reader whose name contains wanted
// (case-insensitive; empty matches any reader) and selects the applet.
// Readers that fail to connect or do not host the applet are skipped.
func Connect(wanted string) (*Session, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing PC/SC context: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		ctx.Release()
		return nil, fmt.Errorf("no smart-card reader found: %v", err)
	}

	want := strings.ToLower(wanted)
	for _, reader := range readers {
		if want != "" && !strings.Contains(strings.ToLower(reader), want) {
			continue
		}

		card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT1)
		if err != nil {
			continue
		}

		if err := selectApplet(card); err != nil {
			card.Disconnect(scard.ResetCard)
			continue
		}

		return &Session{ctx: ctx, card: card, Reader: reader}, nil
	}

	ctx.Release()
	return nil, fmt.Errorf("no usable reader matching %q", wanted)
}

// selectApplet sends SELECT by AID and checks the card hosts the applet.
func selectApplet(card *scard.Card) error {
	cmd := iso7816.NewCommandAPDU(0x00, insSelect, 0x04, 0x00)
	cmd.Data = AID

	raw, err := cmd.Bytes()
	if err != nil {
		return err
	}

	rawResp, err := card.Transmit(raw)
	if err != nil {
		return fmt.Errorf("transmitting SELECT: %w", err)
	}

	resp, err := iso7816.ParseResponseAPDU(rawResp)
	if err != nil {
		return err
	}
	if !resp.Status.IsSuccess() {
		return fmt.Errorf("applet selection failed: %s", resp.Status.Verbose())
	}
	return nil
}

// Transmit sends one raw command frame to the card. It implements
// iso7816.Transmitter.
func (s *Session) Transmit(cmd []byte) ([]byte, error) {
	if s == nil || s.card == nil {
		return nil, fmt.Errorf("session not connected")
	}
	return s.card.Transmit(cmd)
}

// Close disconnects the card (resetting it, which drops the applet's
// security state) and releases the PC/SC context. The Session must not be
// used afterwards.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	var firstErr error
	if s.card != nil {
		if err := s.card.Disconnect(scard.ResetCard); err != nil {
			firstErr = err
		}
		s.card = nil
	}
	if s.ctx != nil {
		if err := s.ctx.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.ctx = nil
	}
	return firstErr
}

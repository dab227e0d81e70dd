package hsmauth

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cardkit/hsmauth/pkg/tlv"
)

func TestReset_WireFormat(t *testing.T) {
	card := okCard(nil)
	client := NewClient(card)

	if err := client.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	expected := tlv.Hex("00 06 DE AD 00")
	if !bytes.Equal(card.sent[0], expected) {
		t.Errorf("frame mismatch\nExpected: %X\nGot:      %X", expected, card.sent[0])
	}
}

func TestReset_Failure(t *testing.T) {
	client := NewClient(swCard(0x6D00))

	err := client.Reset()
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrNotSupported {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

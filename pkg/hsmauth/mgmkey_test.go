package hsmauth

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cardkit/hsmauth/pkg/tlv"
)

func TestChangeManagementKey_WireFormat(t *testing.T) {
	card := okCard(nil)
	client := NewClient(card)

	newKey := tlv.Hex("000102030405060708090A0B0C0D0E0F")
	if err := client.ChangeManagementKey(DefaultManagementKey, newKey); err != nil {
		t.Fatalf("ChangeManagementKey failed: %v", err)
	}

	expected := tlv.Hex(
		"00 08 00 00 24", // header, Lc = 36
		"7B 10", "00000000000000000000000000000000",
		"7B 10", "000102030405060708090A0B0C0D0E0F",
	)
	if !bytes.Equal(card.sent[0], expected) {
		t.Errorf("frame mismatch\nExpected: %X\nGot:      %X", expected, card.sent[0])
	}
}

func TestChangeManagementKey_Validation(t *testing.T) {
	tests := []struct {
		name   string
		oldKey []byte
		newKey []byte
	}{
		{"short current key", make([]byte, 15), make([]byte, 16)},
		{"short new key", make([]byte, 16), make([]byte, 15)},
		{"nil new key", make([]byte, 16), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &stubCard{}
			client := NewClient(card)

			err := client.ChangeManagementKey(tt.oldKey, tt.newKey)
			var e *Error
			if !errors.As(err, &e) || e.Kind != ErrInvalidParams {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
			if len(card.sent) != 0 {
				t.Errorf("invalid input reached the wire")
			}
		})
	}
}

func TestChangeManagementKey_WrongKey(t *testing.T) {
	client := NewClient(swCard(0x63C1))

	err := client.ChangeManagementKey(make([]byte, 16), make([]byte, 16))
	retries, ok := WrongCredentialRetries(err)
	if !ok {
		t.Fatalf("expected ErrWrongCredential, got %v", err)
	}
	if retries != 1 {
		t.Errorf("expected 1 retry, got %d", retries)
	}
}

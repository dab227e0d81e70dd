package hsmauth

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cardkit/hsmauth/pkg/tlv"
)

func TestDecodeCredentialList(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		expected []Credential
	}{
		{
			name:     "empty store",
			payload:  nil,
			expected: nil,
		},
		{
			name:    "single entry",
			payload: tlv.Hex("72 06 26 01 616263 05"),
			expected: []Credential{
				{Label: "abc", Algorithm: AlgorithmAES128, Touch: TouchRequired, Counter: 5},
			},
		},
		{
			name:    "mixed algorithms",
			payload: tlv.Hex("72 06 26 00 616263 08", "72 09 27 01 7369676E6572 03"),
			expected: []Credential{
				{Label: "abc", Algorithm: AlgorithmAES128, Touch: TouchOff, Counter: 8},
				{Label: "signer", Algorithm: AlgorithmECP256, Touch: TouchRequired, Counter: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := decodeCredentialList(tt.payload, maxCredentials)
			if err != nil {
				t.Fatalf("decodeCredentialList failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, creds); diff != "" {
				t.Errorf("credentials mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCredentialList_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		kind    ErrorKind
	}{
		{"unexpected tag", tlv.Hex("71 06 26 01 616263 05"), ErrGeneric},
		{"length past end of payload", tlv.Hex("72 20 26 01 616263 05"), ErrGeneric},
		{"length below minimum", tlv.Hex("72 02 26 01"), ErrGeneric},
		{"label above maximum", append(tlv.Hex("72 44 26 01"), make([]byte, 0x44-2)...), ErrGeneric},
		{"trailing byte", tlv.Hex("72 06 26 01 616263 05 72"), ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCredentialList(tt.payload, maxCredentials)
			if err == nil {
				t.Fatal("expected an error, got none")
			}
			if err.Kind != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, err.Kind)
			}
		})
	}
}

func TestDecodeCredentialList_Capacity(t *testing.T) {
	payload := tlv.Hex("72 04 26 00 61 05", "72 04 26 00 62 05")

	if _, err := decodeCredentialList(payload, 2); err != nil {
		t.Fatalf("two entries within limit failed: %v", err)
	}

	_, err := decodeCredentialList(payload, 1)
	if err == nil || err.Kind != ErrMemory {
		t.Fatalf("expected ErrMemory, got %v", err)
	}
}

func TestListCredentials(t *testing.T) {
	card := okCard(tlv.Hex("72 06 26 01 616263 00"))
	client := NewClient(card)

	creds, err := client.ListCredentials()
	if err != nil {
		t.Fatalf("ListCredentials failed: %v", err)
	}

	expected := []Credential{
		{Label: "abc", Algorithm: AlgorithmAES128, Touch: TouchRequired, Counter: 0},
	}
	if diff := cmp.Diff(expected, creds); diff != "" {
		t.Errorf("credentials mismatch (-expected +got):\n%s", diff)
	}

	expectedFrame := tlv.Hex("00 05 00 00 00")
	if len(card.sent) != 1 || !bytes.Equal(card.sent[0], expectedFrame) {
		t.Errorf("expected frame %X, got %X", expectedFrame, card.sent)
	}
}

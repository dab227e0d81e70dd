package hsmauth

import "fmt"

// AID is the application identifier the applet is selected by.
var AID = []byte{0xA0, 0x00, 0x00, 0x05, 0x27, 0x21, 0x07}

// Instruction codes of the applet. These live in the applet's own command
// space, not the interindustry INS table.
const (
	insPutCredential           byte = 0x01
	insDeleteCredential        byte = 0x02
	insCalculate               byte = 0x03
	insGetChallenge            byte = 0x04
	insListCredentials         byte = 0x05
	insReset                   byte = 0x06
	insGetVersion              byte = 0x07
	insPutManagementKey        byte = 0x08
	insGetManagementKeyRetries byte = 0x09
	insGetPublicKey            byte = 0x0A
)

// Reset is guarded by a magic P1/P2 pair so a stray frame cannot wipe the
// credential store.
const (
	p1Reset byte = 0xDE
	p2Reset byte = 0xAD
)

// Field tags used in command and response data. The asymmetric public and
// private key fields reuse the tag values of the symmetric key halves.
const (
	tagLabel     byte = 0x71
	tagLabelList byte = 0x72
	tagPassword  byte = 0x73
	tagAlgorithm byte = 0x74
	tagKeyEnc    byte = 0x75
	tagKeyMAC    byte = 0x76
	tagContext   byte = 0x77
	tagResponse  byte = 0x78
	tagVersion   byte = 0x79
	tagTouch     byte = 0x7A
	tagMgmKey    byte = 0x7B

	tagPublicKey  = tagKeyEnc
	tagPrivateKey = tagKeyMAC
)

// Protocol constants. These are fixed by the applet, not tunables.
const (
	// MinLabelLen and MaxLabelLen bound a credential label.
	MinLabelLen = 1
	MaxLabelLen = 64

	// ManagementKeyLen is the exact length of the management key, and
	// PasswordLen the fixed wire width credential passwords are
	// zero-padded to.
	ManagementKeyLen = 16
	PasswordLen      = 16

	// SessionKeyLen is the length of each derived session key.
	SessionKeyLen = 16

	// ContextLen is the usual length of the derivation context (host
	// challenge plus card challenge); Calculate accepts anything up to
	// MaxContextLen for asymmetric handshakes.
	ContextLen    = 16
	MaxContextLen = 2 * ECP256PubKeyLen

	// CardCryptoLen is the symmetric card-cryptogram length. A cryptogram
	// longer than this is a genuine asymmetric proof of possession and is
	// forwarded to the card.
	CardCryptoLen = 8

	// ECP256PubKeyLen is the length of an uncompressed P-256 point,
	// ECP256PrivKeyLen of a P-256 scalar.
	ECP256PubKeyLen  = 65
	ECP256PrivKeyLen = 32

	// AES128KeyLen is the combined length of the two 16-byte credential
	// key halves (encryption and MAC).
	AES128KeyLen = 32

	// maxCredentials is the applet's credential store capacity.
	maxCredentials = 32
)

// DefaultManagementKey is the management key of a factory-fresh device.
var DefaultManagementKey = make([]byte, ManagementKeyLen)

// Algorithm identifies the type of a stored credential.
type Algorithm byte

const (
	// AlgorithmAES128 is a symmetric credential: two AES-128 key halves
	// used for SCP03-style challenge-response.
	AlgorithmAES128 Algorithm = 38

	// AlgorithmECP256 is an asymmetric credential: a P-256 private key
	// used for an ECDH-based handshake.
	AlgorithmECP256 Algorithm = 39
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAES128:
		return "AES128"
	case AlgorithmECP256:
		return "ECP256"
	default:
		return fmt.Sprintf("Algorithm(%d)", byte(a))
	}
}

// TouchPolicy controls whether using a credential requires a physical
// touch on the device.
type TouchPolicy byte

const (
	TouchOff      TouchPolicy = 0
	TouchRequired TouchPolicy = 1
)

func (t TouchPolicy) String() string {
	switch t {
	case TouchOff:
		return "off"
	case TouchRequired:
		return "required"
	default:
		return fmt.Sprintf("TouchPolicy(%d)", byte(t))
	}
}

// validateLabel checks the shared label precondition: every operation that
// addresses a credential rejects an out-of-bounds label before it builds a
// frame.
func validateLabel(label string) *Error {
	if len(label) < MinLabelLen || len(label) > MaxLabelLen {
		return errInvalid("label length %d outside [%d, %d]", len(label), MinLabelLen, MaxLabelLen)
	}
	return nil
}

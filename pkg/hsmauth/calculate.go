package hsmauth

// SESSION KEY DERIVATION:
// The calculate command is the host half of a SCP03-style key agreement.
// The label selects the credential (and with it the algorithm), the
// context binds the derivation to one transaction. For a symmetric
// credential the context is host challenge || card challenge; for an
// asymmetric credential the card's ephemeral public key and its cryptogram
// (proof of possession) ride along as extra fields. The cryptogram field
// is only sent when it is longer than the symmetric minimum; a short one
// is a placeholder, not a proof.
//
// On success the card returns exactly three session keys back to back.
// The host splits them and rejects any other response length; it performs
// no cryptography itself.

// SessionKeys is the triple derived by a successful calculate exchange.
type SessionKeys struct {
	// Enc encrypts commands on the secure channel.
	Enc [SessionKeyLen]byte

	// MAC authenticates commands, RMAC authenticates responses.
	MAC  [SessionKeyLen]byte
	RMAC [SessionKeyLen]byte
}

// CalculateSessionKeys runs the challenge-response derivation for the
// credential stored under label. cardPubKey and cardCrypto may be nil for
// symmetric credentials. password may be shorter than PasswordLen; the
// encoder pads it on the wire.
//
// A wrong password returns an ErrWrongCredential error carrying the
// remaining retries; retries 0 means the credential is locked.
func (c *Client) CalculateSessionKeys(label string, context, cardPubKey, cardCrypto, password []byte) (*SessionKeys, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if len(context) == 0 || len(context) > MaxContextLen {
		return nil, errInvalid("context length %d outside [1, %d]", len(context), MaxContextLen)
	}
	if len(cardPubKey) > ECP256PubKeyLen {
		return nil, errInvalid("card public key length %d exceeds %d", len(cardPubKey), ECP256PubKeyLen)
	}
	if len(cardCrypto) > SessionKeyLen {
		return nil, errInvalid("card cryptogram length %d exceeds %d", len(cardCrypto), SessionKeyLen)
	}
	if len(password) > PasswordLen {
		return nil, errInvalid("password length %d exceeds %d", len(password), PasswordLen)
	}

	cmd := newCommand(insCalculate, 0x00, 0x00)

	if err := cmd.AddField(tagLabel, []byte(label), 0); err != nil {
		return nil, errInvalid("%v", err)
	}
	if err := cmd.AddField(tagContext, context, 0); err != nil {
		return nil, errInvalid("%v", err)
	}

	if len(cardPubKey) > 0 {
		if err := cmd.AddField(tagPublicKey, cardPubKey, 0); err != nil {
			return nil, errInvalid("%v", err)
		}
	}

	// A cryptogram at or below the symmetric length is not a proof of
	// possession and stays off the wire.
	if len(cardCrypto) > CardCryptoLen {
		if err := cmd.AddField(tagResponse, cardCrypto, 0); err != nil {
			return nil, errInvalid("%v", err)
		}
	}

	if err := cmd.AddField(tagPassword, password, PasswordLen-len(password)); err != nil {
		return nil, errInvalid("%v", err)
	}

	data, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return nil, xerr
	}
	if !sw.IsSuccess() {
		return nil, translateStatus(sw)
	}

	if len(data) != 3*SessionKeyLen {
		return nil, errGeneric("derivation returned %d bytes, want %d", len(data), 3*SessionKeyLen)
	}

	var keys SessionKeys
	copy(keys.Enc[:], data[:SessionKeyLen])
	copy(keys.MAC[:], data[SessionKeyLen:2*SessionKeyLen])
	copy(keys.RMAC[:], data[2*SessionKeyLen:])
	return &keys, nil
}

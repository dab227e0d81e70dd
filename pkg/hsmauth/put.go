package hsmauth

// PUT CREDENTIAL:
// Stores a credential on the card under a unique label. The data field
// carries, in order: management key, label, algorithm, key material,
// credential password (zero-padded to its fixed width), touch policy.
// An AES-128 credential is written as two separate 16-byte halves
// (encryption and MAC); a P-256 credential as one private-key field.

// PutCredential stores a credential on the card. key is the raw key
// material: AES128KeyLen bytes for AlgorithmAES128 (both halves
// concatenated), up to ECP256PrivKeyLen bytes for AlgorithmECP256.
// password authorizes later use of the credential and may be shorter than
// PasswordLen; the encoder pads it on the wire.
//
// A wrong management key returns an ErrWrongCredential error carrying the
// remaining retries.
func (c *Client) PutCredential(mgmKey []byte, label string, algo Algorithm, key, password []byte, touch TouchPolicy) error {
	if len(mgmKey) != ManagementKeyLen {
		return errInvalid("management key length %d, want %d", len(mgmKey), ManagementKeyLen)
	}
	if err := validateLabel(label); err != nil {
		return err
	}
	if len(key) > ECP256PrivKeyLen {
		return errInvalid("key length %d exceeds %d", len(key), ECP256PrivKeyLen)
	}
	if len(password) > PasswordLen {
		return errInvalid("password length %d exceeds %d", len(password), PasswordLen)
	}

	cmd := newCommand(insPutCredential, 0x00, 0x00)

	if err := cmd.AddField(tagMgmKey, mgmKey, 0); err != nil {
		return errInvalid("%v", err)
	}
	if err := cmd.AddField(tagLabel, []byte(label), 0); err != nil {
		return errInvalid("%v", err)
	}
	if err := cmd.AddField(tagAlgorithm, []byte{byte(algo)}, 0); err != nil {
		return errInvalid("%v", err)
	}

	switch algo {
	case AlgorithmAES128:
		half := len(key) / 2
		if err := cmd.AddField(tagKeyEnc, key[:half], 0); err != nil {
			return errInvalid("%v", err)
		}
		if err := cmd.AddField(tagKeyMAC, key[half:], 0); err != nil {
			return errInvalid("%v", err)
		}
	case AlgorithmECP256:
		if err := cmd.AddField(tagPrivateKey, key, 0); err != nil {
			return errInvalid("%v", err)
		}
	default:
		return errInvalid("unknown algorithm %d", byte(algo))
	}

	if err := cmd.AddField(tagPassword, password, PasswordLen-len(password)); err != nil {
		return errInvalid("%v", err)
	}
	if err := cmd.AddField(tagTouch, []byte{byte(touch)}, 0); err != nil {
		return errInvalid("%v", err)
	}

	_, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return xerr
	}
	if !sw.IsSuccess() {
		return translateStatus(sw)
	}
	return nil
}

package hsmauth

import "fmt"

// Read-only queries: challenge, public key, firmware version, management
// key retry counter. Each is a single fixed exchange whose payload is
// copied out verbatim.

// GetChallenge asks the card for the challenge that starts a handshake
// with the credential stored under label: 8 bytes for a symmetric
// credential, an uncompressed ephemeral public key for an asymmetric one.
func (c *Client) GetChallenge(label string) ([]byte, error) {
	return c.labelQuery(insGetChallenge, label)
}

// GetPublicKey returns the public part of the asymmetric credential stored
// under label, as an uncompressed P-256 point.
func (c *Client) GetPublicKey(label string) ([]byte, error) {
	return c.labelQuery(insGetPublicKey, label)
}

// labelQuery is the shared shape of GetChallenge and GetPublicKey: one
// label field out, one opaque blob back.
func (c *Client) labelQuery(ins byte, label string) ([]byte, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	cmd := newCommand(ins, 0x00, 0x00)
	if err := cmd.AddField(tagLabel, []byte(label), 0); err != nil {
		return nil, errInvalid("%v", err)
	}

	data, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return nil, xerr
	}
	if !sw.IsSuccess() {
		return nil, translateStatus(sw)
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// GetVersion returns the applet firmware version as "major.minor.patch".
func (c *Client) GetVersion() (string, error) {
	cmd := newCommand(insGetVersion, 0x00, 0x00)

	data, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return "", xerr
	}
	if !sw.IsSuccess() {
		return "", translateStatus(sw)
	}

	if len(data) != 3 {
		return "", errGeneric("version response is %d bytes, want 3", len(data))
	}
	return fmt.Sprintf("%d.%d.%d", data[0], data[1], data[2]), nil
}

// GetManagementKeyRetries returns the number of wrong management-key
// attempts left before the key locks.
func (c *Client) GetManagementKeyRetries() (byte, error) {
	cmd := newCommand(insGetManagementKeyRetries, 0x00, 0x00)

	data, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return 0, xerr
	}
	if !sw.IsSuccess() {
		return 0, translateStatus(sw)
	}

	if len(data) < 1 {
		return 0, errGeneric("empty retry counter response")
	}
	return data[0], nil
}

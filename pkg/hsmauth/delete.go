package hsmauth

// DeleteCredential removes the credential stored under label. A wrong
// management key returns an ErrWrongCredential error carrying the
// remaining retries; a missing label returns ErrEntryNotFound.
func (c *Client) DeleteCredential(mgmKey []byte, label string) error {
	if len(mgmKey) != ManagementKeyLen {
		return errInvalid("management key length %d, want %d", len(mgmKey), ManagementKeyLen)
	}
	if err := validateLabel(label); err != nil {
		return err
	}

	cmd := newCommand(insDeleteCredential, 0x00, 0x00)

	if err := cmd.AddField(tagMgmKey, mgmKey, 0); err != nil {
		return errInvalid("%v", err)
	}
	if err := cmd.AddField(tagLabel, []byte(label), 0); err != nil {
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

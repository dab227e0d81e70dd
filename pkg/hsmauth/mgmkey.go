package hsmauth

// ChangeManagementKey replaces the management key. Both keys must be
// exactly ManagementKeyLen bytes; they are sent as two management-key
// fields, current first. A wrong current key returns an ErrWrongCredential
// error carrying the remaining retries.
func (c *Client) ChangeManagementKey(oldKey, newKey []byte) error {
	if len(oldKey) != ManagementKeyLen {
		return errInvalid("current management key length %d, want %d", len(oldKey), ManagementKeyLen)
	}
	if len(newKey) != ManagementKeyLen {
		return errInvalid("new management key length %d, want %d", len(newKey), ManagementKeyLen)
	}

	cmd := newCommand(insPutManagementKey, 0x00, 0x00)

	if err := cmd.AddField(tagMgmKey, oldKey, 0); err != nil {
		return errInvalid("%v", err)
	}
	if err := cmd.AddField(tagMgmKey, newKey, 0); err != nil {
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

package hsmauth

// Reset wipes the credential store and restores the default management
// key. The command carries no data; the magic P1/P2 pair is the only
// safeguard, so callers should confirm intent before issuing it.
func (c *Client) Reset() error {
	cmd := newCommand(insReset, p1Reset, p2Reset)

	_, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return xerr
	}
	if !sw.IsSuccess() {
		return translateStatus(sw)
	}
	return nil
}

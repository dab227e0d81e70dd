package hsmauth

// LIST RESPONSE LAYOUT:
// The payload is a run of list records, each a single-byte-length TLV:
//
//   [tag=0x72][len][algorithm][touch][label bytes...][counter]
//
// with len = 3 + label length. Decoding is strict: an unexpected tag, a
// record running past the payload, or leftover bytes after the last record
// reject the whole response. A garbled list is never truncated into a
// partial one.

// Credential describes one entry of the card's credential store, as
// reported by the list command.
type Credential struct {
	Label     string
	Algorithm Algorithm
	Touch     TouchPolicy

	// Counter is the credential's remaining retry count.
	Counter byte
}

// ListCredentials returns every credential stored on the card.
func (c *Client) ListCredentials() ([]Credential, error) {
	cmd := newCommand(insListCredentials, 0x00, 0x00)

	data, sw, xerr := c.exchange(cmd)
	if xerr != nil {
		return nil, xerr
	}
	if !sw.IsSuccess() {
		return nil, translateStatus(sw)
	}

	creds, derr := decodeCredentialList(data, maxCredentials)
	if derr != nil {
		return nil, derr
	}
	return creds, nil
}

// decodeCredentialList parses a list payload into at most limit entries.
// Exceeding limit reports ErrMemory without touching the overflowing
// record; that path is unreachable from a healthy card, whose store tops
// out at the applet capacity.
func decodeCredentialList(data []byte, limit int) ([]Credential, *Error) {
	var creds []Credential

	i := 0
	for i+1 < len(data) {
		if data[i] != tagLabelList {
			return nil, errGeneric("unexpected tag 0x%02X in list response", data[i])
		}
		i++

		length := int(data[i])
		i++

		if len(creds) >= limit {
			return nil, &Error{Kind: ErrMemory, detail: "list response exceeds capacity"}
		}
		if length > len(data)-i || length < 3 || length-3 > MaxLabelLen {
			return nil, errGeneric("list entry length %d inconsistent with %d remaining bytes", length, len(data)-i)
		}

		creds = append(creds, Credential{
			Algorithm: Algorithm(data[i]),
			Touch:     TouchPolicy(data[i+1]),
			Label:     string(data[i+2 : i+length-1]),
			Counter:   data[i+length-1],
		})
		i += length
	}

	if i != len(data) {
		return nil, errGeneric("trailing byte after last list record")
	}
	return creds, nil
}

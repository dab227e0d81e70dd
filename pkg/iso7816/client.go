package iso7816

// The physical connection is deliberately narrow: one raw command frame
// out, one raw response in. Protocol state, status handling and retries all
// live above this interface, which keeps card access stubbable in tests.

// Transmitter abstracts the physical card connection.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}

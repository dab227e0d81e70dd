package iso7816

import (
	"fmt"

	"github.com/cardkit/hsmauth/pkg/bits"
)

// Status Word Logic:
//
// Every response ends with a 2-byte Status Word (SW). Most values are
// static (0x9000 success, 0x6A82 file not found, ...), but ISO 7816-4
// reserves the '63CX' range for counter management: when the upper nibble
// of SW2 is 'C', the lower nibble carries a counter, typically the number
// of remaining verification attempts before a credential locks.

// StatusWord represents the two-byte status response (SW1-SW2) returned by
// the smart card.
type StatusWord uint16

// NewStatusWord creates a StatusWord instance from two separate bytes.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// SW1 returns the first byte (high byte) of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the second byte (low byte) of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// IsSuccess returns true if the command was processed successfully.
func (sw StatusWord) IsSuccess() bool {
	return sw == SW_NO_ERROR
}

// IsCounter checks if the status carries a verification counter (63CX).
func (sw StatusWord) IsCounter() bool {
	return sw.SW1() == 0x63 && bits.HighNibble(sw.SW2()) == 0x0C
}

// Counter returns the counter value of a 63CX status. Only meaningful when
// IsCounter reports true.
func (sw StatusWord) Counter() byte {
	return bits.LowNibble(sw.SW2())
}

// Verbose returns a human-readable description of the status word.
func (sw StatusWord) Verbose() string {
	if sw.IsCounter() {
		return fmt.Sprintf("[%04X] Verification failed, counter = %d", uint16(sw), sw.Counter())
	}

	desc := ""
	switch sw {
	case SW_NO_ERROR:
		desc = "No error"
	case SW_ERR_MEMORY_FAILURE:
		desc = "Memory failure"
	case SW_ERR_SECURITY_STATUS_NOT_SAT:
		desc = "Security status not satisfied"
	case SW_ERR_AUTH_METHOD_BLOCKED:
		desc = "Authentication method blocked"
	case SW_ERR_REF_DATA_NOT_USABLE:
		desc = "Reference data not usable"
	case SW_ERR_INCORRECT_PARAMS_DATA:
		desc = "Incorrect parameters in data field"
	case SW_ERR_FILE_NOT_FOUND:
		desc = "File not found"
	case SW_ERR_NOT_ENOUGH_MEMORY:
		desc = "Not enough memory space in file"
	case SW_ERR_INS_INVALID:
		desc = "Instruction not supported"
	default:
		desc = sw.genericCategoryDescription()
	}

	return fmt.Sprintf("[%04X] %s", uint16(sw), desc)
}

// genericCategoryDescription provides a fallback description based on SW1.
func (sw StatusWord) genericCategoryDescription() string {
	switch sw.SW1() {
	case 0x62:
		return "Warning: NV memory unchanged"
	case 0x63:
		return "Warning: NV memory changed"
	case 0x64:
		return "Execution Error: NV memory unchanged"
	case 0x65:
		return "Execution Error: NV memory changed"
	case 0x66:
		return "Execution Error: Security issue"
	case 0x68:
		return "Checking Error: Function not supported"
	case 0x69:
		return "Checking Error: Command not allowed"
	case 0x6A:
		return "Checking Error: Wrong parameters"
	default:
		return "Unknown Status"
	}
}

// Status Word codes defined in ISO/IEC 7816-4 and used by the applet.
const (
	SW_NO_ERROR StatusWord = 0x9000

	// Authentication failed with the remaining retry count in the low
	// nibble: mask the SW with SW_AUTH_FAILED_MASK and compare against
	// SW_AUTH_FAILED_BASE.
	SW_AUTH_FAILED_BASE StatusWord = 0x63C0
	SW_AUTH_FAILED_MASK StatusWord = 0xFFF0

	SW_ERR_MEMORY_FAILURE          StatusWord = 0x6581
	SW_ERR_SECURITY_STATUS_NOT_SAT StatusWord = 0x6982
	SW_ERR_AUTH_METHOD_BLOCKED     StatusWord = 0x6983
	SW_ERR_REF_DATA_NOT_USABLE     StatusWord = 0x6984
	SW_ERR_INCORRECT_PARAMS_DATA   StatusWord = 0x6A80
	SW_ERR_FILE_NOT_FOUND          StatusWord = 0x6A82
	SW_ERR_NOT_ENOUGH_MEMORY       StatusWord = 0x6A84
	SW_ERR_INS_INVALID             StatusWord = 0x6D00
)

// IsAuthFailed checks if the status belongs to the authentication-failed
// class (63C0-63CF). The remaining retry count is then Counter().
func (sw StatusWord) IsAuthFailed() bool {
	return sw&SW_AUTH_FAILED_MASK == SW_AUTH_FAILED_BASE
}

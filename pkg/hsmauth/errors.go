package hsmauth

import (
	"errors"
	"fmt"

	"github.com/cardkit/hsmauth/pkg/iso7816"
)

// ErrorKind classifies a failed operation. The first three kinds are
// produced by the host; the rest are translated from the card's status
// word.
type ErrorKind int

const (
	// ErrGeneric covers protocol inconsistencies detected on the host
	// (malformed TLV, wrong response length) and status words outside the
	// documented set.
	ErrGeneric ErrorKind = iota

	// ErrInvalidParams means a precondition was violated. Nothing was sent
	// to the card.
	ErrInvalidParams

	// ErrTransport means the exchange failed before a status word was
	// obtained.
	ErrTransport

	// ErrWrongCredential means the password or management key was wrong.
	// Retries holds the remaining attempts; 0 means locked.
	ErrWrongCredential

	// ErrStorageFull means the credential store has no free slot.
	ErrStorageFull

	// ErrEntryNotFound means no credential matches the label.
	ErrEntryNotFound

	// ErrMemory means the card reported a memory failure, or a list
	// response overflowed the caller's capacity.
	ErrMemory

	// ErrTouchRequired means the security condition (touch) was not
	// satisfied in time.
	ErrTouchRequired

	// ErrEntryInvalid means the addressed credential is unusable.
	ErrEntryInvalid

	// ErrDataInvalid means the card rejected the referenced data.
	ErrDataInvalid

	// ErrNotSupported means the applet does not implement the instruction.
	ErrNotSupported
)

func (k ErrorKind) String() string {
	switch k {
	case ErrGeneric:
		return "generic error"
	case ErrInvalidParams:
		return "invalid parameters"
	case ErrTransport:
		return "transport error"
	case ErrWrongCredential:
		return "wrong password or management key"
	case ErrStorageFull:
		return "storage full"
	case ErrEntryNotFound:
		return "entry not found"
	case ErrMemory:
		return "memory error"
	case ErrTouchRequired:
		return "touch not satisfied"
	case ErrEntryInvalid:
		return "entry invalid"
	case ErrDataInvalid:
		return "data invalid"
	case ErrNotSupported:
		return "not supported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the failure type returned by every operation.
type Error struct {
	Kind ErrorKind

	// Retries is the remaining attempt count, meaningful only for
	// ErrWrongCredential.
	Retries int

	// SW is the card status word the error was translated from; zero when
	// the failure never produced one.
	SW iso7816.StatusWord

	detail string
	cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == ErrWrongCredential {
		msg = fmt.Sprintf("%s (%d retries left)", msg, e.Retries)
	}
	if e.SW != 0 {
		msg = fmt.Sprintf("%s, status %04X", msg, uint16(e.SW))
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is lets errors.Is match against a bare kind-only *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func errInvalid(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidParams, detail: fmt.Sprintf(format, args...)}
}

func errGeneric(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrGeneric, detail: fmt.Sprintf(format, args...)}
}

func errTransport(cause error) *Error {
	return &Error{Kind: ErrTransport, cause: cause}
}

// translateStatus maps a non-success status word to a typed error. Success
// (9000) is checked by the caller and never routed through here; anything
// unrecognized, including the zero value, falls through to ErrGeneric.
func translateStatus(sw iso7816.StatusWord) *Error {
	if sw.IsAuthFailed() {
		return &Error{Kind: ErrWrongCredential, Retries: int(sw.Counter()), SW: sw}
	}

	switch sw {
	case iso7816.SW_ERR_NOT_ENOUGH_MEMORY:
		return &Error{Kind: ErrStorageFull, SW: sw}
	case iso7816.SW_ERR_FILE_NOT_FOUND:
		return &Error{Kind: ErrEntryNotFound, SW: sw}
	case iso7816.SW_ERR_INCORRECT_PARAMS_DATA:
		return &Error{Kind: ErrInvalidParams, SW: sw}
	case iso7816.SW_ERR_MEMORY_FAILURE:
		return &Error{Kind: ErrMemory, SW: sw}
	case iso7816.SW_ERR_SECURITY_STATUS_NOT_SAT:
		return &Error{Kind: ErrTouchRequired, SW: sw}
	case iso7816.SW_ERR_AUTH_METHOD_BLOCKED:
		return &Error{Kind: ErrEntryInvalid, SW: sw}
	case iso7816.SW_ERR_REF_DATA_NOT_USABLE:
		return &Error{Kind: ErrDataInvalid, SW: sw}
	case iso7816.SW_ERR_INS_INVALID:
		return &Error{Kind: ErrNotSupported, SW: sw}
	default:
		return &Error{Kind: ErrGeneric, SW: sw}
	}
}

// WrongCredentialRetries extracts the remaining retry count from a
// wrong-credential failure. ok is false for any other error, including nil.
func WrongCredentialRetries(err error) (retries int, ok bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == ErrWrongCredential {
		return e.Retries, true
	}
	return 0, false
}

// IsEntryNotFound checks if err reports a missing credential.
func IsEntryNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrEntryNotFound
}

// IsTouchRequired checks if err reports an unsatisfied touch condition.
func IsTouchRequired(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrTouchRequired
}

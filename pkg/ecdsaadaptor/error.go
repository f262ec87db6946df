package ecdsaadaptor

import "errors"

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidLength is returned when serialized input does not have the
	// exact expected size.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrParse is returned when serialized input has the right size but
	// contains an invalid point or a scalar that is not below the group
	// order.
	ErrParse = ErrorKind("ErrParse")

	// ErrInvalidAdaptorSignature is returned when an adaptor signature does
	// not satisfy the verification equation or cannot be completed.
	ErrInvalidAdaptorSignature = ErrorKind("ErrInvalidAdaptorSignature")

	// ErrInvalidProof is returned when the DLEQ proof embedded in an adaptor
	// signature does not verify.
	ErrInvalidProof = ErrorKind("ErrInvalidProof")

	// ErrInvalidSignature is returned when a completed signature handed to
	// recovery has a zero component.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")

	// ErrCannotDecryptAdaptorSignature is returned when decryption produces
	// a degenerate signature.
	ErrCannotDecryptAdaptorSignature = ErrorKind("ErrCannotDecryptAdaptorSignature")

	// ErrCannotRecoverAdaptorSecret is returned when the completed signature
	// does not correspond to the adaptor signature and encryption key.
	ErrCannotRecoverAdaptorSecret = ErrorKind("ErrCannotRecoverAdaptorSecret")

	// ErrCannotVerifyAdaptorSignature is matched by every verification
	// failure in addition to its specific kind.
	ErrCannotVerifyAdaptorSignature = ErrorKind("ErrCannotVerifyAdaptorSignature")

	// ErrInvalidMessage is returned when a message digest is not 32 bytes.
	ErrInvalidMessage = ErrorKind("ErrInvalidMessage")

	// ErrInvalidSecretKey is returned for a missing or zero secret key.
	ErrInvalidSecretKey = ErrorKind("ErrInvalidSecretKey")

	// ErrInvalidEncryptionKey is returned for a missing encryption key.
	ErrInvalidEncryptionKey = ErrorKind("ErrInvalidEncryptionKey")

	// ErrNonceExhausted is returned when no usable nonce was found within
	// the resampling limit.
	ErrNonceExhausted = ErrorKind("ErrNonceExhausted")

	// ErrRandomnessUnavailable is returned when auxiliary randomness could
	// not be read.
	ErrRandomnessUnavailable = ErrorKind("ErrRandomnessUnavailable")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to adaptor signatures. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// adaptorError creates an Error given a set of arguments.
func adaptorError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// verifyError creates an Error that matches both ErrCannotVerifyAdaptorSignature
// and the given kind.
func verifyError(kind ErrorKind, desc string) Error {
	return Error{
		Err:         errors.Join(ErrCannotVerifyAdaptorSignature, kind),
		Description: desc,
	}
}

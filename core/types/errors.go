package types

import "errors"

// Construction and conversion failure kinds. Every error returned by this
// package wraps exactly one of these sentinels, so callers branch with
// errors.Is instead of string matching.
var (
	// ErrValidation covers malformed hex, wrong fixed-width byte lengths and
	// inconsistent partial signatures.
	ErrValidation = errors.New("transaction validation failed")

	// ErrTypeMismatch is returned when a loosely typed field value has a shape
	// this package does not recognize.
	ErrTypeMismatch = errors.New("unrecognized field value type")

	// ErrRange is returned when a numeric field is negative or exceeds its
	// byte-width budget.
	ErrRange = errors.New("field value out of range")

	// ErrUnsupportedField is returned when a populated field is forbidden for
	// the target transaction type, e.g. gasPrice on a dynamic fee transaction.
	ErrUnsupportedField = errors.New("field not supported by transaction type")

	// ErrDecode is returned when a positional values array has a length
	// outside the set accepted by the transaction type.
	ErrDecode = errors.New("invalid values array")

	// ErrTxTypeNotSupported is returned for type discriminants outside the
	// known transaction type set.
	ErrTxTypeNotSupported = errors.New("transaction type not supported")
)

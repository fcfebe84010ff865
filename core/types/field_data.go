package types

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// TxFieldData carries loosely typed transaction fields, as produced by JSON
// decoding or assembled ad hoc by a caller. Numeric fields accept Go integer
// types, *big.Int, *uint256.Int, big-endian []byte, and "0x"-prefixed hex or
// decimal strings. Byte fields accept []byte or "0x"-prefixed hex strings.
// Nil means absent. Construction normalizes every field to its canonical
// internal form or fails; no partially normalized transaction is observable.
type TxFieldData struct {
	Type                 any
	ChainID              any
	Nonce                any
	GasPrice             any
	MaxPriorityFeePerGas any
	MaxFeePerGas         any
	GasLimit             any
	To                   any
	Value                any
	Data                 any
	AccessList           any
	V                    any
	R                    any
	S                    any
}

// normalizeBigInt coerces a loose numeric value to a non-negative *big.Int of
// at most 32 bytes. Nil input yields nil (absent).
func normalizeBigInt(field string, input any) (*big.Int, error) {
	var x *big.Int
	switch v := input.(type) {
	case nil:
		return nil, nil
	case *big.Int:
		if v == nil {
			return nil, nil
		}
		x = new(big.Int).Set(v)
	case *uint256.Int:
		if v == nil {
			return nil, nil
		}
		x = v.ToBig()
	case uint64:
		x = new(big.Int).SetUint64(v)
	case uint:
		x = new(big.Int).SetUint64(uint64(v))
	case int:
		x = big.NewInt(int64(v))
	case int64:
		x = big.NewInt(v)
	case float64:
		// JSON numbers decode to float64; only integral values are valid.
		if v != float64(int64(v)) {
			return nil, fmt.Errorf("%w: %s: non-integer number %v", ErrValidation, field, v)
		}
		x = big.NewInt(int64(v))
	case []byte:
		x = new(big.Int).SetBytes(v)
	case string:
		var err error
		if x, err = parseBigString(v); err != nil {
			return nil, fmt.Errorf("%w: %s", err, field)
		}
	default:
		return nil, fmt.Errorf("%w: %s of type %T", ErrTypeMismatch, field, input)
	}
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is negative", ErrRange, field)
	}
	if _, overflow := uint256.FromBig(x); overflow {
		return nil, fmt.Errorf("%w: %s exceeds 32 bytes", ErrRange, field)
	}
	return x, nil
}

// parseBigString parses a "0x"-prefixed hex string or a decimal string.
// Both encodings normalize to the same canonical integer.
func parseBigString(s string) (*big.Int, error) {
	if has0xPrefix(s) {
		digits := s[2:]
		if digits == "" {
			return new(big.Int), nil
		}
		x, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, fmt.Errorf("%w: malformed hex number %q", ErrValidation, s)
		}
		return x, nil
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: malformed decimal number %q", ErrValidation, s)
	}
	return x, nil
}

// normalizeUint64 coerces a loose numeric value into a uint64 field. The
// returned bool reports presence.
func normalizeUint64(field string, input any) (uint64, bool, error) {
	x, err := normalizeBigInt(field, input)
	if err != nil {
		return 0, false, err
	}
	if x == nil {
		return 0, false, nil
	}
	if !x.IsUint64() {
		return 0, false, fmt.Errorf("%w: %s exceeds 8 bytes", ErrRange, field)
	}
	return x.Uint64(), true, nil
}

// normalizeBytes coerces a loose payload value to raw bytes. Nil yields nil.
func normalizeBytes(field string, input any) ([]byte, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case []byte:
		cpy := make([]byte, len(v))
		copy(cpy, v)
		return cpy, nil
	case string:
		if !has0xPrefix(v) {
			return nil, fmt.Errorf("%w: %s: missing 0x prefix", ErrValidation, field)
		}
		b, err := hex.DecodeString(v[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: malformed hex", ErrValidation, field)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s of type %T", ErrTypeMismatch, field, input)
	}
}

// normalizeAddress coerces a loose recipient value to an address pointer.
// Nil and empty bytes yield nil, the contract-creation signal.
func normalizeAddress(field string, input any) (*Address, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case *Address:
		return copyAddressPtr(v), nil
	case Address:
		cpy := v
		return &cpy, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		if len(v) != AddressLength {
			return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrValidation, field, len(v), AddressLength)
		}
		var a Address
		copy(a[:], v)
		return &a, nil
	case string:
		a, err := ParseAddress(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return &a, nil
	default:
		return nil, fmt.Errorf("%w: %s of type %T", ErrTypeMismatch, field, input)
	}
}

// normalizeSignature normalizes the signature triple and enforces that it is
// all-present or all-absent. A transaction is never partially signed.
func normalizeSignature(vIn, rIn, sIn any) (v, r, s *big.Int, err error) {
	if v, err = normalizeBigInt("v", vIn); err != nil {
		return nil, nil, nil, err
	}
	if r, err = normalizeBigInt("r", rIn); err != nil {
		return nil, nil, nil, err
	}
	if s, err = normalizeBigInt("s", sIn); err != nil {
		return nil, nil, nil, err
	}
	if err = checkSignatureCompleteness(v, r, s); err != nil {
		return nil, nil, nil, err
	}
	return v, r, s, nil
}

// checkSignatureCompleteness rejects a signature triple that is neither fully
// present nor fully absent.
func checkSignatureCompleteness(v, r, s *big.Int) error {
	present := 0
	for _, x := range []*big.Int{v, r, s} {
		if x != nil {
			present++
		}
	}
	if present != 0 && present != 3 {
		return fmt.Errorf("%w: partial signature: %d of 3 values present", ErrValidation, present)
	}
	return nil
}

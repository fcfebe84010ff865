package types

import (
	"fmt"
	"math/big"
)

// The values array is the fixed-order positional field list exchanged with
// the wire codec. Numeric fields travel as minimal big-endian bytes (empty
// for zero), the recipient as 20 bytes or empty for contract creation, and
// the access list in positional form. Unsigned transactions omit the three
// trailing signature positions entirely.

// bigToValueBytes encodes a numeric field. Nil and zero both encode as empty.
func bigToValueBytes(x *big.Int) []byte {
	if x == nil || x.Sign() == 0 {
		return []byte{}
	}
	return x.Bytes()
}

// uintToValueBytes encodes a uint64 field as minimal big-endian bytes.
func uintToValueBytes(x uint64) []byte {
	return new(big.Int).SetUint64(x).Bytes()
}

// addrToValueBytes encodes the recipient. Nil encodes as empty bytes, the
// contract-creation signal.
func addrToValueBytes(a *Address) []byte {
	if a == nil {
		return []byte{}
	}
	return a.Bytes()
}

// dataToValueBytes encodes the payload. Nil normalizes to empty.
func dataToValueBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// valueAt extracts the raw bytes at position i.
func valueAt(values []any, i int, field string) ([]byte, error) {
	b, ok := values[i].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s at position %d of type %T", ErrTypeMismatch, field, i, values[i])
	}
	return b, nil
}

// valueToBig decodes a numeric field. The wire codec's minimal-integer rule
// applies: leading zero bytes are rejected, and values are capped at the
// 32-byte field budget.
func valueToBig(field string, b []byte) (*big.Int, error) {
	if len(b) > 0 && b[0] == 0 {
		return nil, fmt.Errorf("%w: %s has leading zero bytes", ErrValidation, field)
	}
	if len(b) > 32 {
		return nil, fmt.Errorf("%w: %s is %d bytes, want at most 32", ErrRange, field, len(b))
	}
	return new(big.Int).SetBytes(b), nil
}

// valueToUint64 decodes a numeric field held as uint64 in the schema.
func valueToUint64(field string, b []byte) (uint64, error) {
	if len(b) > 0 && b[0] == 0 {
		return 0, fmt.Errorf("%w: %s has leading zero bytes", ErrValidation, field)
	}
	if len(b) > 8 {
		return 0, fmt.Errorf("%w: %s is %d bytes, want at most 8", ErrRange, field, len(b))
	}
	return new(big.Int).SetBytes(b).Uint64(), nil
}

// valueToAddress decodes the recipient position. Empty bytes signal contract
// creation and decode to nil.
func valueToAddress(field string, b []byte) (*Address, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) != AddressLength {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d or empty", ErrValidation, field, len(b), AddressLength)
	}
	var a Address
	copy(a[:], b)
	return &a, nil
}

// valueToAccessList decodes the access list position, which arrives in
// positional form from the codec.
func valueToAccessList(values []any, i int) (AccessList, error) {
	al, _, err := NormalizeAccessList(values[i])
	if err != nil {
		return nil, fmt.Errorf("access list at position %d: %w", i, err)
	}
	return al, nil
}

// signatureMembersFromValues decodes v, r, s from the trailing positions
// starting at offset. The positions exist, so the signature is present; an
// empty v is a zero recovery value, not an absent one.
func signatureMembersFromValues(values []any, offset int) (v, r, s *big.Int, err error) {
	raw, err := valueAt(values, offset, "v")
	if err != nil {
		return nil, nil, nil, err
	}
	if v, err = valueToBig("v", raw); err != nil {
		return nil, nil, nil, err
	}
	if raw, err = valueAt(values, offset+1, "r"); err != nil {
		return nil, nil, nil, err
	}
	if r, err = valueToBig("r", raw); err != nil {
		return nil, nil, nil, err
	}
	if raw, err = valueAt(values, offset+2, "s"); err != nil {
		return nil, nil, nil, err
	}
	if s, err = valueToBig("s", raw); err != nil {
		return nil, nil, nil, err
	}
	return v, r, s, nil
}

// Package types defines the canonical transaction data model shared by the
// wire codec, the JSON interface and capability-aware callers.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the byte length of a storage key or hash.
	HashLength = 32
	// AddressLength is the byte length of an account address.
	AddressLength = 20
)

// Hash represents a 32-byte value such as an access-list storage key.
type Hash [HashLength]byte

// Address represents the 20-byte address of an account.
type Address [AddressLength]byte

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string to Hash, left-padding short input.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// ParseHash decodes a "0x"-prefixed hex string into a Hash. Unlike HexToHash
// it rejects input that is not exactly 32 bytes.
func ParseHash(s string) (Hash, error) {
	b, err := decodeFixedHex(s, HashLength)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: storage key %q", err, s)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the lower-case hex string representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input must be a
// "0x"-prefixed hex string of exactly 32 bytes.
func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := ParseHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// BytesToAddress converts bytes to Address, left-padding if shorter than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string to Address, left-padding short input.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// ParseAddress decodes a "0x"-prefixed hex string into an Address. Unlike
// HexToAddress it rejects input that is not exactly 20 bytes.
func ParseAddress(s string) (Address, error) {
	b, err := decodeFixedHex(s, AddressLength)
	if err != nil {
		return Address{}, fmt.Errorf("%w: address %q", err, s)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the lower-case hex string representation of the address.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the address from a byte slice, left-padding if necessary.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input must be a
// "0x"-prefixed hex string of exactly 20 bytes.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// decodeFixedHex decodes a "0x"-prefixed hex string and requires the result
// to be exactly want bytes. Violations map to ErrValidation so callers can
// reject malformed fixed-width fields without padding or truncating them.
func decodeFixedHex(s string, want int) ([]byte, error) {
	if !has0xPrefix(s) {
		return nil, fmt.Errorf("%w: missing 0x prefix", ErrValidation)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed hex", ErrValidation)
	}
	if len(b) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrValidation, len(b), want)
	}
	return b, nil
}

// fromHex decodes a hex string, stripping an optional "0x" prefix. Length is
// not checked; use decodeFixedHex where exact widths matter.
func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

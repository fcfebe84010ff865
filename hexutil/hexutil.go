// Package hexutil implements "0x"-prefixed hex encoding of byte blobs and
// quantities. Quantities encode canonically without leading zero digits
// ("0x0" for zero); decoding of quantities additionally accepts plain
// decimal input, which normalizes to the same value.
package hexutil

import (
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"
)

// Errors returned by the decoding functions.
var (
	ErrEmptyString   = errors.New("empty hex string")
	ErrSyntax        = errors.New("invalid hex string")
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	ErrOddLength     = errors.New("hex string of odd length")
	ErrEmptyNumber   = errors.New("hex string \"0x\"")
	ErrLeadingZero   = errors.New("hex number with leading zero digits")
	ErrUint64Range   = errors.New("hex number > 64 bits")
	ErrBig256Range   = errors.New("hex number > 256 bits")
)

const badNibble = ^uint64(0)

// Decode decodes a "0x"-prefixed hex string of even length.
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(input) {
		return nil, ErrMissingPrefix
	}
	if len(input)%2 != 0 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(input[2:])
	if err != nil {
		return nil, ErrSyntax
	}
	return b, nil
}

// Encode encodes b as a "0x"-prefixed hex string.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// DecodeUint64 decodes a quantity: "0x"-prefixed hex without leading zero
// digits, or plain decimal.
func DecodeUint64(input string) (uint64, error) {
	raw, err := checkNumber(input)
	if err != nil {
		return 0, err
	}
	if !has0xPrefix(input) {
		dec, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, mapNumError(err)
		}
		return dec, nil
	}
	dec, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, mapNumError(err)
	}
	return dec, nil
}

// EncodeUint64 encodes i as a canonical hex quantity.
func EncodeUint64(i uint64) string {
	return "0x" + strconv.FormatUint(i, 16)
}

// DecodeBig decodes a quantity of at most 256 bits: "0x"-prefixed hex
// without leading zero digits, or plain decimal.
func DecodeBig(input string) (*big.Int, error) {
	raw, err := checkNumber(input)
	if err != nil {
		return nil, err
	}
	base := 16
	if !has0xPrefix(input) {
		base = 10
	}
	dec, ok := new(big.Int).SetString(raw, base)
	if !ok || dec.Sign() < 0 {
		return nil, ErrSyntax
	}
	if dec.BitLen() > 256 {
		return nil, ErrBig256Range
	}
	return dec, nil
}

// EncodeBig encodes a non-negative bigint as a canonical hex quantity.
func EncodeBig(bigint *big.Int) string {
	if bigint == nil {
		return "0x0"
	}
	return "0x" + bigint.Text(16)
}

// checkNumber validates a quantity string and returns its digits.
func checkNumber(input string) (raw string, err error) {
	if len(input) == 0 {
		return "", ErrEmptyString
	}
	raw = input
	if has0xPrefix(input) {
		raw = input[2:]
		if len(raw) == 0 {
			return "", ErrEmptyNumber
		}
		if len(raw) > 1 && raw[0] == '0' {
			return "", ErrLeadingZero
		}
	}
	return raw, nil
}

func mapNumError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		switch numErr.Err {
		case strconv.ErrRange:
			return ErrUint64Range
		case strconv.ErrSyntax:
			return ErrSyntax
		}
	}
	return err
}

func has0xPrefix(input string) bool {
	return len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X')
}

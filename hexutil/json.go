package hexutil

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

var (
	bytesT  = "hexutil.Bytes"
	bigT    = "hexutil.Big"
	uint64T = "hexutil.Uint64"
)

// Bytes marshals/unmarshals as a JSON string with 0x prefix. The empty slice
// marshals as "0x".
type Bytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(Encode(b)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes) UnmarshalJSON(input []byte) error {
	if !isString(input) {
		return errNonString(bytesT)
	}
	return wrapTypeError(b.UnmarshalText(input[1:len(input)-1]), bytesT)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(input []byte) error {
	dec, err := Decode(string(input))
	if err != nil {
		return err
	}
	*b = dec
	return nil
}

// String returns the hex encoding of b.
func (b Bytes) String() string {
	return Encode(b)
}

// Big marshals/unmarshals a quantity of at most 256 bits. Marshaling is
// always canonical minimal hex; unmarshaling accepts hex strings, decimal
// strings, and bare JSON numbers.
type Big big.Int

// MarshalText implements encoding.TextMarshaler.
func (b Big) MarshalText() ([]byte, error) {
	return []byte(EncodeBig((*big.Int)(&b))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Big) UnmarshalJSON(input []byte) error {
	if !isString(input) {
		// Permissive form: a bare JSON number, digits only.
		return wrapTypeError(b.UnmarshalText(input), bigT)
	}
	return wrapTypeError(b.UnmarshalText(input[1:len(input)-1]), bigT)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Big) UnmarshalText(input []byte) error {
	dec, err := DecodeBig(string(input))
	if err != nil {
		return err
	}
	*b = (Big)(*dec)
	return nil
}

// ToInt converts b to a big.Int.
func (b *Big) ToInt() *big.Int {
	return (*big.Int)(b)
}

// String returns the hex encoding of b.
func (b *Big) String() string {
	return EncodeBig(b.ToInt())
}

// Uint64 marshals/unmarshals a quantity of at most 64 bits. Marshaling is
// always canonical minimal hex; unmarshaling accepts hex strings, decimal
// strings, and bare JSON numbers.
type Uint64 uint64

// MarshalText implements encoding.TextMarshaler.
func (i Uint64) MarshalText() ([]byte, error) {
	return []byte("0x" + strconv.FormatUint(uint64(i), 16)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Uint64) UnmarshalJSON(input []byte) error {
	if !isString(input) {
		return wrapTypeError(i.UnmarshalText(input), uint64T)
	}
	return wrapTypeError(i.UnmarshalText(input[1:len(input)-1]), uint64T)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Uint64) UnmarshalText(input []byte) error {
	dec, err := DecodeUint64(string(input))
	if err != nil {
		return err
	}
	*i = Uint64(dec)
	return nil
}

// String returns the hex encoding of i.
func (i Uint64) String() string {
	return EncodeUint64(uint64(i))
}

func isString(input []byte) bool {
	return len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"'
}

func errNonString(typ string) error {
	return fmt.Errorf("%w: non-string value for %s", ErrSyntax, typ)
}

func wrapTypeError(err error, typ string) error {
	if err != nil {
		return fmt.Errorf("%w: unmarshaling %s", err, typ)
	}
	return nil
}

var (
	_ json.Unmarshaler = (*Bytes)(nil)
	_ json.Unmarshaler = (*Big)(nil)
	_ json.Unmarshaler = (*Uint64)(nil)
)

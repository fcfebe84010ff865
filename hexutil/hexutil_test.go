package hexutil

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func referenceBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid")
	}
	return b
}

var decodeBytesTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	{"", nil, ErrEmptyString},
	{"0", nil, ErrMissingPrefix},
	{"0x0", nil, ErrOddLength},
	{"0x023", nil, ErrOddLength},
	{"0xxx", nil, ErrSyntax},
	{"0x01zz01", nil, ErrSyntax},
	{"0x", []byte{}, nil},
	{"0X", []byte{}, nil},
	{"0x02", []byte{0x02}, nil},
	{"0X02", []byte{0x02}, nil},
	{"0xffffffffff", []byte{0xff, 0xff, 0xff, 0xff, 0xff}, nil},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeBytesTests {
		dec, err := Decode(test.input)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("Decode(%q): error %v, want %v", test.input, err, test.wantErr)
			continue
		}
		if test.wantErr == nil && !bytes.Equal(dec, test.want) {
			t.Errorf("Decode(%q): got %x, want %x", test.input, dec, test.want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		input []byte
		want  string
	}{
		{[]byte{}, "0x"},
		{nil, "0x"},
		{[]byte{0}, "0x00"},
		{[]byte{0, 0, 1, 2}, "0x00000102"},
	}
	for _, test := range tests {
		if got := Encode(test.input); got != test.want {
			t.Errorf("Encode(%x): got %q, want %q", test.input, got, test.want)
		}
	}
}

var decodeBigTests = []struct {
	input   string
	want    *big.Int
	wantErr error
}{
	{"", nil, ErrEmptyString},
	{"0x", nil, ErrEmptyNumber},
	{"0x01", nil, ErrLeadingZero},
	{"0xx", nil, ErrSyntax},
	{"0x1zz01", nil, ErrSyntax},
	{"-12", nil, ErrSyntax},
	{
		"0x10000000000000000000000000000000000000000000000000000000000000000",
		nil,
		ErrBig256Range,
	},
	{"0x0", big.NewInt(0), nil},
	{"0x2", big.NewInt(2), nil},
	{"0x2F2", big.NewInt(754), nil},
	{"0X2F2", big.NewInt(754), nil},
	{"0x1122aaff", big.NewInt(0x1122aaff), nil},
	{"0xbbb", big.NewInt(0xbbb), nil},
	{
		"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		referenceBig("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
		nil,
	},
	// Plain decimal normalizes to the same quantity.
	{"754", big.NewInt(754), nil},
	{"0", big.NewInt(0), nil},
}

func TestDecodeBig(t *testing.T) {
	for _, test := range decodeBigTests {
		dec, err := DecodeBig(test.input)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("DecodeBig(%q): error %v, want %v", test.input, err, test.wantErr)
			continue
		}
		if test.wantErr == nil && dec.Cmp(test.want) != 0 {
			t.Errorf("DecodeBig(%q): got %v, want %v", test.input, dec, test.want)
		}
	}
}

func TestEncodeBig(t *testing.T) {
	tests := []struct {
		input *big.Int
		want  string
	}{
		{nil, "0x0"},
		{big.NewInt(0), "0x0"},
		{big.NewInt(1), "0x1"},
		{big.NewInt(0xff), "0xff"},
		{referenceBig("ff12ab"), "0xff12ab"},
	}
	for _, test := range tests {
		if got := EncodeBig(test.input); got != test.want {
			t.Errorf("EncodeBig(%v): got %q, want %q", test.input, got, test.want)
		}
	}
}

var decodeUint64Tests = []struct {
	input   string
	want    uint64
	wantErr error
}{
	{"", 0, ErrEmptyString},
	{"0x", 0, ErrEmptyNumber},
	{"0x01", 0, ErrLeadingZero},
	{"0xfffffffffffffffff", 0, ErrUint64Range},
	{"0xx", 0, ErrSyntax},
	{"0x0", 0, nil},
	{"0x2", 2, nil},
	{"0x2F2", 754, nil},
	{"0xbbb", 0xbbb, nil},
	{"0xffffffffffffffff", 0xffffffffffffffff, nil},
	{"754", 754, nil},
	{"18446744073709551615", 0xffffffffffffffff, nil},
	{"18446744073709551616", 0, ErrUint64Range},
	{"7f4", 0, ErrSyntax},
}

func TestDecodeUint64(t *testing.T) {
	for _, test := range decodeUint64Tests {
		dec, err := DecodeUint64(test.input)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("DecodeUint64(%q): error %v, want %v", test.input, err, test.wantErr)
			continue
		}
		if test.wantErr == nil && dec != test.want {
			t.Errorf("DecodeUint64(%q): got %d, want %d", test.input, dec, test.want)
		}
	}
}

func TestEncodeUint64(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0x0"},
		{1, "0x1"},
		{0xff, "0xff"},
		{0x1122334455667788, "0x1122334455667788"},
	}
	for _, test := range tests {
		if got := EncodeUint64(test.input); got != test.want {
			t.Errorf("EncodeUint64(%d): got %q, want %q", test.input, got, test.want)
		}
	}
}

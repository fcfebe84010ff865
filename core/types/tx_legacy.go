package types

import (
	"fmt"
	"math/big"
)

// Legal values-array lengths per transaction type. The shorter length is the
// unsigned layout, the longer one appends v, r, s.
const (
	legacyTxUnsignedValues = 6
	legacyTxSignedValues   = 9
)

// LegacyTx represents a legacy (type 0x00) transaction: gas-price charged,
// no chain id field, no access list.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *Address // nil means contract creation
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int // nil when unsigned
}

// NewLegacyTx builds a legacy transaction from loosely typed fields.
// Fields that belong to typed transactions only are rejected.
func NewLegacyTx(d TxFieldData) (*LegacyTx, error) {
	for _, forbidden := range []struct {
		name  string
		value any
	}{
		{"chainId", d.ChainID},
		{"accessList", d.AccessList},
		{"maxPriorityFeePerGas", d.MaxPriorityFeePerGas},
		{"maxFeePerGas", d.MaxFeePerGas},
	} {
		if forbidden.value != nil {
			return nil, fmt.Errorf("%w: %s on legacy transaction", ErrUnsupportedField, forbidden.name)
		}
	}
	tx := new(LegacyTx)
	var err error
	if tx.Nonce, _, err = normalizeUint64("nonce", d.Nonce); err != nil {
		return nil, err
	}
	if tx.Gas, _, err = normalizeUint64("gasLimit", d.GasLimit); err != nil {
		return nil, err
	}
	if tx.GasPrice, err = normalizeBigInt("gasPrice", d.GasPrice); err != nil {
		return nil, err
	}
	if tx.GasPrice == nil {
		tx.GasPrice = new(big.Int)
	}
	if tx.Value, err = normalizeBigInt("value", d.Value); err != nil {
		return nil, err
	}
	if tx.Value == nil {
		tx.Value = new(big.Int)
	}
	if tx.To, err = normalizeAddress("to", d.To); err != nil {
		return nil, err
	}
	if tx.Data, err = normalizeBytes("data", d.Data); err != nil {
		return nil, err
	}
	if tx.V, tx.R, tx.S, err = normalizeSignature(d.V, d.R, d.S); err != nil {
		return nil, err
	}
	return tx, nil
}

// legacyTxFromValues decodes the positional layout
// [nonce, gasPrice, gasLimit, to, value, data] (+ [v, r, s] if signed).
func legacyTxFromValues(values []any) (*LegacyTx, error) {
	if len(values) != legacyTxUnsignedValues && len(values) != legacyTxSignedValues {
		return nil, fmt.Errorf("%w: legacy transaction has %d values, want %d or %d",
			ErrDecode, len(values), legacyTxUnsignedValues, legacyTxSignedValues)
	}
	tx := new(LegacyTx)
	fields := []struct {
		name   string
		decode func([]byte) error
	}{
		{"nonce", func(b []byte) (err error) { tx.Nonce, err = valueToUint64("nonce", b); return }},
		{"gasPrice", func(b []byte) (err error) { tx.GasPrice, err = valueToBig("gasPrice", b); return }},
		{"gasLimit", func(b []byte) (err error) { tx.Gas, err = valueToUint64("gasLimit", b); return }},
		{"to", func(b []byte) (err error) { tx.To, err = valueToAddress("to", b); return }},
		{"value", func(b []byte) (err error) { tx.Value, err = valueToBig("value", b); return }},
		{"data", func(b []byte) error { tx.Data = b; return nil }},
	}
	for i, field := range fields {
		raw, err := valueAt(values, i, field.name)
		if err != nil {
			return nil, err
		}
		if err := field.decode(raw); err != nil {
			return nil, err
		}
	}
	if len(values) == legacyTxSignedValues {
		var err error
		if tx.V, tx.R, tx.S, err = signatureMembersFromValues(values, legacyTxUnsignedValues); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func (tx *LegacyTx) txType() byte            { return LegacyTxType }
func (tx *LegacyTx) chainID() *big.Int       { return deriveChainID(tx.V) }
func (tx *LegacyTx) accessList() AccessList  { return nil }
func (tx *LegacyTx) data() []byte            { return tx.Data }
func (tx *LegacyTx) gas() uint64             { return tx.Gas }
func (tx *LegacyTx) gasPrice() *big.Int      { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *big.Int     { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *big.Int     { return tx.GasPrice }
func (tx *LegacyTx) value() *big.Int         { return tx.Value }
func (tx *LegacyTx) nonce() uint64           { return tx.Nonce }
func (tx *LegacyTx) to() *Address            { return tx.To }

func (tx *LegacyTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *LegacyTx) setSignatureValues(v, r, s *big.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

// valuesArray returns [nonce, gasPrice, gasLimit, to, value, data]
// (+ [v, r, s] if signed).
func (tx *LegacyTx) valuesArray() []any {
	values := []any{
		uintToValueBytes(tx.Nonce),
		bigToValueBytes(tx.GasPrice),
		uintToValueBytes(tx.Gas),
		addrToValueBytes(tx.To),
		bigToValueBytes(tx.Value),
		dataToValueBytes(tx.Data),
	}
	if tx.V != nil && tx.R != nil && tx.S != nil {
		values = append(values,
			bigToValueBytes(tx.V),
			bigToValueBytes(tx.R),
			bigToValueBytes(tx.S),
		)
	}
	return values
}

func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce: tx.Nonce,
		Gas:   tx.Gas,
		To:    copyAddressPtr(tx.To),
		Data:  copyBytes(tx.Data),
		// Unset money fields freeze to zero; a frozen transaction never
		// carries a nil quantity.
		GasPrice: new(big.Int),
		Value:    new(big.Int),
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(big.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(big.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(big.Int).Set(tx.S)
	}
	return cpy
}

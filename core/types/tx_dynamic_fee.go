package types

import (
	"fmt"
	"math/big"
)

const (
	dynamicFeeTxUnsignedValues = 9
	dynamicFeeTxSignedValues   = 12
)

// DynamicFeeTx represents an EIP-1559 (type 0x02) fee-market transaction.
// It replaces gasPrice with maxPriorityFeePerGas (GasTipCap) and
// maxFeePerGas (GasFeeCap); gasPrice is forbidden on this type.
type DynamicFeeTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int // maxPriorityFeePerGas
	GasFeeCap  *big.Int // maxFeePerGas
	Gas        uint64
	To         *Address
	Value      *big.Int
	Data       []byte
	AccessList AccessList
	V, R, S    *big.Int
}

// NewDynamicFeeTx builds a fee-market transaction from loosely typed fields.
// A populated gasPrice is rejected: exactly one pricing scheme applies per
// transaction type.
func NewDynamicFeeTx(d TxFieldData) (*DynamicFeeTx, error) {
	if d.GasPrice != nil {
		return nil, fmt.Errorf("%w: gasPrice on dynamic fee transaction", ErrUnsupportedField)
	}
	tx := new(DynamicFeeTx)
	var err error
	if tx.ChainID, err = normalizeBigInt("chainId", d.ChainID); err != nil {
		return nil, err
	}
	if tx.ChainID == nil {
		tx.ChainID = new(big.Int)
	}
	if tx.Nonce, _, err = normalizeUint64("nonce", d.Nonce); err != nil {
		return nil, err
	}
	if tx.Gas, _, err = normalizeUint64("gasLimit", d.GasLimit); err != nil {
		return nil, err
	}
	if tx.GasTipCap, err = normalizeBigInt("maxPriorityFeePerGas", d.MaxPriorityFeePerGas); err != nil {
		return nil, err
	}
	if tx.GasTipCap == nil {
		tx.GasTipCap = new(big.Int)
	}
	if tx.GasFeeCap, err = normalizeBigInt("maxFeePerGas", d.MaxFeePerGas); err != nil {
		return nil, err
	}
	if tx.GasFeeCap == nil {
		tx.GasFeeCap = new(big.Int)
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
	if tx.AccessList, _, err = NormalizeAccessList(d.AccessList); err != nil {
		return nil, err
	}
	if tx.V, tx.R, tx.S, err = normalizeSignature(d.V, d.R, d.S); err != nil {
		return nil, err
	}
	return tx, nil
}

// dynamicFeeTxFromValues decodes the positional layout
// [chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit, to, value,
// data, accessList] (+ [v, r, s] if signed).
func dynamicFeeTxFromValues(values []any) (*DynamicFeeTx, error) {
	if len(values) != dynamicFeeTxUnsignedValues && len(values) != dynamicFeeTxSignedValues {
		return nil, fmt.Errorf("%w: dynamic fee transaction has %d values, want %d or %d",
			ErrDecode, len(values), dynamicFeeTxUnsignedValues, dynamicFeeTxSignedValues)
	}
	tx := new(DynamicFeeTx)
	fields := []struct {
		name   string
		decode func([]byte) error
	}{
		{"chainId", func(b []byte) (err error) { tx.ChainID, err = valueToBig("chainId", b); return }},
		{"nonce", func(b []byte) (err error) { tx.Nonce, err = valueToUint64("nonce", b); return }},
		{"maxPriorityFeePerGas", func(b []byte) (err error) {
			tx.GasTipCap, err = valueToBig("maxPriorityFeePerGas", b)
			return
		}},
		{"maxFeePerGas", func(b []byte) (err error) { tx.GasFeeCap, err = valueToBig("maxFeePerGas", b); return }},
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
	var err error
	if tx.AccessList, err = valueToAccessList(values, 8); err != nil {
		return nil, err
	}
	if len(values) == dynamicFeeTxSignedValues {
		if tx.V, tx.R, tx.S, err = signatureMembersFromValues(values, dynamicFeeTxUnsignedValues); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func (tx *DynamicFeeTx) txType() byte           { return DynamicFeeTxType }
func (tx *DynamicFeeTx) chainID() *big.Int      { return tx.ChainID }
func (tx *DynamicFeeTx) accessList() AccessList { return tx.AccessList }
func (tx *DynamicFeeTx) data() []byte           { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64            { return tx.Gas }
func (tx *DynamicFeeTx) gasPrice() *big.Int     { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *big.Int    { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasFeeCap() *big.Int    { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *big.Int        { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64          { return tx.Nonce }
func (tx *DynamicFeeTx) to() *Address           { return tx.To }

func (tx *DynamicFeeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *DynamicFeeTx) setSignatureValues(v, r, s *big.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

// valuesArray returns [chainId, nonce, maxPriorityFeePerGas, maxFeePerGas,
// gasLimit, to, value, data, accessList] (+ [v, r, s] if signed).
func (tx *DynamicFeeTx) valuesArray() []any {
	values := []any{
		bigToValueBytes(tx.ChainID),
		uintToValueBytes(tx.Nonce),
		bigToValueBytes(tx.GasTipCap),
		bigToValueBytes(tx.GasFeeCap),
		uintToValueBytes(tx.Gas),
		addrToValueBytes(tx.To),
		bigToValueBytes(tx.Value),
		dataToValueBytes(tx.Data),
		tx.AccessList.Buffer(),
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

func (tx *DynamicFeeTx) copy() TxData {
	cpy := &DynamicFeeTx{
		Nonce: tx.Nonce,
		Gas:   tx.Gas,
		To:    copyAddressPtr(tx.To),
		Data:  copyBytes(tx.Data),
		// Unset money fields freeze to zero; a frozen transaction never
		// carries a nil quantity.
		ChainID:   new(big.Int),
		GasTipCap: new(big.Int),
		GasFeeCap: new(big.Int),
		Value:     new(big.Int),
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap.Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap.Set(tx.GasFeeCap)
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.AccessList != nil {
		cpy.AccessList = copyAccessList(tx.AccessList)
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

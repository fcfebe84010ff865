package types

import (
	"fmt"
	"math/big"
)

const (
	accessListTxUnsignedValues = 8
	accessListTxSignedValues   = 11
)

// AccessListTx represents an EIP-2930 (type 0x01) transaction: gas-price
// charged, carried in a typed envelope with a chain id and an access list.
type AccessListTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	Gas        uint64
	To         *Address
	Value      *big.Int
	Data       []byte
	AccessList AccessList
	V, R, S    *big.Int
}

// NewAccessListTx builds an access list transaction from loosely typed
// fields. Fee-market fields are rejected.
func NewAccessListTx(d TxFieldData) (*AccessListTx, error) {
	if d.MaxPriorityFeePerGas != nil {
		return nil, fmt.Errorf("%w: maxPriorityFeePerGas on access list transaction", ErrUnsupportedField)
	}
	if d.MaxFeePerGas != nil {
		return nil, fmt.Errorf("%w: maxFeePerGas on access list transaction", ErrUnsupportedField)
	}
	tx := new(AccessListTx)
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
	if tx.AccessList, _, err = NormalizeAccessList(d.AccessList); err != nil {
		return nil, err
	}
	if tx.V, tx.R, tx.S, err = normalizeSignature(d.V, d.R, d.S); err != nil {
		return nil, err
	}
	return tx, nil
}

// accessListTxFromValues decodes the positional layout
// [chainId, nonce, gasPrice, gasLimit, to, value, data, accessList]
// (+ [v, r, s] if signed).
func accessListTxFromValues(values []any) (*AccessListTx, error) {
	if len(values) != accessListTxUnsignedValues && len(values) != accessListTxSignedValues {
		return nil, fmt.Errorf("%w: access list transaction has %d values, want %d or %d",
			ErrDecode, len(values), accessListTxUnsignedValues, accessListTxSignedValues)
	}
	tx := new(AccessListTx)
	fields := []struct {
		name   string
		decode func([]byte) error
	}{
		{"chainId", func(b []byte) (err error) { tx.ChainID, err = valueToBig("chainId", b); return }},
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
	var err error
	if tx.AccessList, err = valueToAccessList(values, 7); err != nil {
		return nil, err
	}
	if len(values) == accessListTxSignedValues {
		if tx.V, tx.R, tx.S, err = signatureMembersFromValues(values, accessListTxUnsignedValues); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func (tx *AccessListTx) txType() byte           { return AccessListTxType }
func (tx *AccessListTx) chainID() *big.Int      { return tx.ChainID }
func (tx *AccessListTx) accessList() AccessList { return tx.AccessList }
func (tx *AccessListTx) data() []byte           { return tx.Data }
func (tx *AccessListTx) gas() uint64            { return tx.Gas }
func (tx *AccessListTx) gasPrice() *big.Int     { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *big.Int    { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *big.Int    { return tx.GasPrice }
func (tx *AccessListTx) value() *big.Int        { return tx.Value }
func (tx *AccessListTx) nonce() uint64          { return tx.Nonce }
func (tx *AccessListTx) to() *Address           { return tx.To }

func (tx *AccessListTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *AccessListTx) setSignatureValues(v, r, s *big.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

// valuesArray returns
// [chainId, nonce, gasPrice, gasLimit, to, value, data, accessList]
// (+ [v, r, s] if signed).
func (tx *AccessListTx) valuesArray() []any {
	values := []any{
		bigToValueBytes(tx.ChainID),
		uintToValueBytes(tx.Nonce),
		bigToValueBytes(tx.GasPrice),
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

func (tx *AccessListTx) copy() TxData {
	cpy := &AccessListTx{
		Nonce: tx.Nonce,
		Gas:   tx.Gas,
		To:    copyAddressPtr(tx.To),
		Data:  copyBytes(tx.Data),
		// Unset money fields freeze to zero; a frozen transaction never
		// carries a nil quantity.
		ChainID:  new(big.Int),
		GasPrice: new(big.Int),
		Value:    new(big.Int),
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
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

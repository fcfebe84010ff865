// Package geth provides an adapter layer between this module's transaction
// model and go-ethereum's core/types. This is the only package that imports
// go-ethereum directly; everything else uses txtypes/core/types.
package geth

import (
	"fmt"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/eth2030/txtypes/core/types"
)

// --- Address and Hash conversion (zero-copy, layout-compatible) ---

// ToGethAddress converts a txtypes Address to a go-ethereum Address.
func ToGethAddress(a types.Address) gethcommon.Address {
	return gethcommon.Address(a)
}

// FromGethAddress converts a go-ethereum Address to a txtypes Address.
func FromGethAddress(a gethcommon.Address) types.Address {
	return types.Address(a)
}

// ToGethHash converts a txtypes Hash to a go-ethereum Hash.
func ToGethHash(h types.Hash) gethcommon.Hash {
	return gethcommon.Hash(h)
}

// FromGethHash converts a go-ethereum Hash to a txtypes Hash.
func FromGethHash(h gethcommon.Hash) types.Hash {
	return types.Hash(h)
}

// --- Quantity conversion ---

// ToUint256 converts *big.Int to *uint256.Int for go-ethereum APIs that
// take fixed-width quantities.
func ToUint256(b *big.Int) *uint256.Int {
	if b == nil {
		return new(uint256.Int)
	}
	u, _ := uint256.FromBig(b)
	return u
}

// FromUint256 converts *uint256.Int to *big.Int.
func FromUint256(u *uint256.Int) *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return u.ToBig()
}

// --- Access list conversion ---

// ToGethAccessList converts a txtypes AccessList to a go-ethereum
// AccessList, preserving order.
func ToGethAccessList(al types.AccessList) gethtypes.AccessList {
	if al == nil {
		return nil
	}
	result := make(gethtypes.AccessList, len(al))
	for i, tuple := range al {
		keys := make([]gethcommon.Hash, len(tuple.StorageKeys))
		for j, k := range tuple.StorageKeys {
			keys[j] = ToGethHash(k)
		}
		result[i] = gethtypes.AccessTuple{
			Address:     ToGethAddress(tuple.Address),
			StorageKeys: keys,
		}
	}
	return result
}

// FromGethAccessList converts a go-ethereum AccessList to a txtypes
// AccessList, preserving order.
func FromGethAccessList(al gethtypes.AccessList) types.AccessList {
	if al == nil {
		return nil
	}
	result := make(types.AccessList, len(al))
	for i, tuple := range al {
		keys := make([]types.Hash, len(tuple.StorageKeys))
		for j, k := range tuple.StorageKeys {
			keys[j] = FromGethHash(k)
		}
		result[i] = types.AccessTuple{
			Address:     FromGethAddress(tuple.Address),
			StorageKeys: keys,
		}
	}
	return result
}

// --- Transaction conversion ---

// ToGethTransaction converts a txtypes transaction to a go-ethereum
// transaction. The conversion is a pure field mapping; unsigned
// transactions map to go-ethereum's zero-valued signature convention.
func ToGethTransaction(tx *types.Transaction) (*gethtypes.Transaction, error) {
	v, r, s := tx.RawSignatureValues()
	switch tx.Type() {
	case types.LegacyTxType:
		inner := &gethtypes.LegacyTx{
			Nonce:    tx.Nonce(),
			GasPrice: tx.GasPrice(),
			Gas:      tx.Gas(),
			To:       toGethAddressPtr(tx.To()),
			Value:    tx.Value(),
			Data:     tx.Data(),
			V:        v,
			R:        r,
			S:        s,
		}
		return gethtypes.NewTx(inner), nil
	case types.AccessListTxType:
		inner := &gethtypes.AccessListTx{
			ChainID:    tx.ChainId(),
			Nonce:      tx.Nonce(),
			GasPrice:   tx.GasPrice(),
			Gas:        tx.Gas(),
			To:         toGethAddressPtr(tx.To()),
			Value:      tx.Value(),
			Data:       tx.Data(),
			AccessList: ToGethAccessList(tx.AccessList()),
			V:          v,
			R:          r,
			S:          s,
		}
		return gethtypes.NewTx(inner), nil
	case types.DynamicFeeTxType:
		inner := &gethtypes.DynamicFeeTx{
			ChainID:    tx.ChainId(),
			Nonce:      tx.Nonce(),
			GasTipCap:  tx.GasTipCap(),
			GasFeeCap:  tx.GasFeeCap(),
			Gas:        tx.Gas(),
			To:         toGethAddressPtr(tx.To()),
			Value:      tx.Value(),
			Data:       tx.Data(),
			AccessList: ToGethAccessList(tx.AccessList()),
			V:          v,
			R:          r,
			S:          s,
		}
		return gethtypes.NewTx(inner), nil
	default:
		return nil, fmt.Errorf("%w: go-ethereum conversion of type %d", types.ErrTxTypeNotSupported, tx.Type())
	}
}

// FromGethTransaction converts a go-ethereum transaction to a txtypes
// transaction. go-ethereum renders an unsigned transaction as an all-zero
// signature triple, which maps back to the absent state here.
func FromGethTransaction(gtx *gethtypes.Transaction) (*types.Transaction, error) {
	v, r, s := fromGethSignature(gtx)
	switch gtx.Type() {
	case gethtypes.LegacyTxType:
		return types.NewTx(&types.LegacyTx{
			Nonce:    gtx.Nonce(),
			GasPrice: gtx.GasPrice(),
			Gas:      gtx.Gas(),
			To:       fromGethAddressPtr(gtx.To()),
			Value:    gtx.Value(),
			Data:     gtx.Data(),
			V:        v,
			R:        r,
			S:        s,
		})
	case gethtypes.AccessListTxType:
		return types.NewTx(&types.AccessListTx{
			ChainID:    gtx.ChainId(),
			Nonce:      gtx.Nonce(),
			GasPrice:   gtx.GasPrice(),
			Gas:        gtx.Gas(),
			To:         fromGethAddressPtr(gtx.To()),
			Value:      gtx.Value(),
			Data:       gtx.Data(),
			AccessList: FromGethAccessList(gtx.AccessList()),
			V:          v,
			R:          r,
			S:          s,
		})
	case gethtypes.DynamicFeeTxType:
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:    gtx.ChainId(),
			Nonce:      gtx.Nonce(),
			GasTipCap:  gtx.GasTipCap(),
			GasFeeCap:  gtx.GasFeeCap(),
			Gas:        gtx.Gas(),
			To:         fromGethAddressPtr(gtx.To()),
			Value:      gtx.Value(),
			Data:       gtx.Data(),
			AccessList: FromGethAccessList(gtx.AccessList()),
			V:          v,
			R:          r,
			S:          s,
		})
	default:
		return nil, fmt.Errorf("%w: go-ethereum type %d", types.ErrTxTypeNotSupported, gtx.Type())
	}
}

func toGethAddressPtr(a *types.Address) *gethcommon.Address {
	if a == nil {
		return nil
	}
	cpy := ToGethAddress(*a)
	return &cpy
}

func fromGethAddressPtr(a *gethcommon.Address) *types.Address {
	if a == nil {
		return nil
	}
	cpy := FromGethAddress(*a)
	return &cpy
}

func fromGethSignature(gtx *gethtypes.Transaction) (v, r, s *big.Int) {
	v, r, s = gtx.RawSignatureValues()
	if v != nil && r != nil && s != nil &&
		v.Sign() == 0 && r.Sign() == 0 && s.Sign() == 0 {
		return nil, nil, nil
	}
	return v, r, s
}

package types

import (
	"fmt"
	"math/big"
	"sync/atomic"
)

// Transaction type discriminants. Legacy transactions predate the typed
// envelope and are implicitly type zero.
const (
	LegacyTxType     = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
)

// TxData is the underlying data of a transaction, implemented by LegacyTx,
// AccessListTx and DynamicFeeTx. The variant structs are the buildable
// state; wrapping one in a Transaction deep-copies it and freezes it.
type TxData interface {
	txType() byte
	copy() TxData

	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasPrice() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *Address

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(v, r, s *big.Int)
	valuesArray() []any
}

// Transaction is an immutable transaction. The inner data is unexported and
// deep-copied at construction, so a Transaction can be shared across
// goroutines without synchronization; derived values are memoized in atomic
// cells because nothing can invalidate them after the freeze.
type Transaction struct {
	inner TxData

	// caches
	size atomic.Uint64
	from atomic.Pointer[Address] // externally derived sender
}

// NewTx validates inner and wraps a frozen copy of it. Hand-assembled
// variant structs are re-checked here so an invalid transaction can never be
// observed through a Transaction; nil money fields freeze to zero, matching
// the loose-constructor defaults.
func NewTx(inner TxData) (*Transaction, error) {
	if err := sanityCheckTxData(inner); err != nil {
		return nil, err
	}
	return &Transaction{inner: inner.copy()}, nil
}

// FromFieldData normalizes loosely typed fields into a frozen transaction.
// The Type field selects the variant; absent means legacy.
func FromFieldData(d TxFieldData) (*Transaction, error) {
	typ, ok, err := normalizeUint64("type", d.Type)
	if err != nil {
		return nil, err
	}
	if !ok {
		typ = LegacyTxType
	}
	var inner TxData
	switch typ {
	case LegacyTxType:
		inner, err = NewLegacyTx(d)
	case AccessListTxType:
		inner, err = NewAccessListTx(d)
	case DynamicFeeTxType:
		inner, err = NewDynamicFeeTx(d)
	default:
		return nil, fmt.Errorf("%w: type %d", ErrTxTypeNotSupported, typ)
	}
	if err != nil {
		return nil, err
	}
	return NewTx(inner)
}

// FromValuesArray decodes the wire codec's positional field list into a
// frozen transaction. The array length must be one of the two lengths legal
// for the transaction type; the longer layout carries v, r, s.
func FromValuesArray(txType uint8, values []any) (*Transaction, error) {
	var (
		inner TxData
		err   error
	)
	switch txType {
	case LegacyTxType:
		inner, err = legacyTxFromValues(values)
	case AccessListTxType:
		inner, err = accessListTxFromValues(values)
	case DynamicFeeTxType:
		inner, err = dynamicFeeTxFromValues(values)
	default:
		return nil, fmt.Errorf("%w: type %d", ErrTxTypeNotSupported, txType)
	}
	if err != nil {
		return nil, err
	}
	return NewTx(inner)
}

// sanityCheckTxData enforces the construction invariants on a variant value:
// complete-or-absent signature and numeric fields within their byte budgets.
func sanityCheckTxData(inner TxData) error {
	v, r, s := inner.rawSignatureValues()
	if err := checkSignatureCompleteness(v, r, s); err != nil {
		return err
	}
	numeric := []struct {
		name  string
		value *big.Int
	}{
		{"chainId", inner.chainID()},
		{"gasPrice", inner.gasPrice()},
		{"maxPriorityFeePerGas", inner.gasTipCap()},
		{"maxFeePerGas", inner.gasFeeCap()},
		{"value", inner.value()},
		{"v", v},
		{"r", r},
		{"s", s},
	}
	for _, field := range numeric {
		if field.value == nil {
			continue
		}
		if field.value.Sign() < 0 {
			return fmt.Errorf("%w: %s is negative", ErrRange, field.name)
		}
		if field.value.BitLen() > 256 {
			return fmt.Errorf("%w: %s exceeds 32 bytes", ErrRange, field.name)
		}
	}
	return nil
}

// Type returns the transaction type discriminant.
func (tx *Transaction) Type() uint8 { return tx.inner.txType() }

// ChainId returns a copy of the chain ID of the transaction. For legacy
// transactions it is derived from the signature V value and is zero when the
// transaction is not replay-protected.
func (tx *Transaction) ChainId() *big.Int { return new(big.Int).Set(tx.inner.chainID()) }

// AccessList returns a copy of the access list of the transaction, nil for
// legacy.
func (tx *Transaction) AccessList() AccessList { return copyAccessList(tx.inner.accessList()) }

// Data returns a copy of the input payload of the transaction.
func (tx *Transaction) Data() []byte { return copyBytes(tx.inner.data()) }

// Gas returns the gas limit of the transaction.
func (tx *Transaction) Gas() uint64 { return tx.inner.gas() }

// GasPrice returns the gas price; for fee-market transactions this is the
// fee cap.
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.inner.gasPrice()) }

// GasTipCap returns maxPriorityFeePerGas; for gas-priced transactions this
// is the gas price.
func (tx *Transaction) GasTipCap() *big.Int { return new(big.Int).Set(tx.inner.gasTipCap()) }

// GasFeeCap returns maxFeePerGas; for gas-priced transactions this is the
// gas price.
func (tx *Transaction) GasFeeCap() *big.Int { return new(big.Int).Set(tx.inner.gasFeeCap()) }

// Value returns the transfer amount of the transaction.
func (tx *Transaction) Value() *big.Int { return new(big.Int).Set(tx.inner.value()) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() uint64 { return tx.inner.nonce() }

// To returns the recipient address, or nil for contract creation.
func (tx *Transaction) To() *Address { return copyAddressPtr(tx.inner.to()) }

// RawSignatureValues returns the V, R, S signature values. They are nil when
// the transaction is unsigned and must not be modified by the caller.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// IsSigned reports whether the transaction carries a full signature triple.
func (tx *Transaction) IsSigned() bool {
	v, r, s := tx.inner.rawSignatureValues()
	return v != nil && r != nil && s != nil
}

// Supports reports whether the transaction's type supports the given
// capability. Unknown capabilities report false.
func (tx *Transaction) Supports(c Capability) bool {
	return TypeSupports(tx.Type(), c)
}

// Protected reports whether the transaction is replay-protected. Typed
// transactions always are; legacy transactions only when signed with a
// chain-bound V value.
func (tx *Transaction) Protected() bool {
	if legacy, ok := tx.inner.(*LegacyTx); ok {
		return legacy.V != nil && isProtectedV(legacy.V)
	}
	return true
}

// Cost returns the maximum upfront cost: gas * price + value.
func (tx *Transaction) Cost() *big.Int {
	total := new(big.Int).Mul(tx.GasPrice(), new(big.Int).SetUint64(tx.Gas()))
	return total.Add(total, tx.Value())
}

// ValuesArray returns the fixed-order positional field list consumed by the
// wire codec. The trailing v, r, s positions are present only when signed.
func (tx *Transaction) ValuesArray() []any {
	return tx.inner.valuesArray()
}

// Size returns the byte size of the transaction's positional payload,
// computed once and memoized.
func (tx *Transaction) Size() uint64 {
	if size := tx.size.Load(); size > 0 {
		return size
	}
	var size uint64
	for _, value := range tx.inner.valuesArray() {
		switch item := value.(type) {
		case []byte:
			size += uint64(len(item))
		case AccessListBuffer:
			for _, tuple := range item {
				size += uint64(len(tuple.Address))
				size += uint64(len(tuple.StorageKeys)) * HashLength
			}
		}
	}
	tx.size.Store(size)
	return size
}

// WithSignature returns a new frozen transaction carrying the externally
// produced signature triple. All three values are required.
func (tx *Transaction) WithSignature(v, r, s *big.Int) (*Transaction, error) {
	if v == nil || r == nil || s == nil {
		return nil, fmt.Errorf("%w: signature requires v, r and s", ErrValidation)
	}
	cpy := tx.inner.copy()
	cpy.setSignatureValues(new(big.Int).Set(v), new(big.Int).Set(r), new(big.Int).Set(s))
	return NewTx(cpy)
}

// SetSender caches the externally derived sender address on the frozen
// transaction.
func (tx *Transaction) SetSender(addr Address) {
	a := addr
	tx.from.Store(&a)
}

// Sender returns the cached sender address, or nil if not yet derived.
func (tx *Transaction) Sender() *Address {
	return tx.from.Load()
}

// Transactions is a slice of transactions.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// TxByNonce sorts transactions of a single sender by nonce.
type TxByNonce Transactions

func (s TxByNonce) Len() int           { return len(s) }
func (s TxByNonce) Less(i, j int) bool { return s[i].Nonce() < s[j].Nonce() }
func (s TxByNonce) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// deriveChainID derives the chain ID from a legacy V value (EIP-155:
// v = chainID*2 + 35 or 36). Unprotected and unsigned values derive zero.
func deriveChainID(v *big.Int) *big.Int {
	if v == nil || !isProtectedV(v) {
		return new(big.Int)
	}
	chainID := new(big.Int).Sub(v, big.NewInt(35))
	return chainID.Rsh(chainID, 1)
}

// isProtectedV reports whether a legacy V value binds the signature to a
// chain. Raw 27/28 signatures (and pre-signature 0/1) are unprotected.
func isProtectedV(v *big.Int) bool {
	if v.BitLen() <= 8 {
		val := v.Uint64()
		return val != 27 && val != 28 && val != 1 && val != 0
	}
	return true
}

func copyAddressPtr(a *Address) *Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cpy := make([]byte, len(b))
	copy(cpy, b)
	return cpy
}

package types

import (
	"encoding/json"
	"math/big"

	"github.com/eth2030/txtypes/hexutil"
)

// txJSON is the canonical string-keyed representation of a transaction. It
// is the superset of all variant field sets; marshaling populates only the
// fields applicable to the concrete type and omits the rest.
type txJSON struct {
	Type hexutil.Uint64 `json:"type"`

	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
	Nonce                *hexutil.Uint64 `json:"nonce,omitempty"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	GasLimit             *hexutil.Uint64 `json:"gasLimit,omitempty"`
	To                   *Address        `json:"to,omitempty"`
	Value                *hexutil.Big    `json:"value,omitempty"`
	Data                 *hexutil.Bytes  `json:"data,omitempty"`
	AccessList           *AccessList     `json:"accessList,omitempty"`

	V *hexutil.Big `json:"v,omitempty"`
	R *hexutil.Big `json:"r,omitempty"`
	S *hexutil.Big `json:"s,omitempty"`
}

// MarshalJSON marshals the transaction in canonical form: quantities as
// minimal hex, byte fields as lower-case hex, the access list in struct
// form, and fields outside the concrete type's schema omitted entirely.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	enc.Type = hexutil.Uint64(tx.Type())

	// Fields shared by every type.
	nonce := hexutil.Uint64(tx.inner.nonce())
	gas := hexutil.Uint64(tx.inner.gas())
	data := hexutil.Bytes(dataToValueBytes(tx.inner.data()))
	enc.Nonce = &nonce
	enc.GasLimit = &gas
	enc.Value = (*hexutil.Big)(tx.inner.value())
	enc.Data = &data
	enc.To = copyAddressPtr(tx.inner.to())

	switch itx := tx.inner.(type) {
	case *LegacyTx:
		enc.GasPrice = (*hexutil.Big)(itx.GasPrice)
	case *AccessListTx:
		enc.ChainID = (*hexutil.Big)(itx.ChainID)
		enc.GasPrice = (*hexutil.Big)(itx.GasPrice)
		al := itx.AccessList
		if al == nil {
			al = AccessList{}
		}
		enc.AccessList = &al
	case *DynamicFeeTx:
		enc.ChainID = (*hexutil.Big)(itx.ChainID)
		enc.MaxPriorityFeePerGas = (*hexutil.Big)(itx.GasTipCap)
		enc.MaxFeePerGas = (*hexutil.Big)(itx.GasFeeCap)
		al := itx.AccessList
		if al == nil {
			al = AccessList{}
		}
		enc.AccessList = &al
	}

	if v, r, s := tx.inner.rawSignatureValues(); v != nil && r != nil && s != nil {
		enc.V = (*hexutil.Big)(v)
		enc.R = (*hexutil.Big)(r)
		enc.S = (*hexutil.Big)(s)
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals a transaction. Quantities are accepted in hex or
// decimal form; decoded fields are routed through the same normalization as
// FromFieldData, so re-serialization is always canonical and every
// construction invariant applies.
func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}

	d := TxFieldData{Type: uint64(dec.Type)}
	if dec.Type != LegacyTxType && dec.ChainID != nil {
		d.ChainID = dec.ChainID.ToInt()
	}
	if dec.Nonce != nil {
		d.Nonce = uint64(*dec.Nonce)
	}
	if dec.GasPrice != nil {
		d.GasPrice = dec.GasPrice.ToInt()
	}
	if dec.MaxPriorityFeePerGas != nil {
		d.MaxPriorityFeePerGas = dec.MaxPriorityFeePerGas.ToInt()
	}
	if dec.MaxFeePerGas != nil {
		d.MaxFeePerGas = dec.MaxFeePerGas.ToInt()
	}
	if dec.GasLimit != nil {
		d.GasLimit = uint64(*dec.GasLimit)
	}
	if dec.To != nil {
		d.To = *dec.To
	}
	if dec.Value != nil {
		d.Value = dec.Value.ToInt()
	}
	if dec.Data != nil {
		d.Data = []byte(*dec.Data)
	}
	if dec.AccessList != nil {
		d.AccessList = *dec.AccessList
	}
	v, r, s := signatureFieldsFromJSON(dec)
	d.V, d.R, d.S = looseOrNil(v), looseOrNil(r), looseOrNil(s)

	parsed, err := FromFieldData(d)
	if err != nil {
		return err
	}
	tx.inner = parsed.inner
	// Drop memoized values from any previous use of the receiver.
	tx.size.Store(0)
	tx.from.Store(nil)
	return nil
}

// signatureFieldsFromJSON extracts the signature triple. An all-zero triple
// is the conventional JSON rendering of an unsigned transaction and maps to
// absent.
func signatureFieldsFromJSON(dec txJSON) (v, r, s *big.Int) {
	if dec.V != nil {
		v = dec.V.ToInt()
	}
	if dec.R != nil {
		r = dec.R.ToInt()
	}
	if dec.S != nil {
		s = dec.S.ToInt()
	}
	if v != nil && r != nil && s != nil &&
		v.Sign() == 0 && r.Sign() == 0 && s.Sign() == 0 {
		return nil, nil, nil
	}
	return v, r, s
}

// looseOrNil boxes a big.Int pointer for TxFieldData without turning a nil
// pointer into a non-nil interface.
func looseOrNil(x *big.Int) any {
	if x == nil {
		return nil
	}
	return x
}

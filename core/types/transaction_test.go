package types

import (
	"errors"
	"math/big"
	"sort"
	"testing"
)

var testAddr = HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")

func mustTx(t *testing.T, d TxFieldData) *Transaction {
	t.Helper()
	tx, err := FromFieldData(d)
	if err != nil {
		t.Fatalf("FromFieldData: %v", err)
	}
	return tx
}

func TestFromFieldDataTypeDispatch(t *testing.T) {
	if got := mustTx(t, TxFieldData{}).Type(); got != LegacyTxType {
		t.Fatalf("absent type: got %d, want legacy", got)
	}
	if got := mustTx(t, TxFieldData{Type: "0x1", ChainID: 1}).Type(); got != AccessListTxType {
		t.Fatalf("type 0x1: got %d", got)
	}
	if got := mustTx(t, TxFieldData{Type: uint64(2), ChainID: 1}).Type(); got != DynamicFeeTxType {
		t.Fatalf("type 2: got %d", got)
	}
	if _, err := FromFieldData(TxFieldData{Type: uint64(0x7f)}); !errors.Is(err, ErrTxTypeNotSupported) {
		t.Fatalf("unknown type: got %v, want ErrTxTypeNotSupported", err)
	}
}

func TestForbiddenFieldsPerType(t *testing.T) {
	cases := []struct {
		name string
		d    TxFieldData
	}{
		{"chainId on legacy", TxFieldData{ChainID: 1}},
		{"accessList on legacy", TxFieldData{AccessList: AccessList{}}},
		{"maxFeePerGas on legacy", TxFieldData{MaxFeePerGas: 1}},
		{"maxPriorityFeePerGas on legacy", TxFieldData{MaxPriorityFeePerGas: 1}},
		{"maxFeePerGas on access list", TxFieldData{Type: uint64(1), MaxFeePerGas: 1}},
		{"maxPriorityFeePerGas on access list", TxFieldData{Type: uint64(1), MaxPriorityFeePerGas: 1}},
		{"gasPrice on dynamic fee", TxFieldData{Type: uint64(2), GasPrice: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromFieldData(tc.d); !errors.Is(err, ErrUnsupportedField) {
				t.Fatalf("got %v, want ErrUnsupportedField", err)
			}
		})
	}
}

func TestDefaultsToZero(t *testing.T) {
	tx := mustTx(t, TxFieldData{Type: uint64(2)})
	if tx.ChainId().Sign() != 0 || tx.GasFeeCap().Sign() != 0 || tx.Value().Sign() != 0 {
		t.Fatal("absent numeric fields should default to zero")
	}
	if tx.To() != nil {
		t.Fatal("absent to should stay nil (contract creation)")
	}
	if tx.IsSigned() {
		t.Fatal("absent signature should leave the transaction unsigned")
	}
	if al := tx.AccessList(); len(al) != 0 {
		t.Fatalf("absent access list: got %v", al)
	}
}

func TestGasPricingViews(t *testing.T) {
	legacy := mustTx(t, TxFieldData{GasPrice: big.NewInt(100)})
	if legacy.GasTipCap().Cmp(big.NewInt(100)) != 0 || legacy.GasFeeCap().Cmp(big.NewInt(100)) != 0 {
		t.Fatal("legacy tip/fee caps should mirror gasPrice")
	}
	feeMarket := mustTx(t, TxFieldData{
		Type:                 uint64(2),
		MaxPriorityFeePerGas: big.NewInt(2),
		MaxFeePerGas:         big.NewInt(40),
	})
	if feeMarket.GasPrice().Cmp(big.NewInt(40)) != 0 {
		t.Fatal("fee-market gasPrice view should mirror the fee cap")
	}
	if feeMarket.GasTipCap().Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("tip cap: got %v", feeMarket.GasTipCap())
	}
}

func TestIsSignedSymmetry(t *testing.T) {
	unsigned := mustTx(t, TxFieldData{Nonce: 1})
	if unsigned.IsSigned() {
		t.Fatal("unsigned transaction reports signed")
	}
	signed, err := unsigned.WithSignature(big.NewInt(37), big.NewInt(5), big.NewInt(6))
	if err != nil {
		t.Fatalf("WithSignature: %v", err)
	}
	if !signed.IsSigned() {
		t.Fatal("signed transaction reports unsigned")
	}
	if unsigned.IsSigned() {
		t.Fatal("WithSignature mutated the receiver")
	}
	if _, err := unsigned.WithSignature(big.NewInt(1), nil, big.NewInt(2)); !errors.Is(err, ErrValidation) {
		t.Fatalf("partial WithSignature: got %v, want ErrValidation", err)
	}
}

func TestPartialSignatureRejected(t *testing.T) {
	if _, err := FromFieldData(TxFieldData{V: 27}); !errors.Is(err, ErrValidation) {
		t.Fatalf("field data: got %v, want ErrValidation", err)
	}
	// Hand-assembled variants are re-checked at the freeze point.
	if _, err := NewTx(&LegacyTx{V: big.NewInt(27), GasPrice: new(big.Int), Value: new(big.Int)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("NewTx: got %v, want ErrValidation", err)
	}
}

func TestNewTxSanityChecks(t *testing.T) {
	if _, err := NewTx(&LegacyTx{GasPrice: big.NewInt(-1), Value: new(big.Int)}); !errors.Is(err, ErrRange) {
		t.Fatalf("negative gasPrice: got %v, want ErrRange", err)
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 260)
	if _, err := NewTx(&DynamicFeeTx{
		ChainID: new(big.Int), GasTipCap: new(big.Int), GasFeeCap: new(big.Int), Value: huge,
	}); !errors.Is(err, ErrRange) {
		t.Fatalf("oversized value: got %v, want ErrRange", err)
	}
}

func TestNewTxZeroValuedVariants(t *testing.T) {
	inners := []TxData{
		&LegacyTx{Nonce: 1},
		&AccessListTx{Nonce: 1},
		&DynamicFeeTx{Nonce: 1},
	}
	for _, inner := range inners {
		tx, err := NewTx(inner)
		if err != nil {
			t.Fatalf("NewTx(%T): %v", inner, err)
		}
		if tx.GasPrice().Sign() != 0 || tx.GasTipCap().Sign() != 0 || tx.GasFeeCap().Sign() != 0 {
			t.Fatalf("%T: unset gas pricing should freeze to zero", inner)
		}
		if tx.Value().Sign() != 0 || tx.ChainId().Sign() != 0 {
			t.Fatalf("%T: unset value and chainId should freeze to zero", inner)
		}
		if tx.Cost().Sign() != 0 {
			t.Fatalf("%T: cost of a zero-valued transaction should be zero", inner)
		}
	}
}

func TestAccessorsDoNotAliasFrozenState(t *testing.T) {
	tx := mustTx(t, TxFieldData{
		Type:       uint64(1),
		ChainID:    big.NewInt(7),
		GasPrice:   big.NewInt(3),
		Data:       []byte{1, 2},
		AccessList: testAccessList(),
	})
	tx.ChainId().SetInt64(99)
	tx.Data()[0] = 0xff
	al := tx.AccessList()
	al[0].Address = Address{}
	al[0].StorageKeys[0] = Hash{}

	if tx.ChainId().Int64() != 7 {
		t.Fatal("ChainId aliases frozen state")
	}
	if tx.Data()[0] != 1 {
		t.Fatal("Data aliases frozen state")
	}
	want := testAccessList()
	got := tx.AccessList()
	if got[0].Address != want[0].Address || got[0].StorageKeys[0] != want[0].StorageKeys[0] {
		t.Fatal("AccessList aliases frozen state")
	}
}

func TestFreezeCopiesInner(t *testing.T) {
	inner := &LegacyTx{
		GasPrice: big.NewInt(7),
		Value:    new(big.Int),
		Data:     []byte{1, 2, 3},
	}
	tx, err := NewTx(inner)
	if err != nil {
		t.Fatalf("NewTx: %v", err)
	}
	inner.GasPrice.SetInt64(9999)
	inner.Data[0] = 0xff
	if tx.GasPrice().Cmp(big.NewInt(7)) != 0 {
		t.Fatal("frozen transaction observed a gasPrice mutation")
	}
	if tx.Data()[0] != 1 {
		t.Fatal("frozen transaction observed a data mutation")
	}
}

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		txType  uint8
		cap     Capability
		support bool
	}{
		{LegacyTxType, CapabilityReplayProtection, true},
		{LegacyTxType, CapabilityTypedEnvelope, false},
		{LegacyTxType, CapabilityAccessLists, false},
		{LegacyTxType, CapabilityFeeMarket, false},
		{AccessListTxType, CapabilityReplayProtection, true},
		{AccessListTxType, CapabilityTypedEnvelope, true},
		{AccessListTxType, CapabilityAccessLists, true},
		{AccessListTxType, CapabilityFeeMarket, false},
		{DynamicFeeTxType, CapabilityReplayProtection, true},
		{DynamicFeeTxType, CapabilityTypedEnvelope, true},
		{DynamicFeeTxType, CapabilityAccessLists, true},
		{DynamicFeeTxType, CapabilityFeeMarket, true},
	}
	for _, tc := range cases {
		if got := TypeSupports(tc.txType, tc.cap); got != tc.support {
			t.Fatalf("TypeSupports(%d, %d): got %v, want %v", tc.txType, tc.cap, got, tc.support)
		}
	}
	if TypeSupports(LegacyTxType, Capability(9999)) {
		t.Fatal("unknown capability should report false")
	}
	if TypeSupports(0x7f, CapabilityReplayProtection) {
		t.Fatal("unknown type should report false")
	}
}

func TestTransactionSupports(t *testing.T) {
	tx := mustTx(t, TxFieldData{Type: uint64(2), ChainID: 1})
	if !tx.Supports(CapabilityFeeMarket) {
		t.Fatal("dynamic fee transaction should support the fee market capability")
	}
	if mustTx(t, TxFieldData{}).Supports(CapabilityFeeMarket) {
		t.Fatal("legacy transaction should not support the fee market capability")
	}
}

func TestTypeCapabilitiesIsACopy(t *testing.T) {
	caps := TypeCapabilities(DynamicFeeTxType)
	if len(caps) != 4 {
		t.Fatalf("got %d capabilities, want 4", len(caps))
	}
	caps[0] = Capability(9999)
	if !TypeSupports(DynamicFeeTxType, CapabilityReplayProtection) {
		t.Fatal("mutating the returned slice reached the registry")
	}
}

func TestProtected(t *testing.T) {
	unsigned := mustTx(t, TxFieldData{})
	if unsigned.Protected() {
		t.Fatal("unsigned legacy transaction reports protected")
	}
	raw := mustTx(t, TxFieldData{V: 27, R: 1, S: 1})
	if raw.Protected() {
		t.Fatal("v=27 legacy signature reports protected")
	}
	bound := mustTx(t, TxFieldData{V: 37, R: 1, S: 1})
	if !bound.Protected() {
		t.Fatal("v=37 legacy signature reports unprotected")
	}
	if got := bound.ChainId(); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("derived chainId: got %v, want 1", got)
	}
	typed := mustTx(t, TxFieldData{Type: uint64(1), ChainID: 1})
	if !typed.Protected() {
		t.Fatal("typed transaction reports unprotected")
	}
}

func TestCost(t *testing.T) {
	tx := mustTx(t, TxFieldData{
		GasPrice: big.NewInt(2),
		GasLimit: uint64(21000),
		Value:    big.NewInt(5),
	})
	if got := tx.Cost(); got.Cmp(big.NewInt(2*21000+5)) != 0 {
		t.Fatalf("Cost: got %v, want %d", got, 2*21000+5)
	}
}

func TestSize(t *testing.T) {
	tx := mustTx(t, TxFieldData{
		Type:       uint64(1),
		ChainID:    big.NewInt(1),
		To:         testAddr,
		AccessList: testAccessList(),
	})
	// chainId(1) + to(20) + both access list entries (20+2*32 and 20).
	want := uint64(1 + 20 + 20 + 2*32 + 20)
	if got := tx.Size(); got != want {
		t.Fatalf("Size: got %d, want %d", got, want)
	}
	if got := tx.Size(); got != want {
		t.Fatalf("memoized Size: got %d, want %d", got, want)
	}
}

func TestSenderCache(t *testing.T) {
	tx := mustTx(t, TxFieldData{})
	if tx.Sender() != nil {
		t.Fatal("sender cache should start empty")
	}
	tx.SetSender(testAddr)
	got := tx.Sender()
	if got == nil || *got != testAddr {
		t.Fatalf("Sender: got %v, want %v", got, testAddr)
	}
}

func TestTxByNonce(t *testing.T) {
	txs := Transactions{
		mustTx(t, TxFieldData{Nonce: 3}),
		mustTx(t, TxFieldData{Nonce: 1}),
		mustTx(t, TxFieldData{Nonce: 2}),
	}
	sort.Sort(TxByNonce(txs))
	for i, tx := range txs {
		if tx.Nonce() != uint64(i+1) {
			t.Fatalf("position %d: nonce %d", i, tx.Nonce())
		}
	}
}

package types

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"
)

// FuzzValuesArrayRoundtrip builds transactions with fuzz-derived fields,
// converts them to the positional values array, decodes them back, and
// verifies the roundtrip.
func FuzzValuesArrayRoundtrip(f *testing.F) {
	f.Add(uint8(0), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	f.Add(uint8(1), []byte{0xff, 0xee, 0xdd, 0xcc, 0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00})
	f.Add(uint8(2), []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2})

	f.Fuzz(func(t *testing.T, txType uint8, data []byte) {
		if len(data) < 16 {
			return
		}
		txType %= 3

		d := TxFieldData{
			Nonce:    uint64(data[0])<<8 | uint64(data[1]),
			GasLimit: uint64(data[2])<<8 | uint64(data[3]),
			Value:    new(big.Int).SetBytes(data[4:8]),
			Data:     data[8:12],
		}
		if data[12]%2 == 0 {
			d.To = BytesToAddress(data[12:])
		}
		price := new(big.Int).SetBytes(data[13:15])
		switch txType {
		case LegacyTxType:
			d.GasPrice = price
		case AccessListTxType:
			d.Type = uint64(AccessListTxType)
			d.ChainID = uint64(data[15])
			d.GasPrice = price
		case DynamicFeeTxType:
			d.Type = uint64(DynamicFeeTxType)
			d.ChainID = uint64(data[15])
			d.MaxPriorityFeePerGas = price
			d.MaxFeePerGas = new(big.Int).Add(price, big.NewInt(1))
		}
		if data[14]%2 == 0 {
			d.V = new(big.Int).SetBytes(data[0:1])
			// Keep r nonzero so the triple never collides with the all-zero
			// unsigned rendering in JSON.
			d.R = new(big.Int).Add(new(big.Int).SetBytes(data[1:5]), big.NewInt(1))
			d.S = new(big.Int).SetBytes(data[5:9])
		}

		tx, err := FromFieldData(d)
		if err != nil {
			t.Fatalf("FromFieldData: %v", err)
		}

		back, err := FromValuesArray(tx.Type(), tx.ValuesArray())
		if err != nil {
			t.Fatalf("FromValuesArray: %v", err)
		}
		if back.Nonce() != tx.Nonce() || back.Gas() != tx.Gas() {
			t.Fatal("values array roundtrip changed nonce or gas")
		}
		if back.Value().Cmp(tx.Value()) != 0 || back.GasPrice().Cmp(tx.GasPrice()) != 0 {
			t.Fatal("values array roundtrip changed a numeric field")
		}
		if !bytes.Equal(back.Data(), tx.Data()) {
			t.Fatal("values array roundtrip changed the payload")
		}
		if back.IsSigned() != tx.IsSigned() {
			t.Fatal("values array roundtrip changed signature presence")
		}

		raw, err := json.Marshal(tx)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var jsonBack Transaction
		if err := json.Unmarshal(raw, &jsonBack); err != nil {
			t.Fatalf("Unmarshal(%s): %v", raw, err)
		}
		raw2, err := json.Marshal(&jsonBack)
		if err != nil {
			t.Fatalf("re-Marshal: %v", err)
		}
		if !bytes.Equal(raw, raw2) {
			t.Fatalf("JSON not canonical:\n first %s\nsecond %s", raw, raw2)
		}
	})
}

package types

import "fmt"

// AccessTuple is a single address and its accessed storage slots. This is the
// struct form of an access list entry, used by the JSON interface.
type AccessTuple struct {
	Address     Address `json:"address"`
	StorageKeys []Hash  `json:"storageKeys"`
}

// AccessList is the ordered struct-form access list of a transaction.
// Ordering is consensus-relevant and preserved through every conversion.
// Duplicate entries are not rejected at this layer.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys in the access list.
func (al AccessList) StorageKeys() int {
	sum := 0
	for _, tuple := range al {
		sum += len(tuple.StorageKeys)
	}
	return sum
}

// AccessTupleBuffer is the positional form of an access list entry: the raw
// address bytes followed by the raw storage key bytes, in declaration order.
// This is the shape the wire codec consumes and produces.
type AccessTupleBuffer struct {
	Address     []byte
	StorageKeys [][]byte
}

// AccessListBuffer is the ordered positional-form access list.
type AccessListBuffer []AccessTupleBuffer

// Buffer converts the struct form to the positional form. The conversion is
// total: struct-form values carry fixed-width types by construction.
func (al AccessList) Buffer() AccessListBuffer {
	buf := make(AccessListBuffer, len(al))
	for i, tuple := range al {
		keys := make([][]byte, len(tuple.StorageKeys))
		for j, key := range tuple.StorageKeys {
			k := key
			keys[j] = k.Bytes()
		}
		buf[i] = AccessTupleBuffer{
			Address:     tuple.Address.Bytes(),
			StorageKeys: keys,
		}
	}
	return buf
}

// StructForm converts the positional form back to the struct form. Address
// and storage key widths are re-checked so a buffer assembled by a caller
// cannot smuggle in truncated or padded values.
func (buf AccessListBuffer) StructForm() (AccessList, error) {
	al := make(AccessList, len(buf))
	for i, item := range buf {
		if len(item.Address) != AddressLength {
			return nil, fmt.Errorf("%w: access list entry %d: address is %d bytes, want %d",
				ErrValidation, i, len(item.Address), AddressLength)
		}
		tuple := AccessTuple{StorageKeys: make([]Hash, len(item.StorageKeys))}
		copy(tuple.Address[:], item.Address)
		for j, key := range item.StorageKeys {
			if len(key) != HashLength {
				return nil, fmt.Errorf("%w: access list entry %d: storage key %d is %d bytes, want %d",
					ErrValidation, i, j, len(key), HashLength)
			}
			copy(tuple.StorageKeys[j][:], key)
		}
		al[i] = tuple
	}
	return al, nil
}

// IsAccessListBuffer reports whether a loose access list input is in
// positional form. Struct-form elements are key-value records, positional
// elements are tuples. An empty list has no elements to inspect and is
// classified as positional form by convention; the two forms are
// interchangeable at length zero.
func IsAccessListBuffer(input any) bool {
	switch v := input.(type) {
	case nil:
		return true
	case AccessList:
		return false
	case []AccessTuple:
		return false
	case AccessListBuffer:
		return true
	case []AccessTupleBuffer:
		return true
	case []any:
		if len(v) == 0 {
			return true
		}
		switch v[0].(type) {
		case map[string]any, AccessTuple:
			return false
		}
		return true
	default:
		return true
	}
}

// NormalizeAccessList validates a loose access list input and returns it in
// both forms. Accepted inputs are nil, the two typed forms, and JSON-decoded
// loose data ([]any of records for the struct form, []any of tuples for the
// positional form). Address and storage key values given as strings must be
// "0x"-prefixed hex of exactly 20 and 32 bytes.
func NormalizeAccessList(input any) (AccessList, AccessListBuffer, error) {
	var (
		al  AccessList
		err error
	)
	switch v := input.(type) {
	case nil:
		al = AccessList{}
	case AccessList:
		al = v
	case []AccessTuple:
		al = AccessList(v)
	case AccessListBuffer:
		al, err = v.StructForm()
	case []AccessTupleBuffer:
		al, err = AccessListBuffer(v).StructForm()
	case []any:
		if IsAccessListBuffer(v) {
			al, err = looseBufferStructForm(v)
		} else {
			al, err = looseStructForm(v)
		}
	default:
		return nil, nil, fmt.Errorf("%w: access list of type %T", ErrTypeMismatch, input)
	}
	if err != nil {
		return nil, nil, err
	}
	return al, al.Buffer(), nil
}

// looseStructForm converts JSON-decoded struct-form entries.
func looseStructForm(items []any) (AccessList, error) {
	al := make(AccessList, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			if tuple, ok := item.(AccessTuple); ok {
				al[i] = tuple
				continue
			}
			return nil, fmt.Errorf("%w: access list entry %d of type %T", ErrTypeMismatch, i, item)
		}
		tuple, err := looseStructTuple(record)
		if err != nil {
			return nil, fmt.Errorf("access list entry %d: %w", i, err)
		}
		al[i] = tuple
	}
	return al, nil
}

func looseStructTuple(record map[string]any) (AccessTuple, error) {
	var tuple AccessTuple
	addr, err := normalizeTupleBytes(record["address"], AddressLength)
	if err != nil {
		return tuple, fmt.Errorf("address: %w", err)
	}
	copy(tuple.Address[:], addr)

	keys, err := looseKeyList(record["storageKeys"])
	if err != nil {
		return tuple, err
	}
	tuple.StorageKeys = keys
	return tuple, nil
}

// looseBufferStructForm converts JSON-decoded positional-form entries, each a
// two-element tuple of address and storage key list.
func looseBufferStructForm(items []any) (AccessList, error) {
	al := make(AccessList, len(items))
	for i, item := range items {
		tuple, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: access list entry %d of type %T", ErrTypeMismatch, i, item)
		}
		if len(tuple) != 2 {
			return nil, fmt.Errorf("%w: access list entry %d has %d elements, want 2", ErrValidation, i, len(tuple))
		}
		addr, err := normalizeTupleBytes(tuple[0], AddressLength)
		if err != nil {
			return nil, fmt.Errorf("access list entry %d: address: %w", i, err)
		}
		copy(al[i].Address[:], addr)

		keys, err := looseKeyList(tuple[1])
		if err != nil {
			return nil, fmt.Errorf("access list entry %d: %w", i, err)
		}
		al[i].StorageKeys = keys
	}
	return al, nil
}

func looseKeyList(input any) ([]Hash, error) {
	var raw []any
	switch v := input.(type) {
	case nil:
		return []Hash{}, nil
	case []any:
		raw = v
	case []string:
		raw = make([]any, len(v))
		for i, s := range v {
			raw[i] = s
		}
	case [][]byte:
		raw = make([]any, len(v))
		for i, b := range v {
			raw[i] = b
		}
	case []Hash:
		keys := make([]Hash, len(v))
		copy(keys, v)
		return keys, nil
	default:
		return nil, fmt.Errorf("%w: storage keys of type %T", ErrTypeMismatch, input)
	}
	keys := make([]Hash, len(raw))
	for i, item := range raw {
		b, err := normalizeTupleBytes(item, HashLength)
		if err != nil {
			return nil, fmt.Errorf("storage key %d: %w", i, err)
		}
		copy(keys[i][:], b)
	}
	return keys, nil
}

// normalizeTupleBytes coerces an address or storage key value to raw bytes of
// the exact wanted width. Fixed-width fields are never padded or truncated.
func normalizeTupleBytes(input any, want int) ([]byte, error) {
	switch v := input.(type) {
	case []byte:
		if len(v) != want {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrValidation, len(v), want)
		}
		return v, nil
	case string:
		return decodeFixedHex(v, want)
	case Address:
		if want != AddressLength {
			return nil, fmt.Errorf("%w: got address, want %d bytes", ErrValidation, want)
		}
		return v.Bytes(), nil
	case Hash:
		if want != HashLength {
			return nil, fmt.Errorf("%w: got hash, want %d bytes", ErrValidation, want)
		}
		return v.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: value of type %T", ErrTypeMismatch, input)
	}
}

func copyAccessList(al AccessList) AccessList {
	if al == nil {
		return nil
	}
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		cpy[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: make([]Hash, len(tuple.StorageKeys)),
		}
		copy(cpy[i].StorageKeys, tuple.StorageKeys)
	}
	return cpy
}

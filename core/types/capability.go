package types

// Capability identifies a protocol feature a transaction type may support.
// The values are the EIP numbers that introduced the feature.
type Capability uint16

const (
	// CapabilityReplayProtection marks support for chain-bound signatures
	// (EIP-155).
	CapabilityReplayProtection Capability = 155

	// CapabilityFeeMarket marks support for maxFeePerGas and
	// maxPriorityFeePerGas pricing (EIP-1559).
	CapabilityFeeMarket Capability = 1559

	// CapabilityTypedEnvelope marks transactions carried in a typed envelope
	// rather than the bare legacy encoding (EIP-2718).
	CapabilityTypedEnvelope Capability = 2718

	// CapabilityAccessLists marks support for declared access lists
	// (EIP-2930).
	CapabilityAccessLists Capability = 2930
)

// typeCapabilities is the static transaction-type to capability-set table.
// It is kept in lockstep with the TxData implementations in this package:
// a type is listed for a capability only if its schema carries the fields
// the capability depends on.
var typeCapabilities = map[uint8][]Capability{
	LegacyTxType: {
		CapabilityReplayProtection,
	},
	AccessListTxType: {
		CapabilityReplayProtection,
		CapabilityTypedEnvelope,
		CapabilityAccessLists,
	},
	DynamicFeeTxType: {
		CapabilityReplayProtection,
		CapabilityTypedEnvelope,
		CapabilityAccessLists,
		CapabilityFeeMarket,
	},
}

// TypeSupports reports whether the given transaction type supports the given
// capability. Unknown transaction types and unknown capabilities report false.
func TypeSupports(txType uint8, c Capability) bool {
	for _, have := range typeCapabilities[txType] {
		if have == c {
			return true
		}
	}
	return false
}

// TypeCapabilities returns the capability set of the given transaction type.
// The returned slice is a copy and may be modified by the caller.
func TypeCapabilities(txType uint8) []Capability {
	caps := typeCapabilities[txType]
	if caps == nil {
		return nil
	}
	cpy := make([]Capability, len(caps))
	copy(cpy, caps)
	return cpy
}

package wire

// Dynamic value model for schema-driven encoding. Generators emit typed
// code; this model exists for conformance testing and tooling that must
// interpret arbitrary schemas at run time.
//
// Scalars map to their natural Go types: bool, byte, int16, uint16,
// int32, uint32, int64, uint64, float32, float64, string, [16]byte for
// guid, int64 ticks for date. Enums carry the backing scalar's value.

// Opt wraps an optional value so nested options stay representable:
// Opt{Present: true, Value: Opt{}} is a present "none".
type Opt struct {
	Present bool
	Value   any
}

// Some is a present optional.
func Some(v any) Opt {
	return Opt{Present: true, Value: v}
}

// None is an absent optional.
func None() Opt {
	return Opt{}
}

// MapEntry is one key/value pair of a schema map. Entries encode in
// slice order; iteration order on decode is not part of the contract.
type MapEntry struct {
	Key   any
	Value any
}

// Record is a struct or message value keyed by field name. Message
// fields missing from the record are absent on the wire.
type Record map[string]any

// UnionValue selects one branch of a union by discriminator.
type UnionValue struct {
	Discriminator uint8
	Value         any
}

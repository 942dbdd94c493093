/*
Package wireserde converts Go composite types to and from four wire
representations: JSON, a length-prefixed binary format, RON (Rusty
Object Notation), and TOML (serialization only; FromTOML returns
ErrUnsupported).

 Attribute Model

 Field-level options live in a `wire:"..."` struct tag, the same comma
 syntax as encoding/json's `json:"name,opt,opt"`:

	Field string `wire:"-"`              // skipped: not written, not expected
	Field string `wire:"myName"`         // wire key "myName"
	Field string `wire:"myName,default"` // missing input -> Go zero value
	Field string `wire:",null"`          // absent writes "null" instead of omitting the key

 Container-level options have no Go field of their own to live on, so
 they live on an embedded marker field:

	type Circle struct {
		wireserde.Container `wire:"positional"`
		Radius float64
	}

 Recognized container words: "positional" (emit fields as a wire array/
 tuple, not a keyed object), "transparent" (legal only with exactly one
 other field — that field's own wire form replaces the whole record),
 "null" (container-wide default for serialize_none_as_null), and
 "rename=<name>" (used when this type is a tagged-union variant).

 Container default/default_with are not attributes at all: a type that
 needs non-zero starting field values implements Defaulter; a type that
 wants to go through a sibling wire representation implements Proxy/
 ProxyTarget. See attr.go.

 Tagged Unions

 Go has no sum type, so a tagged union is an interface plus an ordered,
 explicitly registered list of concrete variant types:

	type Shape interface{ isShape() }
	type Circle struct{ Radius float64 }
	func (Circle) isShape() {}
	type Square struct{ Side int }
	func (Square) isShape() {}

	func init() {
		wireserde.RegisterUnion((*Shape)(nil), Circle{}, Square{})
	}

 JSON encodes a variant as {"VariantName": payload}: null for a unit
 variant, an array for a positional record, an object for a named
 record. RON encodes it as VariantName(payload) or bare VariantName for
 units. Binary encodes the u32 declaration index from RegisterUnion,
 then the payload with no framing.

 Wire Value Model

 Every engine treats a value as one of: integer (signed/unsigned, up to
 64 bits), float (32/64), bool, string, optional (Go pointer, nil =
 absent), sequence (Go slice/array), map (Go map), or composite (struct
 or tagged-union variant). Field iteration order on the wire always
 equals Go declaration order. JSON/RON duplicate object keys resolve
 last-wins on decode.

 Binary Layout

	integer (u8/i8)              1 byte
	integer (u16/i16 .. u64/i64) little-endian, natural width
	float32/float64               IEEE-754 little-endian
	bool                           1 byte, 0 or 1
	string                         u64 length, then that many UTF-8 bytes
	optional                       1-byte tag (0 absent, 1 present), then payload
	sequence                       u64 element count, then concatenated elements
	map                            u64 entry count, then concatenated (key,value) pairs
	record                         concatenated fields in declaration order, no framing
	tagged union                   u32 variant index in declaration order, then payload

 The binary format has no backward-compatibility story: renaming or
 reordering a struct's fields invalidates bytes already encoded with
 the old layout.

 Concurrency

 Every exported function is a pure function of its argument: parsing
 reads a caller-owned buffer and returns a new value or error; emitting
 appends to a freshly allocated buffer and returns it. There is no
 package-level mutable state except the union registry populated by
 RegisterUnion, which callers are expected to populate once at
 init()-time before any concurrent use begins, the same contract
 encoding/gob.Register carries.
*/
package wireserde

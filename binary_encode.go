package wireserde

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// ToBinary encodes v to spec.md §4.5's length-prefixed binary layout.
// Grounded on sbunce-bson/encode.go's encodeStruct/encodeMap: a
// bytes.Buffer accumulator and a single recursive encodeBinaryValue
// dispatch, generalized from BSON's fixed element-tag vocabulary to
// reflect.Kind-driven dispatch.
func ToBinary(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	// A top-level pointer is the "pass a pointer for convenience" form
	// spec.md's External Interfaces allow for encode, not an Option<T>;
	// it is unwrapped once, untagged, exactly as FromBinary unwraps the
	// caller's destination pointer once before decoding into it. Nested
	// pointer fields reached below remain real optionals with a tag byte.
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	buf := &bytes.Buffer{}
	if err := encodeBinaryValue(buf, rv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustToBinary panics on error, mirroring sbunce-bson's
// MustEncodeStruct.
func MustToBinary(v interface{}) []byte {
	b, err := ToBinary(v)
	if err != nil {
		panic(err)
	}
	return b
}

func encodeBinaryValue(buf *bytes.Buffer, rv reflect.Value) error {
	if !rv.IsValid() {
		return fmt.Errorf("wireserde: cannot encode nil value")
	}

	if rv.Kind() == reflect.Ptr {
		return encodeBinaryOptional(buf, rv)
	}

	if rv.CanInterface() {
		if p, ok := rv.Interface().(Proxy); ok {
			return encodeBinaryValue(buf, reflect.ValueOf(p.ToProxy()))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return encodeBinaryBool(buf, rv.Bool())
	case reflect.Int8:
		return buf.WriteByte(byte(int8(rv.Int())))
	case reflect.Uint8:
		return buf.WriteByte(byte(rv.Uint()))
	case reflect.Int16:
		return binary.Write(buf, binary.LittleEndian, int16(rv.Int()))
	case reflect.Uint16:
		return binary.Write(buf, binary.LittleEndian, uint16(rv.Uint()))
	case reflect.Int32:
		return binary.Write(buf, binary.LittleEndian, int32(rv.Int()))
	case reflect.Uint32:
		return binary.Write(buf, binary.LittleEndian, uint32(rv.Uint()))
	case reflect.Int, reflect.Int64:
		return binary.Write(buf, binary.LittleEndian, rv.Int())
	case reflect.Uint, reflect.Uint64:
		return binary.Write(buf, binary.LittleEndian, rv.Uint())
	case reflect.Float32:
		return binary.Write(buf, binary.LittleEndian, math.Float32bits(float32(rv.Float())))
	case reflect.Float64:
		return binary.Write(buf, binary.LittleEndian, math.Float64bits(rv.Float()))
	case reflect.String:
		return encodeBinaryString(buf, rv.String())
	case reflect.Slice, reflect.Array:
		return encodeBinarySeq(buf, rv)
	case reflect.Map:
		return encodeBinaryMap(buf, rv)
	case reflect.Struct:
		return encodeBinaryStruct(buf, rv)
	case reflect.Interface:
		return encodeBinaryUnion(buf, rv)
	default:
		return fmt.Errorf("wireserde: cannot encode %s to binary", rv.Type())
	}
}

func encodeBinaryBool(buf *bytes.Buffer, b bool) error {
	if b {
		return buf.WriteByte(1)
	}
	return buf.WriteByte(0)
}

func encodeBinaryString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

func encodeBinaryOptional(buf *bytes.Buffer, rv reflect.Value) error {
	if rv.IsNil() {
		return buf.WriteByte(0)
	}
	if err := buf.WriteByte(1); err != nil {
		return err
	}
	return encodeBinaryValue(buf, rv.Elem())
}

func encodeBinarySeq(buf *bytes.Buffer, rv reflect.Value) error {
	n := rv.Len()
	if err := binary.Write(buf, binary.LittleEndian, uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := encodeBinaryValue(buf, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func encodeBinaryMap(buf *bytes.Buffer, rv reflect.Value) error {
	keys := rv.MapKeys()
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := encodeBinaryValue(buf, k); err != nil {
			return err
		}
		if err := encodeBinaryValue(buf, rv.MapIndex(k)); err != nil {
			return err
		}
	}
	return nil
}

func encodeBinaryStruct(buf *bytes.Buffer, rv reflect.Value) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	if ti.container.positional || ti.transparent != nil {
		fields := ti.fields
		if ti.transparent != nil {
			fields = []fieldInfo{*ti.transparent}
		}
		for _, f := range fields {
			if err := encodeBinaryValue(buf, rv.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range ti.fields {
		if err := encodeBinaryValue(buf, rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func encodeBinaryUnion(buf *bytes.Buffer, rv reflect.Value) error {
	if rv.IsNil() {
		return fmt.Errorf("wireserde: cannot encode nil union value")
	}
	concrete := rv.Elem()
	ui, ok := lookupUnion(rv.Type())
	if !ok {
		return fmt.Errorf("wireserde: union %s was never registered with RegisterUnion", rv.Type())
	}
	_, idx := ui.variantByType(concrete.Type())
	if idx < 0 {
		return fmt.Errorf("wireserde: %s is not a registered variant of %s", concrete.Type(), rv.Type())
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(idx)); err != nil {
		return err
	}
	if unitVariant(concrete.Type()) {
		return nil
	}
	return encodeBinaryStruct(buf, concrete)
}

package wireserde

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// FromBinary decodes the spec.md §4.5 binary layout from data into v (a
// pointer). The format carries no backward-compatibility story:
// renaming or reordering a type's fields invalidates previously encoded
// bytes, exactly as spec.md states.
func FromBinary(data []byte, v interface{}) error {
	cursor := 0
	return FromBinaryPrefixed(data, &cursor, v)
}

// FromBinaryPrefixed decodes one value starting at *cursor, advancing
// it past the bytes consumed — the incremental entry point spec.md §6
// requires.
func FromBinaryPrefixed(data []byte, cursor *int, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("wireserde: FromBinaryPrefixed requires a non-nil pointer")
	}
	d := &binDecoder{buf: data, pos: *cursor}
	if err := d.decodeValue(rv.Elem(), 0); err != nil {
		return err
	}
	*cursor = d.pos
	return nil
}

type binDecoder struct {
	buf []byte
	pos int
}

func (d *binDecoder) eof(msg string) error {
	return &BinarySyntaxError{Msg: msg, Offset: d.pos}
}

func (d *binDecoder) readN(n int) ([]byte, error) {
	if d.pos+n > len(d.buf) {
		return nil, ErrUnexpectedEOF
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *binDecoder) readByte() (byte, error) {
	b, err := d.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *binDecoder) readUint64() (uint64, error) {
	b, err := d.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *binDecoder) decodeValue(rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return depthError{}
	}

	if rv.Kind() == reflect.Ptr {
		return d.decodeOptional(rv, depth)
	}

	if rv.CanAddr() {
		if pt, ok := rv.Addr().Interface().(ProxyTarget); ok {
			var proxy Value
			if err := d.decodeValue(reflect.ValueOf(&proxy).Elem(), depth+1); err != nil {
				return err
			}
			return pt.FromProxy(proxy)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		rv.SetBool(b != 0)
		return nil
	case reflect.Int8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		rv.SetInt(int64(int8(b)))
		return nil
	case reflect.Uint8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(b))
		return nil
	case reflect.Int16:
		b, err := d.readN(2)
		if err != nil {
			return err
		}
		rv.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
		return nil
	case reflect.Uint16:
		b, err := d.readN(2)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(binary.LittleEndian.Uint16(b)))
		return nil
	case reflect.Int32:
		b, err := d.readN(4)
		if err != nil {
			return err
		}
		rv.SetInt(int64(int32(binary.LittleEndian.Uint32(b))))
		return nil
	case reflect.Uint32:
		b, err := d.readN(4)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(binary.LittleEndian.Uint32(b)))
		return nil
	case reflect.Int, reflect.Int64:
		u, err := d.readUint64()
		if err != nil {
			return err
		}
		rv.SetInt(int64(u))
		return nil
	case reflect.Uint, reflect.Uint64:
		u, err := d.readUint64()
		if err != nil {
			return err
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32:
		b, err := d.readN(4)
		if err != nil {
			return err
		}
		rv.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
		return nil
	case reflect.Float64:
		b, err := d.readN(8)
		if err != nil {
			return err
		}
		rv.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		return nil
	case reflect.String:
		s, err := d.readString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Slice, reflect.Array:
		return d.decodeSeq(rv, depth)
	case reflect.Map:
		return d.decodeMap(rv, depth)
	case reflect.Struct:
		return d.decodeStruct(rv, depth)
	case reflect.Interface:
		return d.decodeUnion(rv, depth)
	default:
		return fmt.Errorf("wireserde: cannot decode binary into %s", rv.Type())
	}
}

func (d *binDecoder) readString() (string, error) {
	n, err := d.readUint64()
	if err != nil {
		return "", err
	}
	b, err := d.readN(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &InvalidUTF8Error{Offset: d.pos - int(n)}
	}
	return string(b), nil
}

func (d *binDecoder) decodeOptional(rv reflect.Value, depth int) error {
	tag, err := d.readByte()
	if err != nil {
		return err
	}
	switch tag {
	case 0:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case 1:
		rv.Set(reflect.New(rv.Type().Elem()))
		return d.decodeValue(rv.Elem(), depth+1)
	default:
		return &BinarySyntaxError{Msg: fmt.Sprintf("invalid optional tag %d", tag), Offset: d.pos - 1}
	}
}

func (d *binDecoder) decodeSeq(rv reflect.Value, depth int) error {
	n, err := d.readUint64()
	if err != nil {
		return err
	}
	if rv.Kind() == reflect.Array {
		if int(n) != rv.Len() {
			return &BinarySyntaxError{Msg: fmt.Sprintf("array length mismatch: wire has %d, type has %d", n, rv.Len()), Offset: d.pos}
		}
		for i := 0; i < int(n); i++ {
			if err := d.decodeValue(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	out := reflect.MakeSlice(rv.Type(), int(n), int(n))
	for i := 0; i < int(n); i++ {
		if err := d.decodeValue(out.Index(i), depth+1); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

func (d *binDecoder) decodeMap(rv reflect.Value, depth int) error {
	n, err := d.readUint64()
	if err != nil {
		return err
	}
	out := reflect.MakeMapWithSize(rv.Type(), int(n))
	kt, vt := rv.Type().Key(), rv.Type().Elem()
	for i := 0; i < int(n); i++ {
		k := reflect.New(kt).Elem()
		if err := d.decodeValue(k, depth+1); err != nil {
			return err
		}
		v := reflect.New(vt).Elem()
		if err := d.decodeValue(v, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(k, v)
	}
	rv.Set(out)
	return nil
}

func (d *binDecoder) decodeStruct(rv reflect.Value, depth int) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	seedDefaults(rv)
	if ti.container.positional || ti.transparent != nil {
		fields := ti.fields
		if ti.transparent != nil {
			fields = []fieldInfo{*ti.transparent}
		}
		for _, f := range fields {
			if err := d.decodeValue(rv.Field(f.index), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range ti.fields {
		if err := d.decodeValue(rv.Field(f.index), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (d *binDecoder) decodeUnion(rv reflect.Value, depth int) error {
	ui, ok := lookupUnion(rv.Type())
	if !ok {
		return fmt.Errorf("wireserde: union %s was never registered with RegisterUnion", rv.Type())
	}
	idxU, err := d.readN(4)
	if err != nil {
		return err
	}
	idx := int(binary.LittleEndian.Uint32(idxU))
	variant, ok := ui.variantByIndex(idx)
	if !ok {
		return ErrInvalidTag
	}
	concrete := reflect.New(variant.typ).Elem()
	if !unitVariant(variant.typ) {
		if err := d.decodeStruct(concrete, depth+1); err != nil {
			return err
		}
	}
	rv.Set(concrete)
	return nil
}

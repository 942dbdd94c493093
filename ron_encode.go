package wireserde

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
)

// ToRON encodes v as canonical, comma-separated RON, per spec.md §4.4.
func ToRON(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := writeRON(buf, reflect.ValueOf(v), "", 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToRONPretty encodes v with two-space indentation. Shares writeRON
// with ToRON so the pretty/compact re-parse equivalence property holds
// structurally.
func ToRONPretty(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := writeRON(buf, reflect.ValueOf(v), "  ", 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustToRON panics on error, mirroring sbunce-bson's MustEncodeStruct.
func MustToRON(v interface{}) string {
	s, err := ToRON(v)
	if err != nil {
		panic(err)
	}
	return s
}

func writeRON(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	if depth > maxDepth {
		return depthError{}
	}
	if !rv.IsValid() {
		buf.WriteString("None")
		return nil
	}

	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() > 0 {
			return writeRONUnion(buf, rv, indent, depth)
		}
		if rv.IsNil() {
			buf.WriteString("None")
			return nil
		}
		return writeRON(buf, rv.Elem(), indent, depth)
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			buf.WriteString("None")
			return nil
		}
		buf.WriteString("Some(")
		if err := writeRON(buf, rv.Elem(), indent, depth+1); err != nil {
			return err
		}
		buf.WriteByte(')')
		return nil
	}

	if rv.CanInterface() {
		if p, ok := rv.Interface().(Proxy); ok {
			return writeRON(buf, reflect.ValueOf(p.ToProxy()), indent, depth)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32:
		buf.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
		return nil
	case reflect.Float64:
		buf.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
		return nil
	case reflect.String:
		writeJSONString(buf, rv.String()) // RON string literals use the same escape set
		return nil
	case reflect.Slice, reflect.Array:
		return writeRONSeq(buf, rv, indent, depth)
	case reflect.Map:
		return writeRONMap(buf, rv, indent, depth)
	case reflect.Struct:
		return writeRONStruct(buf, rv, indent, depth)
	default:
		return fmt.Errorf("wireserde: cannot encode %s to RON", rv.Type())
	}
}

func writeRONSeq(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	n := rv.Len()
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		if err := writeRON(buf, rv.Index(i), indent, depth+1); err != nil {
			return err
		}
	}
	if n > 0 {
		newline(buf, indent, depth)
	}
	buf.WriteByte(']')
	return nil
}

func writeRONMap(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	keys := rv.MapKeys()
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		if err := writeRON(buf, k, indent, depth+1); err != nil {
			return err
		}
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeRON(buf, rv.MapIndex(k), indent, depth+1); err != nil {
			return err
		}
	}
	if len(keys) > 0 {
		newline(buf, indent, depth)
	}
	buf.WriteByte('}')
	return nil
}

func writeRONStruct(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	if ti.transparent != nil {
		return writeRON(buf, rv.Field(ti.transparent.index), indent, depth)
	}
	return writeRONBody(buf, rv, rv.Type().Name(), ti, indent, depth)
}

// writeRONBody writes "Name(...)" or bare "Name" for a unit record,
// shared by plain structs and registered union variants.
func writeRONBody(buf *bytes.Buffer, rv reflect.Value, name string, ti *typeInfo, indent string, depth int) error {
	buf.WriteString(name)
	if len(ti.fields) == 0 {
		return nil
	}
	buf.WriteByte('(')
	for i, f := range ti.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		if !ti.container.positional {
			buf.WriteString(f.wireName)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
		}
		if err := writeRON(buf, rv.Field(f.index), indent, depth+1); err != nil {
			return err
		}
	}
	newline(buf, indent, depth)
	buf.WriteByte(')')
	return nil
}

func writeRONUnion(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	if rv.IsNil() {
		buf.WriteString("None")
		return nil
	}
	concrete := rv.Elem()
	ui, ok := lookupUnion(rv.Type())
	if !ok {
		return fmt.Errorf("wireserde: union %s was never registered with RegisterUnion", rv.Type())
	}
	variant, idx := ui.variantByType(concrete.Type())
	if idx < 0 {
		return fmt.Errorf("wireserde: %s is not a registered variant of %s", concrete.Type(), rv.Type())
	}
	ti, err := walkType(concrete.Type())
	if err != nil {
		return err
	}
	return writeRONBody(buf, concrete, variant.name, ti, indent, depth)
}

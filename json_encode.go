package wireserde

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
)

// ToJSON encodes v as compact JSON, per spec.md §4.3.
func ToJSON(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, reflect.ValueOf(v), "", 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSONPretty encodes v as two-space-indented JSON. Re-parsing a
// pretty and a compact encoding of the same value must yield identical
// results (spec.md §8's pretty/compact equivalence property); both
// share writeJSON, differing only in the indent string passed in.
func ToJSONPretty(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, reflect.ValueOf(v), "  ", 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustToJSON panics on error, mirroring sbunce-bson's MustEncodeStruct.
func MustToJSON(v interface{}) string {
	s, err := ToJSON(v)
	if err != nil {
		panic(err)
	}
	return s
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

func writeJSON(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	if depth > maxDepth {
		return depthError{}
	}
	if !rv.IsValid() {
		buf.WriteString("null")
		return nil
	}

	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.Kind() == reflect.Interface && rv.NumMethod() > 0 {
			return writeJSONUnion(buf, rv, indent, depth)
		}
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, rv.Elem(), indent, depth)
	}

	if rv.CanInterface() {
		if p, ok := rv.Interface().(Proxy); ok {
			return writeJSON(buf, reflect.ValueOf(p.ToProxy()), indent, depth)
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
		writeJSONString(buf, rv.String())
		return nil
	case reflect.Slice, reflect.Array:
		return writeJSONSeq(buf, rv, indent, depth)
	case reflect.Map:
		return writeJSONMap(buf, rv, indent, depth)
	case reflect.Struct:
		return writeJSONStruct(buf, rv, indent, depth)
	default:
		return fmt.Errorf("wireserde: cannot encode %s to JSON", rv.Type())
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

func writeJSONSeq(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	n := rv.Len()
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		if err := writeJSON(buf, rv.Index(i), indent, depth+1); err != nil {
			return err
		}
	}
	if n > 0 {
		newline(buf, indent, depth)
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONMap(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	keys := rv.MapKeys()
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		writeJSONString(buf, fmt.Sprintf("%v", k.Interface()))
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeJSON(buf, rv.MapIndex(k), indent, depth+1); err != nil {
			return err
		}
	}
	if len(keys) > 0 {
		newline(buf, indent, depth)
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONStruct(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	if ti.transparent != nil {
		return writeJSON(buf, rv.Field(ti.transparent.index), indent, depth)
	}
	if ti.container.positional {
		buf.WriteByte('[')
		for i, f := range ti.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeJSON(buf, rv.Field(f.index), indent, depth+1); err != nil {
				return err
			}
		}
		if len(ti.fields) > 0 {
			newline(buf, indent, depth)
		}
		buf.WriteByte(']')
		return nil
	}
	return writeJSONFields(buf, rv, ti.fields, indent, depth)
}

func writeJSONFields(buf *bytes.Buffer, rv reflect.Value, fields []fieldInfo, indent string, depth int) error {
	buf.WriteByte('{')
	wrote := 0
	for _, f := range fields {
		fv := rv.Field(f.index)
		isPtr := fv.Kind() == reflect.Ptr
		if isPtr && fv.IsNil() {
			if !f.attr.serializeNoneAsNull {
				continue
			}
			if wrote > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeJSONString(buf, f.wireName)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			buf.WriteString("null")
			wrote++
			continue
		}
		if wrote > 0 {
			buf.WriteByte(',')
		}
		newline(buf, indent, depth+1)
		writeJSONString(buf, f.wireName)
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeJSON(buf, fv, indent, depth+1); err != nil {
			return err
		}
		wrote++
	}
	if wrote > 0 {
		newline(buf, indent, depth)
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONUnion(buf *bytes.Buffer, rv reflect.Value, indent string, depth int) error {
	if rv.IsNil() {
		buf.WriteString("null")
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
	buf.WriteByte('{')
	newline(buf, indent, depth+1)
	writeJSONString(buf, variant.name)
	buf.WriteByte(':')
	if indent != "" {
		buf.WriteByte(' ')
	}
	if unitVariant(concrete.Type()) {
		buf.WriteString("null")
	} else if err := writeJSON(buf, concrete, indent, depth+1); err != nil {
		return err
	}
	newline(buf, indent, depth)
	buf.WriteByte('}')
	return nil
}

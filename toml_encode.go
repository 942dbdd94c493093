package wireserde

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ToTOML encodes v as TOML, per spec.md §4.4's restricted emit-only
// subset: scalars and arrays of scalars as key = value assignments,
// struct-valued fields as [table] sections, slice-of-struct fields as
// [[array-of-tables]] sections. v must be a struct (TOML has no bare
// top-level scalar or array).
func ToTOML(v interface{}) (string, error) {
	rv := indirectRead(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return "", fmt.Errorf("wireserde: TOML requires a struct at the top level, got %T", v)
	}
	buf := &bytes.Buffer{}
	if err := writeTOMLTable(buf, rv, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustToTOML panics on error, mirroring sbunce-bson's MustEncodeStruct.
func MustToTOML(v interface{}) string {
	s, err := ToTOML(v)
	if err != nil {
		panic(err)
	}
	return s
}

// writeTOMLTable writes the scalar keys of rv's fields at the current
// table, then recurses into struct/[]struct fields as nested [table] and
// [[array-of-tables]] sections. TOML requires every key = value line of
// a table to precede its subtables, so the two passes cannot be merged.
func writeTOMLTable(buf *bytes.Buffer, rv reflect.Value, path []string) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	if ti.transparent != nil {
		return writeTOMLTable(buf, indirectRead(rv.Field(ti.transparent.index)), path)
	}

	var tables []fieldInfo
	for _, f := range ti.fields {
		fv := rv.Field(f.index)
		if tableLike(fv) {
			tables = append(tables, f)
			continue
		}
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		fmt.Fprintf(buf, "%s = ", tomlKey(f.wireName))
		if err := writeTOMLValue(buf, fv); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}

	for _, f := range tables {
		fv := rv.Field(f.index)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		name := append(append([]string{}, path...), f.wireName)
		if fv.Kind() == reflect.Struct {
			fmt.Fprintf(buf, "\n[%s]\n", strings.Join(name, "."))
			if err := writeTOMLTable(buf, fv, name); err != nil {
				return err
			}
			continue
		}
		// slice/array of structs: one [[array-of-tables]] section each
		for i := 0; i < fv.Len(); i++ {
			elem := indirectRead(fv.Index(i))
			fmt.Fprintf(buf, "\n[[%s]]\n", strings.Join(name, "."))
			if err := writeTOMLTable(buf, elem, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// tableLike reports whether fv must become a [table]/[[array-of-tables]]
// section rather than a key = value assignment: a struct, a pointer to
// one, or a slice/array of either.
func tableLike(fv reflect.Value) bool {
	t := fv.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return true
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		et := t.Elem()
		for et.Kind() == reflect.Ptr {
			et = et.Elem()
		}
		return et.Kind() == reflect.Struct
	}
	return false
}

// writeTOMLValue writes a scalar, array, or inline-table value (never a
// [table] section — those are handled by writeTOMLTable).
func writeTOMLValue(buf *bytes.Buffer, rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("wireserde: TOML has no null; cannot encode a nil optional inline")
		}
		return writeTOMLValue(buf, rv.Elem())
	}
	if rv.CanInterface() {
		if p, ok := rv.Interface().(Proxy); ok {
			return writeTOMLValue(buf, reflect.ValueOf(p.ToProxy()))
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
		writeTOMLString(buf, rv.String())
		return nil
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeTOMLValue(buf, rv.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case reflect.Map:
		buf.WriteByte('{')
		keys := rv.MapKeys()
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "%s = ", tomlKey(fmt.Sprintf("%v", k.Interface())))
			if err := writeTOMLValue(buf, rv.MapIndex(k)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case reflect.Struct:
		buf.WriteByte('{')
		ti, err := walkType(rv.Type())
		if err != nil {
			return err
		}
		first := true
		for _, f := range ti.fields {
			fv := rv.Field(f.index)
			if fv.Kind() == reflect.Ptr && fv.IsNil() {
				continue
			}
			if !first {
				buf.WriteString(", ")
			}
			first = false
			fmt.Fprintf(buf, "%s = ", tomlKey(f.wireName))
			if err := writeTOMLValue(buf, indirectRead(fv)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("wireserde: cannot encode %s to TOML", rv.Type())
	}
}

// tomlKey quotes a key unless it is a bare TOML key ([A-Za-z0-9_-]+).
func tomlKey(s string) string {
	bare := s != ""
	for _, r := range s {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			bare = false
			break
		}
	}
	if bare {
		return s
	}
	buf := &bytes.Buffer{}
	writeTOMLString(buf, s)
	return buf.String()
}

// writeTOMLString writes a TOML basic string. spec.md excludes
// multi-line literal/basic strings from the emitted subset, so every
// string goes out as a single-line "..." literal.
func writeTOMLString(buf *bytes.Buffer, s string) {
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

package wireserde

import (
	"reflect"
	"strconv"
)

// FromJSON decodes s into v (a pointer), per spec.md §4.3. Unknown
// object keys are skipped, not errors; a field with no value on input
// and no `default` attribute (container or field) fails with
// MissingFieldError.
func FromJSON(s string, v interface{}) error {
	cursor := 0
	return FromJSONPrefixed(s, &cursor, v)
}

// FromJSONPrefixed decodes one JSON value starting at *cursor,
// advancing it past the bytes consumed and any trailing whitespace —
// the incremental entry point spec.md §6 requires.
func FromJSONPrefixed(s string, cursor *int, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &SyntaxError{Msg: "FromJSON requires a non-nil pointer", Line: 1, Col: 1}
	}
	sc := newScanner(s)
	sc.pos = *cursor
	sc.skipSpace(false)
	if err := decodeJSON(sc, rv.Elem(), 0); err != nil {
		return err
	}
	sc.skipSpace(false)
	*cursor = sc.pos
	return nil
}

// ParseJSON decodes s into a generic Value tree without a static
// destination type, feeding Value.Reach and any caller that doesn't
// know the destination struct ahead of time.
func ParseJSON(s string) (Value, error) {
	sc := newScanner(s)
	sc.skipSpace(false)
	v, err := decodeJSONGeneric(sc, 0)
	if err != nil {
		return Value{}, err
	}
	sc.skipSpace(false)
	return v, nil
}

func decodeJSON(sc *scanner, rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return depthError{}
	}
	sc.skipSpace(false)

	if rv.Kind() == reflect.Ptr {
		if matchLiteral(sc, "null") {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		rv.Set(reflect.New(rv.Type().Elem()))
		return decodeJSON(sc, rv.Elem(), depth+1)
	}

	if rv.CanAddr() {
		if pt, ok := rv.Addr().Interface().(ProxyTarget); ok {
			gv, err := decodeJSONGeneric(sc, depth)
			if err != nil {
				return err
			}
			return pt.FromProxy(gv)
		}
	}

	b, ok := sc.peek()
	if !ok {
		return ErrUnexpectedEOF
	}

	switch rv.Kind() {
	case reflect.Bool:
		if matchLiteral(sc, "true") {
			rv.SetBool(true)
			return nil
		}
		if matchLiteral(sc, "false") {
			rv.SetBool(false)
			return nil
		}
		return &TypeMismatchError{Expected: "bool", Got: string(b), Line: sc.line, Col: sc.col}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		tok, err := sc.scanNumber()
		if err != nil {
			return err
		}
		if tok.isFloat {
			return &TypeMismatchError{Expected: "integer", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		n, err := strconv.ParseInt(tok.text, 10, bitWidth(rv.Kind()))
		if err != nil {
			return &TypeMismatchError{Expected: "integer", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		tok, err := sc.scanNumber()
		if err != nil {
			return err
		}
		if tok.isFloat || tok.negative {
			return &TypeMismatchError{Expected: "unsigned integer", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		n, err := strconv.ParseUint(tok.text, 10, bitWidth(rv.Kind()))
		if err != nil {
			return &TypeMismatchError{Expected: "unsigned integer", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		rv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		tok, err := sc.scanNumber()
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return &TypeMismatchError{Expected: "float", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		rv.SetFloat(f)
		return nil
	case reflect.String:
		if b != '"' {
			return &TypeMismatchError{Expected: "string", Got: string(b), Line: sc.line, Col: sc.col}
		}
		sc.advance()
		str, err := sc.scanString('"')
		if err != nil {
			return err
		}
		rv.SetString(str)
		return nil
	case reflect.Slice, reflect.Array:
		return decodeJSONSeq(sc, rv, depth)
	case reflect.Map:
		return decodeJSONMap(sc, rv, depth)
	case reflect.Struct:
		return decodeJSONStruct(sc, rv, depth)
	case reflect.Interface:
		return decodeJSONUnion(sc, rv, depth)
	default:
		return &TypeMismatchError{Expected: rv.Type().String(), Got: string(b), Line: sc.line, Col: sc.col}
	}
}

func bitWidth(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	default:
		return 64
	}
}

func matchLiteral(sc *scanner, lit string) bool {
	if sc.pos+len(lit) > len(sc.src) {
		return false
	}
	if sc.src[sc.pos:sc.pos+len(lit)] != lit {
		return false
	}
	for range lit {
		sc.advance()
	}
	return true
}

func decodeJSONSeq(sc *scanner, rv reflect.Value, depth int) error {
	if err := sc.expect('['); err != nil {
		return err
	}
	var elems []reflect.Value
	sc.skipSpace(false)
	for {
		if b, ok := sc.peek(); ok && b == ']' {
			sc.advance()
			break
		}
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeJSON(sc, elem, depth+1); err != nil {
			return err
		}
		elems = append(elems, elem)
		sc.skipSpace(false)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(false)
			continue
		}
		if err := sc.expect(']'); err != nil {
			return err
		}
		break
	}
	out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
	for i, e := range elems {
		out.Index(i).Set(e)
	}
	rv.Set(out)
	return nil
}

func decodeJSONMap(sc *scanner, rv reflect.Value, depth int) error {
	if err := sc.expect('{'); err != nil {
		return err
	}
	out := reflect.MakeMap(rv.Type())
	sc.skipSpace(false)
	for {
		if b, ok := sc.peek(); ok && b == '}' {
			sc.advance()
			break
		}
		if err := sc.expect('"'); err != nil {
			return err
		}
		key, err := sc.scanString('"')
		if err != nil {
			return err
		}
		sc.skipSpace(false)
		if err := sc.expect(':'); err != nil {
			return err
		}
		sc.skipSpace(false)
		val := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeJSON(sc, val, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), val)
		sc.skipSpace(false)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(false)
			continue
		}
		if err := sc.expect('}'); err != nil {
			return err
		}
		break
	}
	rv.Set(out)
	return nil
}

func decodeJSONStruct(sc *scanner, rv reflect.Value, depth int) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	seedDefaults(rv)

	if ti.transparent != nil {
		return decodeJSON(sc, rv.Field(ti.transparent.index), depth+1)
	}

	if ti.container.positional {
		if err := sc.expect('['); err != nil {
			return err
		}
		sc.skipSpace(false)
		for i, f := range ti.fields {
			if i > 0 {
				if err := sc.expect(','); err != nil {
					return err
				}
				sc.skipSpace(false)
			}
			if err := decodeJSON(sc, rv.Field(f.index), depth+1); err != nil {
				return err
			}
			sc.skipSpace(false)
		}
		return sc.expect(']')
	}

	if err := sc.expect('{'); err != nil {
		return err
	}
	seen := map[string]bool{}
	sc.skipSpace(false)
	for {
		if b, ok := sc.peek(); ok && b == '}' {
			sc.advance()
			break
		}
		if err := sc.expect('"'); err != nil {
			return err
		}
		key, err := sc.scanString('"')
		if err != nil {
			return err
		}
		sc.skipSpace(false)
		if err := sc.expect(':'); err != nil {
			return err
		}
		sc.skipSpace(false)
		if f, ok := ti.fieldByWireName(key); ok {
			if err := decodeJSON(sc, rv.Field(f.index), depth+1); err != nil {
				return err
			}
			seen[f.wireName] = true
		} else {
			if _, err := decodeJSONGeneric(sc, depth+1); err != nil {
				return err
			}
		}
		sc.skipSpace(false)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(false)
			continue
		}
		if err := sc.expect('}'); err != nil {
			return err
		}
		break
	}
	containerDefault := false
	if rv.CanAddr() {
		_, containerDefault = rv.Addr().Interface().(Defaulter)
	}
	for _, f := range ti.fields {
		if seen[f.wireName] {
			continue
		}
		if containerDefault || f.attr.hasDefault || rv.Field(f.index).Kind() == reflect.Ptr {
			continue
		}
		return &MissingFieldError{Field: f.wireName, Type: rv.Type().String()}
	}
	return nil
}

func decodeJSONUnion(sc *scanner, rv reflect.Value, depth int) error {
	ui, ok := lookupUnion(rv.Type())
	if !ok {
		return &UnknownVariantError{Union: rv.Type().String()}
	}
	if err := sc.expect('{'); err != nil {
		return err
	}
	sc.skipSpace(false)
	if err := sc.expect('"'); err != nil {
		return err
	}
	name, err := sc.scanString('"')
	if err != nil {
		return err
	}
	variant, _ := ui.variantByName(name)
	if variant == nil {
		return &UnknownVariantError{Variant: name, Union: rv.Type().String()}
	}
	sc.skipSpace(false)
	if err := sc.expect(':'); err != nil {
		return err
	}
	sc.skipSpace(false)

	concrete := reflect.New(variant.typ).Elem()
	if unitVariant(variant.typ) {
		if !matchLiteral(sc, "null") {
			return sc.syntaxErr("expected null payload for unit variant " + name)
		}
	} else if err := decodeJSON(sc, concrete, depth+1); err != nil {
		return err
	}
	sc.skipSpace(false)
	if err := sc.expect('}'); err != nil {
		return err
	}
	rv.Set(concrete)
	return nil
}

// decodeJSONGeneric parses one JSON value into a Value tree, used for
// skipping unknown object keys and for decoding into ProxyTarget/
// Value destinations without a known Go struct.
func decodeJSONGeneric(sc *scanner, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, depthError{}
	}
	sc.skipSpace(false)
	b, ok := sc.peek()
	if !ok {
		return Value{}, ErrUnexpectedEOF
	}
	switch {
	case b == '"':
		sc.advance()
		s, err := sc.scanString('"')
		if err != nil {
			return Value{}, err
		}
		return strVal(s), nil
	case b == '{':
		sc.advance()
		var fields Pairs
		sc.skipSpace(false)
		for {
			if b, ok := sc.peek(); ok && b == '}' {
				sc.advance()
				break
			}
			if err := sc.expect('"'); err != nil {
				return Value{}, err
			}
			key, err := sc.scanString('"')
			if err != nil {
				return Value{}, err
			}
			sc.skipSpace(false)
			if err := sc.expect(':'); err != nil {
				return Value{}, err
			}
			val, err := decodeJSONGeneric(sc, depth+1)
			if err != nil {
				return Value{}, err
			}
			fields.set(key, val)
			sc.skipSpace(false)
			if b, ok := sc.peek(); ok && b == ',' {
				sc.advance()
				continue
			}
			if err := sc.expect('}'); err != nil {
				return Value{}, err
			}
			break
		}
		return Value{Kind: KindMap, Map: fields}, nil
	case b == '[':
		sc.advance()
		var elems []Value
		sc.skipSpace(false)
		for {
			if b, ok := sc.peek(); ok && b == ']' {
				sc.advance()
				break
			}
			v, err := decodeJSONGeneric(sc, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
			sc.skipSpace(false)
			if b, ok := sc.peek(); ok && b == ',' {
				sc.advance()
				continue
			}
			if err := sc.expect(']'); err != nil {
				return Value{}, err
			}
			break
		}
		return Value{Kind: KindSeq, Seq: elems}, nil
	case matchLiteral(sc, "true"):
		return boolVal(true), nil
	case matchLiteral(sc, "false"):
		return boolVal(false), nil
	case matchLiteral(sc, "null"):
		return Value{Kind: KindOptional, Present: false}, nil
	default:
		tok, err := sc.scanNumber()
		if err != nil {
			return Value{}, err
		}
		if tok.isFloat {
			f, _ := strconv.ParseFloat(tok.text, 64)
			return floatVal(f), nil
		}
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return Value{}, &TypeMismatchError{Expected: "number", Got: tok.text, Line: sc.line, Col: sc.col}
		}
		return intVal(n), nil
	}
}

package wireserde

import (
	"reflect"
	"strconv"
)

// FromRON decodes s into v (a pointer), per spec.md §4.4. Unlike JSON,
// an unrecognized field name inside a record is an error (spec.md §7:
// "For RON, unknown keys are an error").
func FromRON(s string, v interface{}) error {
	cursor := 0
	return FromRONPrefixed(s, &cursor, v)
}

// FromRONPrefixed decodes one RON value starting at *cursor, advancing
// it past the bytes (and any trailing whitespace/comments) consumed.
func FromRONPrefixed(s string, cursor *int, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &SyntaxError{Msg: "FromRON requires a non-nil pointer", Line: 1, Col: 1}
	}
	sc := newScanner(s)
	sc.pos = *cursor
	sc.skipSpace(true)
	if err := decodeRON(sc, rv.Elem(), 0); err != nil {
		return err
	}
	sc.skipSpace(true)
	*cursor = sc.pos
	return nil
}

// ParseRON decodes s into a generic Value tree, the RON counterpart of
// ParseJSON.
func ParseRON(s string) (Value, error) {
	sc := newScanner(s)
	sc.skipSpace(true)
	v, err := decodeRONGeneric(sc, 0)
	if err != nil {
		return Value{}, err
	}
	sc.skipSpace(true)
	return v, nil
}

func decodeRON(sc *scanner, rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return depthError{}
	}
	sc.skipSpace(true)

	if rv.Kind() == reflect.Ptr {
		return decodeRONOptional(sc, rv, depth)
	}

	if rv.CanAddr() {
		if pt, ok := rv.Addr().Interface().(ProxyTarget); ok {
			gv, err := decodeRONGeneric(sc, depth)
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
		return decodeRONStringInto(sc, rv)
	case reflect.Slice, reflect.Array:
		return decodeRONSeq(sc, rv, depth)
	case reflect.Map:
		return decodeRONMap(sc, rv, depth)
	case reflect.Struct:
		return decodeRONStruct(sc, rv, depth)
	case reflect.Interface:
		return decodeRONUnion(sc, rv, depth)
	default:
		return &TypeMismatchError{Expected: rv.Type().String(), Got: string(b), Line: sc.line, Col: sc.col}
	}
}

func decodeRONStringInto(sc *scanner, rv reflect.Value) error {
	s, err := scanRONQuoted(sc)
	if err != nil {
		return err
	}
	rv.SetString(s)
	return nil
}

func scanRONQuoted(sc *scanner) (string, error) {
	b, ok := sc.peek()
	if !ok || (b != '"' && b != '\'') {
		return "", &TypeMismatchError{Expected: "string", Got: string(b), Line: sc.line, Col: sc.col}
	}
	quote := sc.advance()
	return sc.scanString(quote)
}

func decodeRONOptional(sc *scanner, rv reflect.Value, depth int) error {
	if matchLiteral(sc, "None") {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if !matchLiteral(sc, "Some") {
		return sc.syntaxErr("expected Some(...) or None")
	}
	sc.skipSpace(true)
	if err := sc.expect('('); err != nil {
		return err
	}
	sc.skipSpace(true)
	rv.Set(reflect.New(rv.Type().Elem()))
	if err := decodeRON(sc, rv.Elem(), depth+1); err != nil {
		return err
	}
	sc.skipSpace(true)
	return sc.expect(')')
}

func decodeRONSeq(sc *scanner, rv reflect.Value, depth int) error {
	if err := sc.expect('['); err != nil {
		return err
	}
	var elems []reflect.Value
	sc.skipSpace(true)
	for {
		if b, ok := sc.peek(); ok && b == ']' {
			sc.advance()
			break
		}
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeRON(sc, elem, depth+1); err != nil {
			return err
		}
		elems = append(elems, elem)
		sc.skipSpace(true)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(true)
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

func decodeRONMap(sc *scanner, rv reflect.Value, depth int) error {
	if err := sc.expect('{'); err != nil {
		return err
	}
	out := reflect.MakeMap(rv.Type())
	sc.skipSpace(true)
	for {
		if b, ok := sc.peek(); ok && b == '}' {
			sc.advance()
			break
		}
		key := reflect.New(rv.Type().Key()).Elem()
		if err := decodeRON(sc, key, depth+1); err != nil {
			return err
		}
		sc.skipSpace(true)
		if err := sc.expect(':'); err != nil {
			return err
		}
		sc.skipSpace(true)
		val := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeRON(sc, val, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
		sc.skipSpace(true)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(true)
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

func decodeRONStruct(sc *scanner, rv reflect.Value, depth int) error {
	ti, err := walkType(rv.Type())
	if err != nil {
		return err
	}
	seedDefaults(rv)

	if ti.transparent != nil {
		return decodeRON(sc, rv.Field(ti.transparent.index), depth+1)
	}

	if b, ok := sc.peek(); ok && isIdentByte(b, true) {
		sc.scanIdent() // container name: accepted, not validated against rv.Type().Name()
	}
	sc.skipSpace(true)
	return decodeRONBody(sc, rv, ti, depth)
}

// decodeRONBody parses the "(...)" field list of a record, or consumes
// nothing for a unit record/variant. The leading type/variant name must
// already have been consumed by the caller.
func decodeRONBody(sc *scanner, rv reflect.Value, ti *typeInfo, depth int) error {
	if b, ok := sc.peek(); !ok || b != '(' {
		if len(ti.fields) != 0 {
			return sc.syntaxErr("expected '(' to begin record fields")
		}
		return nil
	}
	sc.advance()
	sc.skipSpace(true)
	seen := map[string]bool{}
	for i := 0; ; i++ {
		if b, ok := sc.peek(); ok && b == ')' {
			sc.advance()
			break
		}
		if ti.container.positional {
			if i >= len(ti.fields) {
				return sc.syntaxErr("too many positional fields")
			}
			f := ti.fields[i]
			if err := decodeRON(sc, rv.Field(f.index), depth+1); err != nil {
				return err
			}
			seen[f.wireName] = true
		} else {
			if b, ok := sc.peek(); !ok || !isIdentByte(b, true) {
				return sc.syntaxErr("expected field name")
			}
			key := sc.scanIdent()
			sc.skipSpace(true)
			if err := sc.expect(':'); err != nil {
				return err
			}
			sc.skipSpace(true)
			f, ok := ti.fieldByWireName(key)
			if !ok {
				return &TypeMismatchError{Field: key, Expected: "known field of " + rv.Type().String(), Got: "unknown field", Line: sc.line, Col: sc.col}
			}
			if err := decodeRON(sc, rv.Field(f.index), depth+1); err != nil {
				return err
			}
			seen[f.wireName] = true
		}
		sc.skipSpace(true)
		if b, ok := sc.peek(); ok && b == ',' {
			sc.advance()
			sc.skipSpace(true)
			continue
		}
		if err := sc.expect(')'); err != nil {
			return err
		}
		break
	}
	containerDefault := false
	if rv.CanAddr() {
		_, containerDefault = rv.Addr().Interface().(Defaulter)
	}
	for _, f := range ti.fields {
		if seen[f.wireName] || containerDefault || f.attr.hasDefault || rv.Field(f.index).Kind() == reflect.Ptr {
			continue
		}
		return &MissingFieldError{Field: f.wireName, Type: rv.Type().String()}
	}
	return nil
}

func decodeRONUnion(sc *scanner, rv reflect.Value, depth int) error {
	ui, ok := lookupUnion(rv.Type())
	if !ok {
		return &UnknownVariantError{Union: rv.Type().String()}
	}
	if b, ok := sc.peek(); !ok || !isIdentByte(b, true) {
		return sc.syntaxErr("expected variant name")
	}
	name := sc.scanIdent()
	variant, _ := ui.variantByName(name)
	if variant == nil {
		return &UnknownVariantError{Variant: name, Union: rv.Type().String()}
	}
	sc.skipSpace(true)
	concrete := reflect.New(variant.typ).Elem()
	ti, err := walkType(variant.typ)
	if err != nil {
		return err
	}
	if err := decodeRONBody(sc, concrete, ti, depth+1); err != nil {
		return err
	}
	rv.Set(concrete)
	return nil
}

func decodeRONGeneric(sc *scanner, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, depthError{}
	}
	sc.skipSpace(true)
	b, ok := sc.peek()
	if !ok {
		return Value{}, ErrUnexpectedEOF
	}
	switch {
	case b == '"' || b == '\'':
		s, err := scanRONQuoted(sc)
		if err != nil {
			return Value{}, err
		}
		return strVal(s), nil
	case b == '[':
		sc.advance()
		var elems []Value
		sc.skipSpace(true)
		for {
			if b, ok := sc.peek(); ok && b == ']' {
				sc.advance()
				break
			}
			v, err := decodeRONGeneric(sc, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
			sc.skipSpace(true)
			if b, ok := sc.peek(); ok && b == ',' {
				sc.advance()
				sc.skipSpace(true)
				continue
			}
			if err := sc.expect(']'); err != nil {
				return Value{}, err
			}
			break
		}
		return Value{Kind: KindSeq, Seq: elems}, nil
	case b == '{':
		sc.advance()
		var fields Pairs
		sc.skipSpace(true)
		for {
			if b, ok := sc.peek(); ok && b == '}' {
				sc.advance()
				break
			}
			k, err := decodeRONGeneric(sc, depth+1)
			if err != nil {
				return Value{}, err
			}
			sc.skipSpace(true)
			if err := sc.expect(':'); err != nil {
				return Value{}, err
			}
			v, err := decodeRONGeneric(sc, depth+1)
			if err != nil {
				return Value{}, err
			}
			fields.set(k.String, v)
			sc.skipSpace(true)
			if b, ok := sc.peek(); ok && b == ',' {
				sc.advance()
				sc.skipSpace(true)
				continue
			}
			if err := sc.expect('}'); err != nil {
				return Value{}, err
			}
			break
		}
		return Value{Kind: KindMap, Map: fields}, nil
	case matchLiteral(sc, "None"):
		return Value{Kind: KindOptional, Present: false}, nil
	case matchLiteral(sc, "Some"):
		sc.skipSpace(true)
		if err := sc.expect('('); err != nil {
			return Value{}, err
		}
		inner, err := decodeRONGeneric(sc, depth+1)
		if err != nil {
			return Value{}, err
		}
		sc.skipSpace(true)
		if err := sc.expect(')'); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindOptional, Present: true, Optional: &inner}, nil
	case matchLiteral(sc, "true"):
		return boolVal(true), nil
	case matchLiteral(sc, "false"):
		return boolVal(false), nil
	case isIdentByte(b, true):
		name := sc.scanIdent()
		sc.skipSpace(true)
		var fields Pairs
		if b, ok := sc.peek(); ok && b == '(' {
			sc.advance()
			sc.skipSpace(true)
			for i := 0; ; i++ {
				if b, ok := sc.peek(); ok && b == ')' {
					sc.advance()
					break
				}
				save := sc.pos
				if b, ok := sc.peek(); ok && isIdentByte(b, true) {
					key := sc.scanIdent()
					sc.skipSpace(true)
					if b, ok := sc.peek(); ok && b == ':' {
						sc.advance()
						sc.skipSpace(true)
						v, err := decodeRONGeneric(sc, depth+1)
						if err != nil {
							return Value{}, err
						}
						fields.set(key, v)
						sc.skipSpace(true)
						if b, ok := sc.peek(); ok && b == ',' {
							sc.advance()
							sc.skipSpace(true)
							continue
						}
						if err := sc.expect(')'); err != nil {
							return Value{}, err
						}
						break
					}
				}
				sc.pos = save
				v, err := decodeRONGeneric(sc, depth+1)
				if err != nil {
					return Value{}, err
				}
				fields.set(strconv.Itoa(i), v)
				sc.skipSpace(true)
				if b, ok := sc.peek(); ok && b == ',' {
					sc.advance()
					sc.skipSpace(true)
					continue
				}
				if err := sc.expect(')'); err != nil {
					return Value{}, err
				}
				break
			}
		}
		return Value{Kind: KindComposite, Composite: name, Fields: fields}, nil
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

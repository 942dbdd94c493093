package wireserde

import "fmt"

// Sentinel errors for the conditions spec.md treats as simple, data-free
// failures. Structured failures (syntax, type mismatch, missing field,
// unknown variant) carry details (a position, or the field, type or
// variant name) and are defined below as types, not sentinels.
var (
	ErrUnexpectedEOF         = fmt.Errorf("wireserde: unexpected end of input")
	ErrUnsupported           = fmt.Errorf("wireserde: operation not supported for this format")
	ErrInvalidTag            = fmt.Errorf("wireserde: tagged union index out of range")
	ErrUnknownAttribute      = fmt.Errorf("wireserde: unknown attribute")
	ErrInvalidAttributeScope = fmt.Errorf("wireserde: attribute used in a scope it does not apply to")
	ErrParse                 = fmt.Errorf("wireserde: malformed attribute syntax")
)

// SyntaxError is a structural mismatch in a textual format: an
// unexpected character, an unterminated string, a missing delimiter.
type SyntaxError struct {
	Msg  string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("wireserde: syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// BinarySyntaxError is SyntaxError's binary-format counterpart: byte
// offset instead of line/column.
type BinarySyntaxError struct {
	Msg    string
	Offset int
}

func (e *BinarySyntaxError) Error() string {
	return fmt.Sprintf("wireserde: binary syntax error at offset %d: %s", e.Offset, e.Msg)
}

// TypeMismatchError is a value present on the wire with the wrong shape
// for the destination field (e.g. a string where an integer was
// expected, or an integer literal that overflows the target width).
type TypeMismatchError struct {
	Field    string
	Expected string
	Got      string
	Line     int
	Col      int
}

func (e *TypeMismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("wireserde: type mismatch at %d:%d for field %q: expected %s, got %s",
			e.Line, e.Col, e.Field, e.Expected, e.Got)
	}
	return fmt.Sprintf("wireserde: type mismatch at %d:%d: expected %s, got %s",
		e.Line, e.Col, e.Expected, e.Got)
}

// MissingFieldError is a required field (no default, no container
// default) absent from the input.
type MissingFieldError struct {
	Field string
	Type  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("wireserde: missing field %q for type %s", e.Field, e.Type)
}

// UnknownVariantError is a tagged-union tag or name not found among the
// variants registered with RegisterUnion.
type UnknownVariantError struct {
	Variant string
	Union   string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("wireserde: unknown variant %q for union %s", e.Variant, e.Union)
}

// InvalidUTF8Error is a string-level UTF-8 decode failure.
type InvalidUTF8Error struct {
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("wireserde: invalid utf-8 at offset %d", e.Offset)
}

// InvalidEscapeError is a malformed backslash escape in a quoted string.
type InvalidEscapeError struct {
	Escape string
	Line   int
	Col    int
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("wireserde: invalid escape %q at %d:%d", e.Escape, e.Line, e.Col)
}

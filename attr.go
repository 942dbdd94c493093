package wireserde

import "strings"

// Container is an embedded marker field that carries container-level
// attributes in its own struct tag, since Go has no syntax for tagging
// a type declaration itself:
//
//	type Circle struct {
//		wireserde.Container `wire:"positional"`
//		Radius float64
//	}
//
// Recognized tag words: "positional", "transparent", "null",
// "rename=<name>". Proxying is not a tag word; a type opts in by
// implementing Proxy/ProxyTarget. The marker occupies zero bytes and is
// skipped by every engine's field walk.
type Container struct{}

// Proxy lets a type convert itself to a sibling wire representation
// before any format engine sees it. This is the Go rendition of
// spec.md's `proxy = "<type>"` attribute: rather than a string naming a
// type for the walker to resolve, the type declares the conversion
// itself, the same way json.Marshaler declares custom JSON behavior.
type Proxy interface {
	ToProxy() interface{}
}

// ProxyTarget is Proxy's decode-direction counterpart.
type ProxyTarget interface {
	FromProxy(interface{}) error
}

// Defaulter seeds a container with values other than its Go zero value
// before decoded fields are overlaid on it. This is the Go rendition of
// spec.md's container `default = "<expr>"` / `default_with = "<path>"`
// attributes: a string-keyed constructor lookup has no natural Go
// mechanism, whereas interface satisfaction does.
type Defaulter interface {
	WireDefault()
}

// containerAttr is the resolved container-level attribute set, parsed
// once per walk from a Container marker field's tag.
type containerAttr struct {
	positional          bool
	transparent         bool
	serializeNoneAsNull bool
	rename              string
}

func parseContainerTag(tag string) (containerAttr, error) {
	var a containerAttr
	if tag == "" {
		return a, nil
	}
	for _, word := range strings.Split(tag, ",") {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		switch {
		case word == "positional":
			a.positional = true
		case word == "transparent":
			a.transparent = true
		case word == "null":
			a.serializeNoneAsNull = true
		case strings.HasPrefix(word, "rename="):
			a.rename = strings.TrimPrefix(word, "rename=")
		default:
			return a, &invalidAttributeError{word: word, scope: "container"}
		}
	}
	return a, nil
}

// fieldAttr is the resolved field-level attribute set, parsed once per
// field per walk from that field's own tag.
type fieldAttr struct {
	name                string // resolved wire name, "" inherits the lowerCamel default
	skip                bool
	hasDefault          bool
	serializeNoneAsNull bool
	noneAsNullSet       bool // true if this field explicitly set the null policy
}

// parseFieldTag parses a `wire:"name,opt,opt"` tag. The first segment,
// if non-empty, is always the rename target, even when it spells an
// option word; options start after the first comma (mirrors
// encoding/json's `json:"name,omitempty"` convention).
func parseFieldTag(tag string) (fieldAttr, error) {
	var a fieldAttr
	if tag == "-" {
		a.skip = true
		return a, nil
	}
	if tag == "" {
		return a, nil
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		a.name = parts[0]
	}
	for _, word := range parts[1:] {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		switch word {
		case "default":
			a.hasDefault = true
		case "skip":
			a.skip = true
		case "null":
			a.serializeNoneAsNull = true
			a.noneAsNullSet = true
		case "nonull":
			a.serializeNoneAsNull = false
			a.noneAsNullSet = true
		default:
			return a, &invalidAttributeError{word: word, scope: "field"}
		}
	}
	return a, nil
}

type invalidAttributeError struct {
	word     string
	scope    string
	badScope bool // the attribute is known but not legal where it was used
}

func (e *invalidAttributeError) Error() string {
	if e.badScope {
		return "wireserde: attribute " + e.word + " not allowed in " + e.scope + " scope"
	}
	return "wireserde: unknown attribute " + e.word + " in " + e.scope + " scope"
}

func (e *invalidAttributeError) Unwrap() error {
	if e.badScope {
		return ErrInvalidAttributeScope
	}
	return ErrUnknownAttribute
}

// lowerCamel lowercases the leading run of capitals in a Go exported
// field name to produce the default wire key, e.g. "Name" -> "name",
// "URLPath" -> "urlPath". Most struct field names in practice are a
// single capitalized word, so this reduces to lowering the first rune.
func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	for i := range r {
		if !isUpper(r[i]) {
			break
		}
		// A capital followed by a lowercase letter starts the next word
		// ("P" in "URLPath") and keeps its case, unless it is the first rune.
		if i > 0 && i+1 < len(r) && r[i+1] >= 'a' && r[i+1] <= 'z' {
			break
		}
		r[i] = toLower(r[i])
	}
	return string(r)
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

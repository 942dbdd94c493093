package wireserde

import (
	"fmt"
	"reflect"
)

// fieldInfo describes one struct field as the derive front-end would
// have normalized it: its Go index, resolved wire name, and attributes.
type fieldInfo struct {
	index    int
	goName   string
	wireName string
	attr     fieldAttr
}

// typeInfo is the normalized intermediate spec.md §4.1 describes,
// computed fresh from a reflect.Type on every call (see SPEC_FULL.md
// §5 — deliberately not cached).
type typeInfo struct {
	typ         reflect.Type
	container   containerAttr
	fields      []fieldInfo
	transparent *fieldInfo // set iff container.transparent
}

// walkType normalizes a struct type into a typeInfo, the same way
// sbunce-bson's encodeStruct/decode loop walks rv.NumField() but with
// the fuller spec.md attribute set layered on top.
func walkType(t reflect.Type) (*typeInfo, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("wireserde: %s is not a struct", t)
	}

	ti := &typeInfo{typ: t}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Type == reflect.TypeOf(Container{}) {
			ca, err := parseContainerTag(sf.Tag.Get("wire"))
			if err != nil {
				return nil, err
			}
			ti.container = ca
			continue
		}
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // unexported
		}
		fa, err := parseFieldTag(sf.Tag.Get("wire"))
		if err != nil {
			return nil, err
		}
		if fa.skip {
			fa.hasDefault = true
			continue
		}
		wireName := fa.name
		if wireName == "" {
			wireName = lowerCamel(sf.Name)
		}
		if !fa.noneAsNullSet {
			fa.serializeNoneAsNull = ti.container.serializeNoneAsNull
		}
		ti.fields = append(ti.fields, fieldInfo{
			index:    i,
			goName:   sf.Name,
			wireName: wireName,
			attr:     fa,
		})
	}

	if ti.container.transparent {
		if len(ti.fields) != 1 {
			return nil, &invalidAttributeError{word: "transparent", scope: "container (requires exactly one field)", badScope: true}
		}
		ti.transparent = &ti.fields[0]
	}

	return ti, nil
}

// fieldByWireName looks up a field by its resolved wire name; used by
// every decoder's object loop.
func (ti *typeInfo) fieldByWireName(name string) (*fieldInfo, bool) {
	for i := range ti.fields {
		if ti.fields[i].wireName == name {
			return &ti.fields[i], true
		}
	}
	return nil, false
}

// seedDefaults applies the container Defaulter (if the addressable
// struct value's pointer implements it) before fields are overlaid from
// the wire — the Go rendition of container `default`/`default_with`.
func seedDefaults(rv reflect.Value) {
	if !rv.CanAddr() {
		return
	}
	if d, ok := rv.Addr().Interface().(Defaulter); ok {
		d.WireDefault()
	}
}

package wireserde

import (
	"reflect"
	"sync"
)

// unionInfo is the declared, ordered variant list for one tagged-union
// interface type. Unlike typeInfo this is genuinely caller-supplied
// declaration metadata, not a recomputed-per-call artifact: Go gives us
// no way to enumerate an interface's implementers by reflection alone,
// so the caller must enumerate them once, the same way encoding/gob
// callers call gob.Register. See SPEC_FULL.md §5.
type unionInfo struct {
	unionType reflect.Type
	variants  []variantInfo
}

type variantInfo struct {
	name string // wire tag: declared Go type name, or Container "rename="
	typ  reflect.Type
}

var (
	unionsMu sync.RWMutex
	unions   = map[reflect.Type]*unionInfo{}
)

// RegisterUnion declares a tagged union: unionPtr is a nil pointer to
// the union interface (e.g. (*Shape)(nil)); variants are zero values of
// each concrete variant type, in spec.md's "declaration order".
//
// Call this once, typically from an init() func, before any wireserde
// call touches a value of this union type. Panics on a malformed
// declaration (not an interface, a variant that doesn't implement it,
// or two variants resolving to the same wire name) — the closest Go
// analogue to spec.md's derive-time diagnostics, since there is no
// compile step at which to reject this.
func RegisterUnion(unionPtr interface{}, variants ...interface{}) {
	ut := reflect.TypeOf(unionPtr)
	if ut == nil || ut.Kind() != reflect.Ptr || ut.Elem().Kind() != reflect.Interface {
		panic("wireserde: RegisterUnion requires a nil pointer to an interface type")
	}
	iface := ut.Elem()

	info := &unionInfo{unionType: iface}
	seen := map[string]bool{}
	for _, v := range variants {
		vt := reflect.TypeOf(v)
		if vt == nil {
			panic("wireserde: RegisterUnion variant must be a concrete, non-nil value")
		}
		if !vt.Implements(iface) {
			panic("wireserde: " + vt.String() + " does not implement " + iface.String())
		}
		name := vt.Name()
		if vt.Kind() == reflect.Struct {
			for i := 0; i < vt.NumField(); i++ {
				sf := vt.Field(i)
				if sf.Type == reflect.TypeOf(Container{}) {
					ca, err := parseContainerTag(sf.Tag.Get("wire"))
					if err == nil && ca.rename != "" {
						name = ca.rename
					}
				}
			}
		}
		if seen[name] {
			panic("wireserde: duplicate variant wire name " + name + " for union " + iface.String())
		}
		seen[name] = true
		info.variants = append(info.variants, variantInfo{name: name, typ: vt})
	}

	unionsMu.Lock()
	unions[iface] = info
	unionsMu.Unlock()
}

func lookupUnion(iface reflect.Type) (*unionInfo, bool) {
	unionsMu.RLock()
	defer unionsMu.RUnlock()
	info, ok := unions[iface]
	return info, ok
}

// variantByName finds a registered variant by its resolved wire name.
func (ui *unionInfo) variantByName(name string) (*variantInfo, int) {
	for i := range ui.variants {
		if ui.variants[i].name == name {
			return &ui.variants[i], i
		}
	}
	return nil, -1
}

// variantByIndex finds a registered variant by declaration index, used
// by the binary engine's u32 variant index.
func (ui *unionInfo) variantByIndex(idx int) (*variantInfo, bool) {
	if idx < 0 || idx >= len(ui.variants) {
		return nil, false
	}
	return &ui.variants[idx], true
}

// variantByType finds a registered variant's declared name+index by
// concrete Go type, used by every encoder.
func (ui *unionInfo) variantByType(t reflect.Type) (*variantInfo, int) {
	for i := range ui.variants {
		if ui.variants[i].typ == t {
			return &ui.variants[i], i
		}
	}
	return nil, -1
}

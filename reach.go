package wireserde

import (
	"errors"
	"fmt"
)

// Reach navigates a generic Value by a path of keys, one key per path
// argument (a key is not split on dots), the same
// convenience sbunce-bson/reach.go offers over Map/Slice: rather than
// type-asserting through several nested KindMap/KindComposite layers to
// pull out one field, callers ask for it directly.
//
// Returns false (no error) if any segment of the path is absent.
// Returns an error only if dst is nil or a coercion is impossible.
func (v Value) Reach(dst interface{}, path ...string) (bool, error) {
	if dst == nil {
		return false, errors.New("wireserde: dst must not be nil")
	}
	cur := v
	for _, name := range path {
		next, ok := stepInto(cur, name)
		if !ok {
			return false, nil
		}
		cur = next
	}
	for cur.Kind == KindOptional {
		if !cur.Present {
			return false, nil
		}
		cur = *cur.Optional
	}
	return true, assignValue(dst, cur)
}

func stepInto(cur Value, name string) (Value, bool) {
	switch cur.Kind {
	case KindMap:
		return cur.Map.Get(name)
	case KindComposite:
		return cur.Fields.Get(name)
	case KindOptional:
		if !cur.Present {
			return Value{}, false
		}
		return stepInto(*cur.Optional, name)
	default:
		return Value{}, false
	}
}

// assignValue coerces a generic Value into dst, a pointer to one of the
// Go primitive kinds this library round-trips. Mirrors the coercion
// table reach.go documents for BSON, narrowed to this project's simpler
// value model.
func assignValue(dst interface{}, v Value) error {
	switch d := dst.(type) {
	case *string:
		if v.Kind != KindString {
			return fmt.Errorf("wireserde: cannot reach %v into *string", v.Kind)
		}
		*d = v.String
	case *int64:
		switch v.Kind {
		case KindInt:
			*d = v.Int
		case KindUint:
			*d = int64(v.Uint)
		default:
			return fmt.Errorf("wireserde: cannot reach %v into *int64", v.Kind)
		}
	case *uint64:
		switch v.Kind {
		case KindUint:
			*d = v.Uint
		case KindInt:
			*d = uint64(v.Int)
		default:
			return fmt.Errorf("wireserde: cannot reach %v into *uint64", v.Kind)
		}
	case *float64:
		if v.Kind != KindFloat {
			return fmt.Errorf("wireserde: cannot reach %v into *float64", v.Kind)
		}
		*d = v.Float
	case *bool:
		if v.Kind != KindBool {
			return fmt.Errorf("wireserde: cannot reach %v into *bool", v.Kind)
		}
		*d = v.Bool
	case *Value:
		*d = v
	default:
		return fmt.Errorf("wireserde: unsupported reach destination %T", dst)
	}
	return nil
}

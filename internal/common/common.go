package common

import (
	"reflect"
	"sync"
)

// IsFixedKind reports whether k is a scalar kind whose values never hold a
// pointer.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

var pointerFree sync.Map // reflect.Type -> bool

// PointerFree reports whether values of t can live in memory the garbage
// collector does not scan. Arrays and structs are walked recursively; every
// other composite kind carries a pointer.
func PointerFree(t reflect.Type) bool {
	if v, ok := pointerFree.Load(t); ok {
		return v.(bool)
	}
	free := walk(t)
	pointerFree.Store(t, free)
	return free
}

func walk(t reflect.Type) bool {
	switch k := t.Kind(); {
	case IsFixedKind(k):
		return true
	case k == reflect.Array:
		return t.Len() == 0 || walk(t.Elem())
	case k == reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !walk(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

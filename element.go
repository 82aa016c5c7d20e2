package dynarray

import "reflect"

// Dropper is implemented by element types that own resources. An Array calls
// Drop exactly once per element when it is released.
type Dropper interface {
	Drop()
}

// Cloner is implemented by element types that need a deep copy. FromSlice and
// Clone use it instead of plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// Defaulter is implemented by element types whose default is not the zero
// value. New calls it once per slot.
type Defaulter[T any] interface {
	Default() T
}

var dropperType = reflect.TypeFor[Dropper]()

// methodSite says where an element type picks up a method.
type methodSite uint8

const (
	siteNone    methodSite = iota
	siteValue              // T implements it, or T is an interface
	sitePointer            // only *T implements it
)

func siteOf[T any](iface reflect.Type) methodSite {
	t := reflect.TypeFor[T]()
	switch {
	case t.Kind() == reflect.Interface || t.Implements(iface):
		return siteValue
	case reflect.PointerTo(t).Implements(iface):
		return sitePointer
	default:
		return siteNone
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// dropAll drops data in ascending index order. Nil pointers are skipped.
func dropAll[T any](data []T) {
	if len(data) == 0 || siteOf[T](dropperType) == siteNone {
		return
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface:
		for i := range data {
			if d, ok := any(data[i]).(Dropper); ok && !isNilPointer(d) {
				d.Drop()
			}
		}
	case reflect.Pointer:
		var null T
		for i := range data {
			if any(data[i]) != any(null) {
				any(data[i]).(Dropper).Drop()
			}
		}
	default:
		// the method set of *T includes value-receiver methods
		for i := range data {
			any(&data[i]).(Dropper).Drop()
		}
	}
}

func cloneAll[T any](dst, src []T) {
	switch siteOf[T](reflect.TypeFor[Cloner[T]]()) {
	case siteValue:
		for i := range src {
			if c, ok := any(src[i]).(Cloner[T]); ok && !isNilPointer(c) {
				dst[i] = c.Clone()
			} else {
				dst[i] = src[i]
			}
		}
	case sitePointer:
		for i := range src {
			dst[i] = any(&src[i]).(Cloner[T]).Clone()
		}
	default:
		copy(dst, src)
	}
}

// fillDefault writes one default per slot. For pointer types Default is called
// on a fresh zero element rather than a nil receiver.
func fillDefault[T any](dst []T) {
	t := reflect.TypeFor[T]()
	var zero T
	var d Defaulter[T]
	switch siteOf[T](reflect.TypeFor[Defaulter[T]]()) {
	case siteValue:
		switch t.Kind() {
		case reflect.Interface:
			clear(dst)
			return
		case reflect.Pointer:
			d = reflect.New(t.Elem()).Interface().(Defaulter[T])
		default:
			d = any(zero).(Defaulter[T])
		}
	case sitePointer:
		d = any(&zero).(Defaulter[T])
	default:
		clear(dst)
		return
	}
	for i := range dst {
		dst[i] = d.Default()
	}
}

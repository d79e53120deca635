package lifecycle

import (
	"math"
	"reflect"
)

type depsKind uint8

const (
	depsAlways depsKind = iota
	depsOnce
	depsList
)

// Deps decides whether an effect runs again after its node re-renders.
type Deps struct {
	kind   depsKind
	values []any
}

var (
	// Always runs the effect after every render of its node.
	Always = Deps{kind: depsAlways}
	// Once runs the effect at mount and its cleanup at unmount.
	Once = Deps{kind: depsOnce}
)

// On runs the effect at mount and again whenever any of values differs from
// the previous render. On() with no values is Once.
func On(values ...any) Deps {
	if len(values) == 0 {
		return Once
	}
	cp := make([]any, len(values))
	copy(cp, values)
	return Deps{kind: depsList, values: cp}
}

func (d Deps) IsAlways() bool { return d.kind == depsAlways }
func (d Deps) IsOnce() bool   { return d.kind == depsOnce }

func (d Deps) Values() []any {
	if d.kind != depsList {
		return nil
	}
	cp := make([]any, len(d.values))
	copy(cp, d.values)
	return cp
}

// Changed reports whether next requires a re-run compared to d.
// Always never compares equal, Once always does, and lists compare element-wise with Same.
func (d Deps) Changed(next Deps) bool {
	if d.kind != next.kind {
		return true
	}
	switch d.kind {
	case depsAlways:
		return true
	case depsOnce:
		return false
	}
	if len(d.values) != len(next.values) {
		return true
	}
	for i := range d.values {
		if !Same(d.values[i], next.values[i]) {
			return true
		}
	}
	return false
}

// Same compares two dependency values. Comparable values compare with ==,
// except that NaN is the same as NaN. Slices, maps, channels and pointers
// compare by identity. Functions never compare equal since a render
// produces a fresh closure every time.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		if a == b {
			return true
		}
		switch va.Kind() {
		case reflect.Float32, reflect.Float64:
			return math.IsNaN(va.Float()) && math.IsNaN(vb.Float())
		}
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

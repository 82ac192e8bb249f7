package compare

import "reflect"

// PointersWithEqual compares two pointers using a custom equality function.
// Returns true if both are nil, or both are non-nil and equal reports true.
func PointersWithEqual[T any](a, b *T, equal func(*T, *T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equal(a, b)
}

// Optional compares two values that may be nil, such as interface values
// holding node pointers. A nil value only equals another nil value; a typed
// nil pointer inside an interface counts as nil.
func Optional[T any](a, b T, equal func(T, T) bool) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil && bNil
	}
	return equal(a, b)
}

// Slices compares two slices element by element.
// Returns true if both slices have the same length and all pairs are equal.
func Slices[T any](a, b []T, equal func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

package utils

import "reflect"

// TT is a ternary. Both branches are evaluated.
func TT[T any](condition bool, x T, y T) T {
	if condition {
		return x
	}
	return y
}

func getValue[T any](x interface{}) T {
	if reflect.TypeOf(x).Kind() == reflect.Func {
		return x.(func() T)()
	}
	return x.(T)
}

// TTM is TT for branches that may be a func() T, evaluated only when chosen.
func TTM[T any](condition bool, x interface{}, y interface{}) T {
	if condition {
		return getValue[T](x)
	}
	return getValue[T](y)
}

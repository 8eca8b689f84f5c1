package utils

import "math/rand/v2"

// RandomElement panics on an empty slice.
func RandomElement[T any](array []T) T {
	if len(array) == 0 {
		panic("RandomElement of an empty slice")
	}
	return array[rand.IntN(len(array))]
}

package util

// InsertSlice inserts item(s) T at position pos and returns a slice
func InsertSlice[T any](arr []T, pos int, element ...T) []T {
	if pos < 0 {
		pos = 0
	}
	if pos > len(arr) {
		pos = len(arr)
	}

	out := make([]T, 0, len(arr)+len(element))
	out = append(out, arr[:pos]...)
	out = append(out, element...)

	return append(out, arr[pos:]...)
}

// RemoveSlice removes the items in [from, to) and returns a slice. Bounds are clamped.
func RemoveSlice[T any](arr []T, from, to int) []T {
	if from < 0 {
		from = 0
	}
	if to > len(arr) {
		to = len(arr)
	}
	if from >= to {
		return arr
	}

	return append(arr[:from], arr[to:]...)
}

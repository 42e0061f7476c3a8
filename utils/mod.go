package utils

// FindIndex returns the position of item in slice, or -1. Actions are
// compared with ==, so they must be comparable values.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

package utils

// ListToMap indexes a slice by derived key and value.
func ListToMap[T any, K comparable, V any](
	slice []T,
	keyFunc func(T) K,
	valueFunc func(T) V,
) map[K]V {
	result := make(map[K]V)

	for _, item := range slice {
		result[keyFunc(item)] = valueFunc(item)
	}

	return result
}

// Filter returns the elements of slice for which keep returns true.
func Filter[T any](slice []T, keep func(T) bool) []T {
	var result []T
	for _, item := range slice {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

package utils

// SafeSlice 最多取前 max 个
func SafeSlice[T any](slice []T, max int) []T {
	if len(slice) < max {
		return slice
	}
	return slice[:max]
}

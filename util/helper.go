package util

// Unique removes exact duplicates while preserving first-seen order.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]bool, len(values))
	var unique []T
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
	}
	return unique
}

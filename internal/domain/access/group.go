package access

// GroupConsecutive collapses runs of consecutive items sharing the same key
// into groups. Items must already be sorted by the key, otherwise equal keys
// fragment into multiple groups.
func GroupConsecutive[T any, K comparable](items []T, key func(T) K) [][]T {
	var groups [][]T
	for i := 0; i < len(items); {
		j := i + 1
		for j < len(items) && key(items[j]) == key(items[i]) {
			j++
		}
		groups = append(groups, items[i:j])
		i = j
	}
	return groups
}

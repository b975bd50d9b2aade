package utils

// UniqueInts drops duplicates while preserving first-seen order.
func UniqueInts(values []int) []int {
	seen := make(map[int]bool, len(values))
	unique := make([]int, 0, len(values))

	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
	}

	return unique
}

// UniqueStrings drops duplicates while preserving first-seen order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))

	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		unique = append(unique, value)
	}

	return unique
}

// IntersectStrings keeps the elements of a that also occur in b,
// preserving a's order.
func IntersectStrings(a []string, b []string) []string {
	members := make(map[string]bool, len(b))
	for _, value := range b {
		members[value] = true
	}

	intersection := make([]string, 0, len(a))
	for _, value := range a {
		if members[value] {
			intersection = append(intersection, value)
		}
	}

	return intersection
}

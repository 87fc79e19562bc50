package services

// uniqueBy keeps the first item for each key, preserving order.
func uniqueBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// flatMap concatenates the per-mechanism lists selected by pick.
func flatMap[M, T any](items []M, pick func(M) []T) []T {
	var out []T
	for _, item := range items {
		out = append(out, pick(item)...)
	}
	return out
}

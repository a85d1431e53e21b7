// Package mapper holds small generic helpers for converting between layers.
package mapper

// MapSlice applies fn to each item. A nil input yields nil.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	if items == nil {
		return nil
	}
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// MapSliceWithError stops at the first conversion error.
func MapSliceWithError[T any, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, item := range items {
		r, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Package dto holds transfer objects shared across application contexts.
package dto

// Page is one page of a list result.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// Package ranking orders records by a primary key descending with an
// ascending secondary key as tie-break.
package ranking

import (
	"cmp"
	"slices"
)

// By returns a comparator for slices.SortFunc: records with the larger
// primary key come first, equal primary keys fall back to the smaller
// secondary key.
func By[T any, P, S cmp.Ordered](primary func(T) P, secondary func(T) S) func(a, b T) int {
	return func(a, b T) int {
		if c := cmp.Compare(primary(b), primary(a)); c != 0 {
			return c
		}
		return cmp.Compare(secondary(a), secondary(b))
	}
}

// Sort orders items in place with By, keeping the relative order of records
// equal on both keys.
func Sort[T any, P, S cmp.Ordered](items []T, primary func(T) P, secondary func(T) S) {
	slices.SortStableFunc(items, By(primary, secondary))
}

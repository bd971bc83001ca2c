package internal

// FindDuplicate scans items for the first pair of distinct indices whose
// entries the equivalent predicate reports as colliding. Pairs are visited
// in row-major order, first over i, then over j, skipping i == j, and the
// first hit wins. Returns ok == false when no pair collides.
//
// The scan is O(n²). Register and instruction counts per architecture are
// small, so this is acceptable; a hash-grouped scan could replace it later,
// but must preserve the same first-pair contract.
func FindDuplicate[T any](items []T, equivalent func(a, b T) bool) (first int, second int, ok bool) {
	for i := range items {
		for j := range items {
			if i == j {
				continue
			}
			if equivalent(items[i], items[j]) {
				return i, j, true
			}
		}
	}

	return 0, 0, false
}

package booking

// Slot times are half-open [start, end) intervals encoded as
// "15:04:05" strings.  Because the encoding is fixed-width and
// zero-padded, lexicographic comparison matches chronological
// comparison, so the overlap test works directly on the strings the
// repository stores.

// ValidInterval reports whether end is strictly after start.  Empty
// intervals and reversed intervals are rejected at slot creation.
func ValidInterval(start, end string) bool {
	return start < end
}

// Overlaps reports whether the half-open intervals [s1, e1) and
// [s2, e2) intersect.  Two intervals intersect iff s1 < e2 && s2 < e1;
// the test is symmetric, rejects exact duplicates and containment, and
// allows back-to-back slots sharing a boundary.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// OverlapsAny reports whether the candidate interval intersects any of
// the given existing intervals.  It is used by bulk slot creation to
// check candidates against slots inserted earlier in the same batch
// before the database is consulted.
func OverlapsAny(start, end string, existing [][2]string) bool {
	for _, iv := range existing {
		if Overlaps(start, end, iv[0], iv[1]) {
			return true
		}
	}
	return false
}

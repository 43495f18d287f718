package domain

// Zero overwrites b with zeros so key material does not linger in memory.
// It is safe to call on nil or already-zeroed slices.
func Zero(b []byte) {
	clear(b)
}

package kumitate

// Mask is a set of up to 64 component bits. Which bit stands for which
// component type is decided by the application's Assembly; the only contract
// is that System.Mask and Assembly.MatchMask agree on the layout.
type Mask uint64

// Bit returns a mask with only the given bit set.
func Bit(i uint) Mask {
	return Mask(1) << i
}

// With returns the union of m and the given bits.
func (m Mask) With(bits Mask) Mask {
	return m | bits
}

// Has reports whether every bit set in sub is also set in m.
func (m Mask) Has(sub Mask) bool {
	return m&sub == sub
}

// HasBit reports whether the given bit is set.
func (m Mask) HasBit(i uint) bool {
	return m&(Mask(1)<<i) != 0
}

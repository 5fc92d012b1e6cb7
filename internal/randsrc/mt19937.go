// Package randsrc provides a Mersenne Twister source whose seeding and
// sampling match NumPy's legacy RandomState, so a fixed seed reproduces
// datasets generated with NumPy.
package randsrc

const (
	stateLen  = 624
	shift     = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// MT19937 is a 32-bit Mersenne Twister. It is not safe for concurrent use.
type MT19937 struct {
	key [stateLen]uint32
	pos int
}

func New(seed uint32) *MT19937 {
	m := &MT19937{}
	m.seed(seed)
	return m
}

func (m *MT19937) seed(s uint32) {
	for i := 0; i < stateLen; i++ {
		m.key[i] = s
		s = 1812433253*(s^(s>>30)) + uint32(i) + 1
	}
	m.pos = stateLen
}

// Seed implements rand.Source. Only the low 32 bits of seed are used.
func (m *MT19937) Seed(seed int64) {
	m.seed(uint32(seed))
}

func (m *MT19937) generate() {
	var y uint32
	i := 0
	for ; i < stateLen-shift; i++ {
		y = (m.key[i] & upperMask) | (m.key[i+1] & lowerMask)
		m.key[i] = m.key[i+shift] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	}
	for ; i < stateLen-1; i++ {
		y = (m.key[i] & upperMask) | (m.key[i+1] & lowerMask)
		m.key[i] = m.key[i+shift-stateLen] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	}
	y = (m.key[stateLen-1] & upperMask) | (m.key[0] & lowerMask)
	m.key[stateLen-1] = m.key[shift-1] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	m.pos = 0
}

// Uint32 returns the next tempered 32-bit output.
func (m *MT19937) Uint32() uint32 {
	if m.pos >= stateLen {
		m.generate()
	}
	y := m.key[m.pos]
	m.pos++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Uint64 implements rand.Source64, high word first.
func (m *MT19937) Uint64() uint64 {
	hi := uint64(m.Uint32())
	return hi<<32 | uint64(m.Uint32())
}

// Int63 implements rand.Source.
func (m *MT19937) Int63() int64 {
	return int64(m.Uint64() >> 1)
}

// Float64 returns a value in [0, 1) with 53 bits of precision built from
// two consecutive draws.
func (m *MT19937) Float64() float64 {
	a := m.Uint32() >> 5
	b := m.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// Uniform returns a value in [low, high).
func (m *MT19937) Uniform(low, high float64) float64 {
	return low + (high-low)*m.Float64()
}

// Intn returns an integer in [low, high) using masked rejection sampling.
// It panics if high <= low.
func (m *MT19937) Intn(low, high int) int {
	if high <= low {
		panic("randsrc: invalid argument to Intn")
	}
	rng := uint32(high - low - 1)
	if rng == 0 {
		return low
	}

	mask := rng
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16

	for {
		v := m.Uint32() & mask
		if v <= rng {
			return low + int(v)
		}
	}
}

// Choice returns a uniformly drawn element of values.
func Choice[T any](m *MT19937, values []T) T {
	return values[m.Intn(0, len(values))]
}

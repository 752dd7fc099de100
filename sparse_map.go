package vecmath

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

type number interface{ ~int | ~float32 }

// sparseMap is the storage shared by the hash-sparse vectors. A slot reads as
// entries[i] when present and defaultValue otherwise. Every key is below length.
type sparseMap[T number] struct {
	entries      map[int64]T
	defaultValue T
	length       int64
	// limit is the largest addressable index.
	limit int64
}

// SparseOption configures a hash-sparse vector constructor.
type SparseOption func(*sparseOptions)

type sparseOptions struct {
	defaultValue  float32
	intDefault    int
	hasIntDefault bool
	length        int64
	hasLength     bool
}

// WithDefault sets the value reported for unpopulated slots. Int vectors round it.
func WithDefault(value float32) SparseOption {
	return func(o *sparseOptions) {
		o.defaultValue = value
		o.hasIntDefault = false
	}
}

// WithIntDefault sets an integral default exactly, for int defaults beyond the
// range float32 represents without loss.
func WithIntDefault(value int) SparseOption {
	return func(o *sparseOptions) {
		o.intDefault = value
		o.hasIntDefault = true
	}
}

// WithLength fixes the length of a vector built from interleaved pairs instead of
// deriving it from the highest index.
func WithLength(length int64) SparseOption {
	return func(o *sparseOptions) {
		o.length = length
		o.hasLength = true
	}
}

func applySparseOptions(opts []SparseOption) sparseOptions {
	var o sparseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newSparseMap[T number](length, limit int64, o sparseOptions) sparseMap[T] {
	def := fromFloat[T](o.defaultValue)
	if o.hasIntDefault {
		def = T(o.intDefault)
	}
	return sparseMap[T]{
		entries:      make(map[int64]T),
		defaultValue: def,
		length:       length,
		limit:        limit,
	}
}

// sparseMapFromPairs populates from interleaved index/value pairs. The length is
// one past the highest index unless WithLength was given.
func sparseMapFromPairs[T number](pairs []T, limit int64, o sparseOptions) (sparseMap[T], error) {
	if len(pairs)%2 != 0 {
		return sparseMap[T]{}, malformed("odd number of interleaved index/value elements: %d", len(pairs))
	}
	m := newSparseMap[T](0, limit, o)
	for n := 0; n < len(pairs); n += 2 {
		i := int64(pairs[n])
		if T(i) != pairs[n] {
			return sparseMap[T]{}, malformed("non-integral index %v", pairs[n])
		}
		if err := m.set(i, pairs[n+1]); err != nil {
			return sparseMap[T]{}, err
		}
	}
	if o.hasLength {
		if o.length < m.length {
			return sparseMap[T]{}, indexOutOfRange(m.length-1, o.length)
		}
		m.length = o.length
	}
	return m, nil
}

func fromFloat[T number](f float32) T {
	var zero T
	if _, ok := any(zero).(int); ok {
		return T(roundFloat(f))
	}
	return T(f)
}

func toInt[T number](x T) int {
	if f, ok := any(x).(float32); ok {
		return roundFloat(f)
	}
	return int(x)
}

func isFloat[T number]() bool {
	var zero T
	_, ok := any(zero).(float32)
	return ok
}

// read returns slot i of v converted to T.
func read[T number](v Vector, i int) T {
	if isFloat[T]() {
		return T(v.GetFloat(i))
	}
	return T(v.GetInt(i))
}

func (m *sparseMap[T]) get(i int64) T {
	if x, ok := m.entries[i]; ok {
		return x
	}
	return m.defaultValue
}

// set stores x at i, growing the length when i is past the end.
func (m *sparseMap[T]) set(i int64, x T) error {
	if i < 0 || i > m.limit {
		return indexOutOfRange(i, m.limit+1)
	}
	m.entries[i] = x
	if i >= m.length {
		m.length = i + 1
	}
	return nil
}

func (m *sparseMap[T]) Length() int           { return int(m.length) }
func (m *sparseMap[T]) GetInt(i int) int       { return toInt(m.get(int64(i))) }
func (m *sparseMap[T]) GetFloat(i int) float32 { return float32(m.get(int64(i))) }
func (m *sparseMap[T]) GetBoolean(i int) bool  { return m.get(int64(i)) != 0 }

func (m *sparseMap[T]) SetInt(i int, value int) error {
	return m.set(int64(i), T(value))
}

func (m *sparseMap[T]) SetFloat(i int, value float32) error {
	return m.set(int64(i), fromFloat[T](value))
}

func (m *sparseMap[T]) SetBoolean(i int, value bool) error {
	return m.set(int64(i), T(boolToInt(value)))
}

func (m *sparseMap[T]) Infinity() float32 {
	if isFloat[T]() {
		return float32(math.Inf(1))
	}
	return math.MaxInt
}

func (m *sparseMap[T]) NegativeInfinity() float32 {
	if isFloat[T]() {
		return float32(math.Inf(-1))
	}
	return math.MinInt
}

func (m *sparseMap[T]) DefaultValue() float32 { return float32(m.defaultValue) }

func (m *sparseMap[T]) hasDefault() bool { return m.defaultValue != 0 }

func (m *sparseMap[T]) formatDefault() string {
	if f, ok := any(m.defaultValue).(float32); ok {
		return formatFloat(f)
	}
	return strconv.Itoa(toInt(m.defaultValue))
}
func (m *sparseMap[T]) Populated() int        { return len(m.entries) }

// Trim rebuilds the map so storage left behind by deletions is released.
func (m *sparseMap[T]) Trim() { m.entries = maps.Clone(m.entries) }

func (m *sparseMap[T]) keys() []int64 {
	return slices.Sorted(maps.Keys(m.entries))
}

func (m *sparseMap[T]) ForEachPopulated(fn func(i int, value float32) bool) {
	for _, k := range m.keys() {
		if !fn(int(k), float32(m.entries[k])) {
			return
		}
	}
}

// firstUnpopulated returns the lowest slot without an entry, or -1 when every
// slot in [0, length) is populated.
func (m *sparseMap[T]) firstUnpopulated() int64 {
	if int64(len(m.entries)) >= m.length {
		return -1
	}
	var expected int64
	for _, k := range m.keys() {
		if k != expected {
			return expected
		}
		expected++
	}
	return expected
}

func (m *sparseMap[T]) Sum() float32 {
	var s T
	for _, x := range m.entries {
		s += x
	}
	unpopulated := m.length - int64(len(m.entries))
	return float32(s) + float32(m.defaultValue)*float32(unpopulated)
}

// extreme returns the first index holding the smallest (less) or largest value.
func (m *sparseMap[T]) extreme(better func(a, b T) bool) int64 {
	best := m.firstUnpopulated()
	var bestValue T
	if best >= 0 {
		bestValue = m.defaultValue
	}
	for _, k := range m.keys() {
		x := m.entries[k]
		if best < 0 || better(x, bestValue) || (x == bestValue && k < best) {
			best, bestValue = k, x
		}
	}
	return max(best, 0)
}

func (m *sparseMap[T]) largeArgMin() int64 {
	return m.extreme(func(a, b T) bool { return a < b })
}

func (m *sparseMap[T]) largeArgMax() int64 {
	return m.extreme(func(a, b T) bool { return a > b })
}

func (m *sparseMap[T]) ArgMin() int { return int(m.largeArgMin()) }
func (m *sparseMap[T]) ArgMax() int { return int(m.largeArgMax()) }

func (m *sparseMap[T]) Min() float32 {
	if m.length == 0 {
		return m.Infinity()
	}
	return float32(m.get(m.largeArgMin()))
}

func (m *sparseMap[T]) Max() float32 {
	if m.length == 0 {
		return m.NegativeInfinity()
	}
	return float32(m.get(m.largeArgMax()))
}

func (m *sparseMap[T]) IntMin() int {
	if m.length == 0 {
		return math.MaxInt
	}
	return toInt(m.get(m.largeArgMin()))
}

func (m *sparseMap[T]) IntMax() int {
	if m.length == 0 {
		return math.MinInt
	}
	return toInt(m.get(m.largeArgMax()))
}

func (m *sparseMap[T]) clone() sparseMap[T] {
	c := *m
	c.entries = maps.Clone(m.entries)
	return c
}

// window copies the inclusive slot range [i0, i1] rebased to 0.
func (m *sparseMap[T]) window(i0, i1 int64) (sparseMap[T], error) {
	if i0 < 0 || i1 < i0 || i1 >= m.length {
		return sparseMap[T]{}, indexOutOfRange(i1, m.length)
	}
	out := sparseMap[T]{
		entries:      make(map[int64]T),
		defaultValue: m.defaultValue,
		length:       i1 - i0 + 1,
		limit:        m.limit,
	}
	for k, x := range m.entries {
		if k >= i0 && k <= i1 {
			out.entries[k-i0] = x
		}
	}
	return out, nil
}

// equal compares every slot of m and o, which must have the same length.
func (m *sparseMap[T]) equal(o *sparseMap[T]) bool {
	if m.length != o.length {
		return false
	}
	covered := int64(len(m.entries))
	for k, x := range m.entries {
		if o.get(k) != x {
			return false
		}
	}
	for k, x := range o.entries {
		if _, ok := m.entries[k]; ok {
			continue
		}
		covered++
		if m.get(k) != x {
			return false
		}
	}
	return covered == m.length || m.defaultValue == o.defaultValue
}

// union is the tropical union: the length is the larger of both and every key
// populated in either operand holds the larger of the two values.
func (m *sparseMap[T]) union(o *sparseMap[T], s Semiring) (sparseMap[T], error) {
	if s != SemiringTropical {
		return sparseMap[T]{}, &UnsupportedSemiringError{Semiring: s}
	}
	if m.defaultValue != o.defaultValue {
		return sparseMap[T]{}, &UnsupportedSemiringError{Semiring: s, Reason: "default values differ"}
	}
	out := m.clone()
	out.length = max(m.length, o.length)
	out.limit = max(m.limit, o.limit)
	for k, x := range o.entries {
		out.entries[k] = max(m.get(k), x)
	}
	for k, x := range m.entries {
		if _, ok := o.entries[k]; !ok {
			out.entries[k] = max(x, o.defaultValue)
		}
	}
	return out, nil
}

// combine applies op between every slot of m and the matching slot of other.
// Unpopulated slots are materialized only where the result leaves the default.
func (m *sparseMap[T]) combine(other Vector, op arith) error {
	if err := checkOperand(int(m.length), other); err != nil {
		return err
	}

	apply := func(x, y T) T {
		if op == arithMultiply {
			return x * y
		}
		return x + y
	}

	if s, ok := zeroSparse(other); ok && (op == arithAdd || m.defaultValue == 0) {
		if op == arithMultiply {
			for k, x := range m.entries {
				m.entries[k] = apply(x, read[T](other, int(k)))
			}
			return nil
		}
		s.ForEachPopulated(func(i int, _ float32) bool {
			m.entries[int64(i)] = apply(m.get(int64(i)), read[T](other, i))
			return true
		})
		return nil
	}

	for i := range m.length {
		y := read[T](other, int(i))
		if x, ok := m.entries[i]; ok {
			m.entries[i] = apply(x, y)
			continue
		}
		if r := apply(m.defaultValue, y); r != m.defaultValue {
			m.entries[i] = r
		}
	}
	return nil
}

func (m *sparseMap[T]) scalarAdd(addend T) {
	m.defaultValue += addend
	for k := range m.entries {
		m.entries[k] += addend
	}
}

func (m *sparseMap[T]) scalarMultiply(multiplier T) {
	m.defaultValue *= multiplier
	for k := range m.entries {
		m.entries[k] *= multiplier
	}
}

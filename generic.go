package vecmath

import (
	"math"
)

// Default algorithms expressed purely through the Vector accessors. Concrete
// encodings call these unless their representation allows something cheaper.

// arith selects the elementwise operator evaluated by binaryOp.
type arith uint8

const (
	arithAdd arith = iota
	arithMultiply
)

func (a arith) ints(x, y int) int {
	if a == arithMultiply {
		return x * y
	}
	return x + y
}

func (a arith) floats(x, y float32) float32 {
	if a == arithMultiply {
		return x * y
	}
	return x + y
}

// apply invokes the operator's method on v, so a concrete override gets the call.
func (a arith) apply(v, other Vector) (Vector, error) {
	if a == arithMultiply {
		return v.ElementwiseMultiply(other)
	}
	return v.Add(other)
}

// binaryOp is the default Add/ElementwiseMultiply dispatch.
func binaryOp(left, right Vector, op arith) (Vector, error) {
	p := Promote(left.Kind(), right.Kind())
	if p.Swap {
		return op.apply(right, left)
	}

	switch {
	case p.Result.IsBit():
		return bitOp(left, right, op)
	case p.Result == KindPackedInt:
		l := left.(*PackedIntVector)
		r := right.(*PackedIntVector)
		if l.bits == r.bits && l.length == r.length {
			return l.packedOp(r, op)
		}
		// Different widths or lengths fall back to the dense rules.
		p.Result = KindInt
	}

	length, err := operandLength(left, right, p)
	if err != nil {
		return nil, err
	}

	if p.Result == KindFloat {
		out := make([]float32, length)
		for i := range out {
			out[i] = op.floats(left.GetFloat(i), right.GetFloat(i))
		}
		return &FloatVector{values: out}, nil
	}

	out := make([]int, length)
	for i := range out {
		out[i] = op.ints(left.GetInt(i), right.GetInt(i))
	}
	return &IntVector{values: out}, nil
}

// operandLength returns the result length of a numeric binary operator.
// A sparse-bit operand shorter than its numeric partner reads as zero past its end.
func operandLength(left, right Vector, p Promotion) (int, error) {
	n, m := left.Length(), right.Length()
	switch {
	case n == m:
		return n, nil
	case p.ZeroExtend && right.Kind().IsSparseBit() && m < n:
		return n, nil
	case p.ZeroExtend && left.Kind().IsSparseBit() && n < m:
		return m, nil
	default:
		return 0, lengthMismatch(int64(n), int64(m))
	}
}

// checkOperand validates the operand of an in-place operator on a receiver of length n.
func checkOperand(n int, other Vector) error {
	m := other.Length()
	if m == n || (m < n && other.Kind().IsSparseBit()) {
		return nil
	}
	return lengthMismatch(int64(n), int64(m))
}

func bitOp(left, right Vector, op arith) (Vector, error) {
	lb, ok := left.(BitVector)
	if !ok {
		return nil, lengthMismatch(int64(left.Length()), int64(right.Length()))
	}
	rb, ok := right.(BitVector)
	if !ok {
		return nil, lengthMismatch(int64(left.Length()), int64(right.Length()))
	}
	if !left.Kind().IsSparseBit() && !right.Kind().IsSparseBit() && left.Length() != right.Length() {
		return nil, lengthMismatch(int64(left.Length()), int64(right.Length()))
	}
	if op == arithMultiply {
		return lb.Intersection(rb)
	}
	return lb.Union(rb)
}

func scalarAdd(v Vector, addend int) Vector {
	if v.Kind().IsFloat() {
		return scalarAddFloat(v, float32(addend))
	}
	out := make([]int, v.Length())
	for i := range out {
		out[i] = v.GetInt(i) + addend
	}
	return &IntVector{values: out}
}

func scalarAddFloat(v Vector, addend float32) Vector {
	out := make([]float32, v.Length())
	for i := range out {
		out[i] = v.GetFloat(i) + addend
	}
	return &FloatVector{values: out}
}

func scalarMultiply(v Vector, multiplier int) Vector {
	if v.Kind().IsFloat() {
		return scalarMultiplyFloat(v, float32(multiplier))
	}
	out := make([]int, v.Length())
	for i := range out {
		out[i] = v.GetInt(i) * multiplier
	}
	return &IntVector{values: out}
}

func scalarMultiplyFloat(v Vector, multiplier float32) Vector {
	out := make([]float32, v.Length())
	for i := range out {
		out[i] = v.GetFloat(i) * multiplier
	}
	return &FloatVector{values: out}
}

// zeroSparse returns v as a SparseVector when its unpopulated slots read as zero.
func zeroSparse(v Vector) (SparseVector, bool) {
	s, ok := v.(SparseVector)
	if !ok || s.DefaultValue() != 0 {
		return nil, false
	}
	return s, true
}

// dotProduct skips zero slots when either operand is a zero-default sparse vector,
// iterating the smaller populated set when both are.
func dotProduct(a, b Vector) (float32, error) {
	if err := dotLengths(a, b); err != nil {
		return 0, err
	}

	sa, aSparse := zeroSparse(a)
	sb, bSparse := zeroSparse(b)

	var iter SparseVector
	var other Vector
	switch {
	case aSparse && bSparse:
		iter, other = sa, b
		if sb.Populated() < sa.Populated() {
			iter, other = sb, a
		}
	case aSparse:
		iter, other = sa, b
	case bSparse:
		iter, other = sb, a
	}

	var sum float32
	if iter != nil {
		n := other.Length()
		_, otherSparse := other.(SparseVector)
		iter.ForEachPopulated(func(i int, value float32) bool {
			if i >= n && !otherSparse {
				return false
			}
			sum += value * other.GetFloat(i)
			return true
		})
		return sum, nil
	}

	for i := range a.Length() {
		sum += a.GetFloat(i) * b.GetFloat(i)
	}
	return sum, nil
}

func dotLengths(a, b Vector) error {
	n, m := a.Length(), b.Length()
	switch {
	case n == m:
		return nil
	case n < m && a.Kind().IsSparseBit():
		return nil
	case m < n && b.Kind().IsSparseBit():
		return nil
	default:
		return lengthMismatch(int64(n), int64(m))
	}
}

func sum(v Vector) float32 {
	var s float32
	for i := range v.Length() {
		s += v.GetFloat(i)
	}
	return s
}

func minimum(v Vector) float32 {
	if v.Length() == 0 {
		return v.Infinity()
	}
	return v.GetFloat(argMin(v))
}

func maximum(v Vector) float32 {
	if v.Length() == 0 {
		return v.NegativeInfinity()
	}
	return v.GetFloat(argMax(v))
}

func intMin(v Vector) int {
	m := math.MaxInt
	for i := range v.Length() {
		if x := v.GetInt(i); x < m {
			m = x
		}
	}
	return m
}

func intMax(v Vector) int {
	m := math.MinInt
	for i := range v.Length() {
		if x := v.GetInt(i); x > m {
			m = x
		}
	}
	return m
}

// argMin returns the first index holding the minimum, or 0 for an empty vector.
func argMin(v Vector) int {
	best := 0
	for i := 1; i < v.Length(); i++ {
		if v.GetFloat(i) < v.GetFloat(best) {
			best = i
		}
	}
	return best
}

// argMax returns the first index holding the maximum, or 0 for an empty vector.
func argMax(v Vector) int {
	best := 0
	for i := 1; i < v.Length(); i++ {
		if v.GetFloat(i) > v.GetFloat(best) {
			best = i
		}
	}
	return best
}

// equals is kind, length and exact per-slot equality.
func equals(a, b Vector) bool {
	if b == nil || a.Kind() != b.Kind() || a.Length() != b.Length() {
		return false
	}
	if a.Kind().IsFloat() {
		for i := range a.Length() {
			if a.GetFloat(i) != b.GetFloat(i) {
				return false
			}
		}
		return true
	}
	for i := range a.Length() {
		if a.GetInt(i) != b.GetInt(i) {
			return false
		}
	}
	return true
}

func elementwiseDivide(v, other Vector) (*FloatVector, error) {
	if err := checkOperand(v.Length(), other); err != nil {
		return nil, err
	}
	out := make([]float32, v.Length())
	for i := range out {
		out[i] = v.GetFloat(i) / other.GetFloat(i)
	}
	return &FloatVector{values: out}, nil
}

func elementwiseLog(v Vector) *FloatVector {
	out := make([]float32, v.Length())
	for i := range out {
		out[i] = float32(math.Log(float64(v.GetFloat(i))))
	}
	return &FloatVector{values: out}
}

// multiply computes m · v. The result is an IntVector only for an integer
// receiver and a matrix that implements IntMatrix.
func multiply(v Vector, m Matrix) (NumericVector, error) {
	if m.Columns() != v.Length() {
		return nil, lengthMismatch(int64(m.Columns()), int64(v.Length()))
	}

	rows := m.Rows()
	s, sparse := zeroSparse(v)

	if im, ok := m.(IntMatrix); ok && !v.Kind().IsFloat() {
		out := make([]int, rows)
		for r := range rows {
			var acc int
			if sparse {
				s.ForEachPopulated(func(j int, _ float32) bool {
					acc += v.GetInt(j) * im.GetInt(r, j)
					return true
				})
			} else {
				for j := range v.Length() {
					acc += v.GetInt(j) * im.GetInt(r, j)
				}
			}
			out[r] = acc
		}
		return &IntVector{values: out}, nil
	}

	out := make([]float32, rows)
	for r := range rows {
		var acc float32
		if sparse {
			s.ForEachPopulated(func(j int, value float32) bool {
				acc += value * m.GetFloat(r, j)
				return true
			})
		} else {
			for j := range v.Length() {
				acc += v.GetFloat(j) * m.GetFloat(r, j)
			}
		}
		out[r] = acc
	}
	return &FloatVector{values: out}, nil
}

// setString parses value in the element domain of v.
func setString(v Vector, i int, value string) error {
	k := v.Kind()
	switch {
	case k.IsBit():
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		return v.SetBoolean(i, b)
	case k.IsFloat():
		f, err := parseFloat(value)
		if err != nil {
			return err
		}
		return v.SetFloat(i, f)
	default:
		n, err := parseInt(value)
		if err != nil {
			return err
		}
		return v.SetInt(i, n)
	}
}

// subVectorRange validates an inclusive window over a vector of the given length.
func subVectorRange(i0, i1, length int) error {
	if i0 < 0 || i0 > i1 {
		return indexOutOfRange(int64(i0), int64(length))
	}
	if i1 >= length {
		return indexOutOfRange(int64(i1), int64(length))
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

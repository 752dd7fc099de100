package vecmath

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// formatKey identifies a serialized encoding: the type attribute plus the sparse flag.
type formatKey struct {
	tag    string
	sparse bool
}

// formats maps every kind to the header attributes its Write emits.
// Kinds written without a sparse attribute have sparseAttr false.
var formats = map[Kind]struct {
	key        formatKey
	sparseAttr bool
}{
	KindInt:                   {formatKey{"int", false}, true},
	KindFloat:                 {formatKey{"float", false}, true},
	KindPackedBit:             {formatKey{"packed-bit", false}, false},
	KindPackedInt:             {formatKey{"packed-int", false}, false},
	KindSparseBit:             {formatKey{"sparse-bit", false}, false},
	KindMutableSparseBit:      {formatKey{"mutable-sparse-bit", false}, false},
	KindLargeSparseBit:        {formatKey{"large-sparse-bit", false}, false},
	KindLargeMutableSparseBit: {formatKey{"large-mutable-sparse-bit", false}, false},
	KindHashSparseInt:         {formatKey{"int", true}, true},
	KindHashSparseFloat:       {formatKey{"float", true}, true},
	KindLargeHashSparseInt:    {formatKey{"large-int", true}, true},
	KindLargeHashSparseFloat:  {formatKey{"large-float", true}, true},
}

func isHashSparse(k Kind) bool {
	switch k {
	case KindHashSparseInt, KindHashSparseFloat, KindLargeHashSparseInt, KindLargeHashSparseFloat:
		return true
	default:
		return false
	}
}

// Write serializes v in the text format:
//
//	vector type=TYPE length=LEN [bits=BITS] [sparse=BOOL] [default=VALUE]
//	BODY
//
// Dense bodies list every slot. Sparse bit bodies list populated indices and
// hash-sparse bodies list index/value pairs, both in ascending index order.
func Write(w io.Writer, v Vector) error { return writeVector(w, v) }

func writeVector(w io.Writer, v Vector) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, v)
	writeBody(bw, v)
	return bw.Flush()
}

func writeHeader(bw *bufio.Writer, v Vector) {
	k := v.Kind()
	f := formats[k]

	bw.WriteString("vector type=")
	bw.WriteString(f.key.tag)
	bw.WriteString(" length=")
	bw.WriteString(strconv.Itoa(v.Length()))

	if p, ok := v.(*PackedIntVector); ok {
		bw.WriteString(" bits=")
		bw.WriteString(strconv.Itoa(p.Bits()))
	}
	if f.sparseAttr {
		bw.WriteString(" sparse=")
		bw.WriteString(strconv.FormatBool(f.key.sparse))
	}
	if d, ok := v.(defaultFormatter); ok && d.hasDefault() {
		bw.WriteString(" default=")
		bw.WriteString(d.formatDefault())
	}
	bw.WriteByte('\n')
}

func writeBody(bw *bufio.Writer, v Vector) {
	k := v.Kind()
	first := true
	sep := func() {
		if !first {
			bw.WriteByte(' ')
		}
		first = false
	}

	switch {
	case k.IsSparseBit():
		for i := range v.(BitVector).All() {
			sep()
			bw.WriteString(strconv.Itoa(i))
		}
	case isHashSparse(k):
		v.(SparseVector).ForEachPopulated(func(i int, value float32) bool {
			sep()
			bw.WriteString(strconv.Itoa(i))
			bw.WriteByte(' ')
			if k.IsFloat() {
				bw.WriteString(formatFloat(value))
			} else {
				bw.WriteString(strconv.Itoa(v.GetInt(i)))
			}
			return true
		})
	case k.IsBit():
		for i := range v.Length() {
			sep()
			bw.WriteString(strconv.Itoa(v.GetInt(i)))
		}
	case k.IsFloat():
		for i := range v.Length() {
			sep()
			bw.WriteString(formatFloat(v.GetFloat(i)))
		}
	default:
		for i := range v.Length() {
			sep()
			bw.WriteString(strconv.Itoa(v.GetInt(i)))
		}
	}
	bw.WriteByte('\n')
}

func vectorString(v Vector) string {
	var sb strings.Builder
	_ = writeVector(&sb, v)
	return sb.String()
}

// defaultFormatter is implemented by the hash-sparse vectors, which write the
// default in its own type so int defaults never pass through float32.
type defaultFormatter interface {
	hasDefault() bool
	formatDefault() string
}

// formatFloat renders six fractional digits, spelling out the non-finite values.
func formatFloat(f float32) string {
	switch {
	case math.IsInf(float64(f), 1):
		return "Infinity"
	case math.IsInf(float64(f), -1):
		return "-Infinity"
	case math.IsNaN(float64(f)):
		return "NaN"
	default:
		return roundHalfUp(strconv.FormatFloat(float64(f), 'f', -1, 64), 6)
	}
}

// roundHalfUp rounds the shortest decimal form s to prec fractional digits,
// taking ties away from zero.
func roundHalfUp(s string, prec int) string {
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) <= prec {
		return sign + whole + "." + frac + strings.Repeat("0", prec-len(frac))
	}

	up := frac[prec] >= '5'
	digits := []byte(whole + frac[:prec])
	if up {
		i := len(digits) - 1
		for ; i >= 0 && digits[i] == '9'; i-- {
			digits[i] = '0'
		}
		if i >= 0 {
			digits[i]++
		} else {
			digits = append([]byte{'1'}, digits...)
		}
	}
	n := len(digits) - prec
	return sign + string(digits[:n]) + "." + string(digits[n:])
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformedCause(err, "invalid int %q", s)
	}
	return n, nil
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, malformedCause(err, "invalid index %q", s)
	}
	return n, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, malformedCause(err, "invalid float %q", s)
	}
	return float32(f), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, malformedCause(err, "invalid boolean %q", s)
	}
	return b, nil
}

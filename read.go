package vecmath

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// header holds the attributes of a header line.
type header struct {
	tag          string
	length       int64
	bits         int
	sparse       bool
	defaultValue string
}

// decoder builds a vector of one encoding from its header and body tokens.
type decoder func(h header, t *tokenizer) (Vector, error)

var decoders = map[formatKey]decoder{
	{"int", false}:                      readIntVector,
	{"float", false}:                    readFloatVector,
	{"packed-bit", false}:               readPackedBitVector,
	{"packed-int", false}:               readPackedIntVector,
	{"sparse-bit", false}:               readSparseBitVector,
	{"mutable-sparse-bit", false}:       readMutableSparseBitVector,
	{"large-sparse-bit", false}:         readLargeSparseBitVector,
	{"large-mutable-sparse-bit", false}: readLargeMutableSparseBitVector,
	{"int", true}:                       readHashSparseIntVector,
	{"float", true}:                     readHashSparseFloatVector,
	{"large-int", true}:                 readLargeHashSparseIntVector,
	{"large-float", true}:               readLargeHashSparseFloatVector,
}

// Read parses one vector document produced by Write.
func Read(r io.Reader) (Vector, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return nil, malformed("missing header line")
		}
		return nil, err
	}

	h, err := parseHeader(line)
	if err != nil {
		return nil, err
	}

	dec, ok := decoders[formatKey{tag: h.tag, sparse: h.sparse}]
	if !ok {
		return nil, malformed("unknown vector type %q (sparse=%t)", h.tag, h.sparse)
	}
	return dec(h, &tokenizer{r: br})
}

// ReadString parses a vector document held in s.
func ReadString(s string) (Vector, error) {
	return Read(strings.NewReader(s))
}

func parseHeader(line string) (header, error) {
	t := &tokenizer{r: bufio.NewReader(strings.NewReader(line))}

	first, err := t.next()
	if err != nil || first != "vector" {
		return header{}, malformed("header must start with \"vector\"")
	}

	h := header{length: -1}
	for {
		tok, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return header{}, err
		}

		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return header{}, malformed("header attribute %q is not key=value", tok)
		}
		switch key {
		case "type":
			h.tag = value
		case "length":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return header{}, malformedCause(err, "invalid length %q", value)
			}
			h.length = n
		case "bits":
			n, err := strconv.Atoi(value)
			if err != nil {
				return header{}, malformedCause(err, "invalid bits %q", value)
			}
			h.bits = n
		case "sparse":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return header{}, malformedCause(err, "invalid sparse flag %q", value)
			}
			h.sparse = b
		case "default":
			h.defaultValue = value
		default:
			return header{}, malformed("unknown header attribute %q", key)
		}
	}

	if h.tag == "" {
		return header{}, malformed("header has no type")
	}
	if h.length < 0 {
		return header{}, malformed("header has no length")
	}
	return h, nil
}

// tokenizer splits a body into whitespace-separated tokens.
type tokenizer struct {
	r   *bufio.Reader
	buf []byte
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// next returns the next token, or io.EOF when the input is exhausted.
func (t *tokenizer) next() (string, error) {
	t.buf = t.buf[:0]
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(t.buf) > 0 {
				return string(t.buf), nil
			}
			return "", err
		}
		if isSpace(c) {
			if len(t.buf) > 0 {
				return string(t.buf), nil
			}
			continue
		}
		t.buf = append(t.buf, c)
	}
}

// dense reads exactly n tokens and rejects any trailing token. The slice grows
// with the input, so a declared length the body does not back allocates nothing.
func (t *tokenizer) dense(n int64) ([]string, error) {
	var toks []string
	for int64(len(toks)) < n {
		tok, err := t.next()
		if errors.Is(err, io.EOF) {
			return nil, malformed("expected %d values, got %d", n, len(toks))
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	if err := t.end(n); err != nil {
		return nil, err
	}
	return toks, nil
}

func (t *tokenizer) end(n int64) error {
	_, err := t.next()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return malformed("expected %d values, got more", n)
	}
}

// rest reads every remaining token.
func (t *tokenizer) rest() ([]string, error) {
	var out []string
	for {
		tok, err := t.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

func readIntVector(h header, t *tokenizer) (Vector, error) {
	toks, err := t.dense(h.length)
	if err != nil {
		return nil, err
	}
	v := NewIntVector(len(toks))
	for i, tok := range toks {
		if v.values[i], err = parseInt(tok); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func readFloatVector(h header, t *tokenizer) (Vector, error) {
	toks, err := t.dense(h.length)
	if err != nil {
		return nil, err
	}
	v := NewFloatVector(len(toks))
	for i, tok := range toks {
		if v.values[i], err = parseFloat(tok); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func readPackedBitVector(h header, t *tokenizer) (Vector, error) {
	toks, err := t.dense(h.length)
	if err != nil {
		return nil, err
	}
	v := NewPackedBitVector(len(toks))
	for i, tok := range toks {
		b, err := parseBool(tok)
		if err != nil {
			return nil, err
		}
		if b {
			v.set(i)
		}
	}
	return v, nil
}

func readPackedIntVector(h header, t *tokenizer) (Vector, error) {
	if h.bits == 0 {
		return nil, malformed("packed-int header has no bits")
	}
	toks, err := t.dense(h.length)
	if err != nil {
		return nil, err
	}
	v, err := NewPackedIntVector(len(toks), h.bits)
	if err != nil {
		return nil, err
	}
	for i, tok := range toks {
		n, err := parseInt(tok)
		if err != nil {
			return nil, err
		}
		if err := v.SetInt(i, n); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func readIndices(t *tokenizer) ([]int64, error) {
	toks, err := t.rest()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(toks))
	for n, tok := range toks {
		if out[n], err = parseInt64(tok); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkDerivedLength(h header, v Vector) (Vector, error) {
	if int64(v.Length()) != h.length {
		return nil, malformed("declared length %d, indices imply %d", h.length, v.Length())
	}
	return v, nil
}

func readSparseBitVector(h header, t *tokenizer) (Vector, error) {
	indices, err := readIndices(t)
	if err != nil {
		return nil, err
	}
	narrow := make([]int, len(indices))
	for n, i := range indices {
		narrow[n] = int(i)
	}
	v, err := NewSparseBitVector(narrow)
	if err != nil {
		return nil, err
	}
	return checkDerivedLength(h, v)
}

func readMutableSparseBitVector(h header, t *tokenizer) (Vector, error) {
	indices, err := readIndices(t)
	if err != nil {
		return nil, err
	}
	v := NewMutableSparseBitVector()
	for _, i := range indices {
		if err := v.AddIndex(int(i)); err != nil {
			return nil, err
		}
	}
	return checkDerivedLength(h, v)
}

func readLargeSparseBitVector(h header, t *tokenizer) (Vector, error) {
	indices, err := readIndices(t)
	if err != nil {
		return nil, err
	}
	v, err := NewLargeSparseBitVector(indices)
	if err != nil {
		return nil, err
	}
	return checkDerivedLength(h, v)
}

func readLargeMutableSparseBitVector(h header, t *tokenizer) (Vector, error) {
	indices, err := readIndices(t)
	if err != nil {
		return nil, err
	}
	v, err := LargeMutableSparseBitVectorFrom(indices)
	if err != nil {
		return nil, err
	}
	return checkDerivedLength(h, v)
}

// readPairs feeds index/value pairs to set. Indices must lie below the declared length.
func readPairs(h header, t *tokenizer, set func(i int64, tok string) error) error {
	toks, err := t.rest()
	if err != nil {
		return err
	}
	if len(toks)%2 != 0 {
		return malformed("odd number of index/value tokens: %d", len(toks))
	}
	for n := 0; n < len(toks); n += 2 {
		i, err := parseInt64(toks[n])
		if err != nil {
			return err
		}
		if i < 0 || i >= h.length {
			return malformed("index %d outside declared length %d", i, h.length)
		}
		if err := set(i, toks[n+1]); err != nil {
			return err
		}
	}
	return nil
}

func defaultOption(h header) ([]SparseOption, error) {
	if h.defaultValue == "" {
		return nil, nil
	}
	f, err := parseFloat(h.defaultValue)
	if err != nil {
		return nil, err
	}
	return []SparseOption{WithDefault(f)}, nil
}

// intDefaultOption parses the default of an int vector without a float32 round trip.
func intDefaultOption(h header) ([]SparseOption, error) {
	if h.defaultValue == "" {
		return nil, nil
	}
	n, err := parseInt(h.defaultValue)
	if err != nil {
		return nil, err
	}
	return []SparseOption{WithIntDefault(n)}, nil
}

func readHashSparseIntVector(h header, t *tokenizer) (Vector, error) {
	opts, err := intDefaultOption(h)
	if err != nil {
		return nil, err
	}
	v := NewHashSparseIntVector(int(h.length), opts...)
	err = readPairs(h, t, func(i int64, tok string) error {
		n, err := parseInt(tok)
		if err != nil {
			return err
		}
		return v.set(i, n)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readHashSparseFloatVector(h header, t *tokenizer) (Vector, error) {
	opts, err := defaultOption(h)
	if err != nil {
		return nil, err
	}
	v := NewHashSparseFloatVector(int(h.length), opts...)
	err = readPairs(h, t, func(i int64, tok string) error {
		f, err := parseFloat(tok)
		if err != nil {
			return err
		}
		return v.set(i, f)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readLargeHashSparseIntVector(h header, t *tokenizer) (Vector, error) {
	opts, err := intDefaultOption(h)
	if err != nil {
		return nil, err
	}
	v := NewLargeHashSparseIntVector(h.length, opts...)
	err = readPairs(h, t, func(i int64, tok string) error {
		n, err := parseInt(tok)
		if err != nil {
			return err
		}
		return v.set(i, n)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func readLargeHashSparseFloatVector(h header, t *tokenizer) (Vector, error) {
	opts, err := defaultOption(h)
	if err != nil {
		return nil, err
	}
	v := NewLargeHashSparseFloatVector(h.length, opts...)
	err = readPairs(h, t, func(i int64, tok string) error {
		f, err := parseFloat(tok)
		if err != nil {
			return err
		}
		return v.set(i, f)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

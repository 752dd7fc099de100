package codec

import (
	"bytes"

	"github.com/hupe1980/vecmath"
)

// Text is the plain text format of vecmath.Write.
type Text struct{}

// Encode writes v in the text format.
func (Text) Encode(v vecmath.Vector) ([]byte, error) {
	var buf bytes.Buffer
	if err := vecmath.Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a text document.
func (Text) Decode(data []byte) (vecmath.Vector, error) {
	return vecmath.Read(bytes.NewReader(data))
}

// Name returns "text".
func (Text) Name() string { return "text" }

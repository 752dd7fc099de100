// Package codec turns vector documents into bytes and back.
//
// Every codec wraps the text format of vecmath.Write. Compressed codecs add a
// block header in front of the compressed text, so a blob written with one
// codec can only be read back by the codec with the same name. Archives record
// the codec name next to each blob and select the decoder with ByName.
package codec

import (
	"fmt"
	"slices"

	"github.com/hupe1980/vecmath"
)

// Codec encodes and decodes whole vectors.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(v vecmath.Vector) ([]byte, error)
	Decode(data []byte) (vecmath.Vector, error)
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Text{}

var builtin = map[string]Codec{
	Text{}.Name(): Text{},
	LZ4{}.Name():  LZ4{},
	Zstd{}.Name(): Zstd{},
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names returns the names of the built-in codecs in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustEncode is a helper for tests and examples.
func MustEncode(c Codec, v vecmath.Vector) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Encode(v)
	if err != nil {
		panic(fmt.Errorf("codec %s encode failed: %w", c.Name(), err))
	}
	return b
}

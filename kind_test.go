package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		name        string
		left, right Kind
		want        Promotion
	}{
		{"int x int", KindInt, KindInt, Promotion{Result: KindInt}},
		{"int x float", KindInt, KindFloat, Promotion{Result: KindFloat}},
		{"float x int", KindFloat, KindInt, Promotion{Result: KindFloat}},
		{"hash int x hash float", KindHashSparseInt, KindHashSparseFloat, Promotion{Result: KindFloat}},
		{"int x packed bit", KindInt, KindPackedBit, Promotion{Result: KindInt}},
		{"packed bit x float", KindPackedBit, KindFloat, Promotion{Result: KindFloat}},
		{"packed bit x packed bit", KindPackedBit, KindPackedBit, Promotion{Result: KindPackedBit}},
		{"packed bit x sparse bit", KindPackedBit, KindSparseBit, Promotion{Result: KindSparseBit, Swap: true}},
		{"packed bit x mutable sparse bit", KindPackedBit, KindMutableSparseBit, Promotion{Result: KindMutableSparseBit, Swap: true}},
		{"sparse bit x packed bit", KindSparseBit, KindPackedBit, Promotion{Result: KindSparseBit}},
		{"sparse bit x mutable sparse bit", KindSparseBit, KindMutableSparseBit, Promotion{Result: KindSparseBit}},
		{"int x sparse bit", KindInt, KindSparseBit, Promotion{Result: KindInt, ZeroExtend: true}},
		{"float x large sparse bit", KindFloat, KindLargeSparseBit, Promotion{Result: KindFloat, ZeroExtend: true}},
		{"sparse bit x float", KindSparseBit, KindFloat, Promotion{Result: KindFloat, ZeroExtend: true}},
		{"packed int x packed int", KindPackedInt, KindPackedInt, Promotion{Result: KindPackedInt}},
		{"packed int x int", KindPackedInt, KindInt, Promotion{Result: KindInt}},
		{"packed int x packed bit", KindPackedInt, KindPackedBit, Promotion{Result: KindInt}},
		{"large hash float x int", KindLargeHashSparseFloat, KindInt, Promotion{Result: KindFloat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Promote(tt.left, tt.right))
		})
	}
}

func TestKindClassification(t *testing.T) {
	all := []Kind{
		KindInt, KindFloat, KindPackedBit, KindPackedInt,
		KindSparseBit, KindMutableSparseBit, KindHashSparseInt, KindHashSparseFloat,
		KindLargeSparseBit, KindLargeMutableSparseBit, KindLargeHashSparseInt, KindLargeHashSparseFloat,
	}

	for _, k := range all {
		t.Run(k.String(), func(t *testing.T) {
			n := 0
			for _, class := range []bool{k.IsBit(), k.IsFloat(), k.IsInt()} {
				if class {
					n++
				}
			}
			assert.Equal(t, 1, n, "every kind is exactly one of bit, float or int")
			if k.IsSparseBit() {
				assert.True(t, k.IsBit())
			}
		})
	}

	assert.Equal(t, "Unknown(99)", Kind(99).String())
	assert.True(t, KindLargeHashSparseFloat.IsLarge())
	assert.False(t, KindHashSparseFloat.IsLarge())
}

func TestSemiringString(t *testing.T) {
	assert.Equal(t, "tropical", SemiringTropical.String())
	assert.Equal(t, "log", SemiringLog.String())
	assert.Equal(t, "real", SemiringReal.String())
	assert.Equal(t, "Unknown(7)", Semiring(7).String())
}

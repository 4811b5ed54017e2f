package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		a, b float64
		want float64
	}{
		{name: "add", op: Add, a: 2, b: 3, want: 5},
		{name: "subtract keeps operand order", op: Subtract, a: 10, b: 4, want: 6},
		{name: "multiply", op: Multiply, a: 6, b: 7, want: 42},
		{name: "divide keeps operand order", op: Divide, a: 10, b: 4, want: 2.5},
		{name: "divide by zero", op: Divide, a: 5, b: 0, want: math.Inf(1)},
		{name: "negative divide by zero", op: Divide, a: -5, b: 0, want: math.Inf(-1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.op, tc.a, tc.b))
		})
	}
}

func TestEvaluateZeroByZeroIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Evaluate(Divide, 0, 0)))
}

func TestEvaluateWithoutOperationIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Evaluate(NoOperation, 1, 2)))
}

func TestOperationGlyphs(t *testing.T) {
	assert.Equal(t, "+", Add.Glyph())
	assert.Equal(t, "-", Subtract.Glyph())
	assert.Equal(t, "×", Multiply.Glyph())
	assert.Equal(t, "÷", Divide.Glyph())
	assert.Equal(t, "", NoOperation.Glyph())
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations {
		byName, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, byName)

		byGlyph, err := ParseOperation(op.Glyph())
		require.NoError(t, err)
		assert.Equal(t, op, byGlyph)
	}

	op, err := ParseOperation("/")
	require.NoError(t, err)
	assert.Equal(t, Divide, op)

	_, err = ParseOperation("modulo")
	assert.Error(t, err)
}

func TestOperationUnmarshalTextEmptyIsNoOperation(t *testing.T) {
	op := Add
	require.NoError(t, op.UnmarshalText(nil))
	assert.Equal(t, NoOperation, op)

	assert.Error(t, op.UnmarshalText([]byte("pow")))
}

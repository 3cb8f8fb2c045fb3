package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrEscaping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Cube", `"Cube"`},
		{"empty", "", `""`},
		{"double quote", `my "cube"`, `"my \"cube\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"control char", "a\x01b", `"a\x01b"`},
		{"breakout attempt", `"); import os #`, `"\"); import os #"`},
		{"unicode kept", "Würfel", `"Würfel"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Literal(tt.want), Str(tt.in))
		})
	}
}

func TestFloat(t *testing.T) {
	assert.Equal(t, Literal("2.0"), Float(2))
	assert.Equal(t, Literal("0.5"), Float(0.5))
	assert.Equal(t, Literal("-1.25"), Float(-1.25))
	assert.Equal(t, Literal("0.0"), Float(0))
	assert.Equal(t, Literal("1e+20"), Float(1e20))
}

func TestBoolAndInt(t *testing.T) {
	assert.Equal(t, Literal("True"), Bool(true))
	assert.Equal(t, Literal("False"), Bool(false))
	assert.Equal(t, Literal("42"), Int(42))
	assert.Equal(t, Literal("-3"), Int(-3))
}

func TestVectors(t *testing.T) {
	assert.Equal(t, Literal("(0.0, 0.0, 0.0)"), Vec3([3]float64{0, 0, 0}))
	assert.Equal(t, Literal("(1.0, 2.5, -3.0)"), Vec3([3]float64{1, 2.5, -3}))
	assert.Equal(t, Literal("(0.8, 0.2, 0.2, 1.0)"), Vec4([4]float64{0.8, 0.2, 0.2, 1}))
}

func TestCollections(t *testing.T) {
	assert.Equal(t, Literal(`["a", "b"]`), StrList([]string{"a", "b"}))
	assert.Equal(t, Literal(`[]`), StrList(nil))
	assert.Equal(t, Literal("[(0.0, 0.0, 0.0), (1.0, 0.0, 0.0)]"),
		Vec3List([][3]float64{{0, 0, 0}, {1, 0, 0}}))
	assert.Equal(t, Literal("[[0, 1, 2], [2, 3, 0]]"),
		IntListList([][]int{{0, 1, 2}, {2, 3, 0}}))
}

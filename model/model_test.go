package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func motzkin() *System {
	s := NewSystem()
	s.AddType("M", []Constructor{
		{Name: "Leaf", Weight: 1},
		{Name: "Unary", Weight: 1, Args: []Argument{{Kind: TypeArg, Type: "M"}}},
		{Name: "Binary", Weight: 1, Args: []Argument{{Kind: TypeArg, Type: "M"}, {Kind: TypeArg, Type: "M"}}},
	})
	return s
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, motzkin().Validate())
}

func TestValidateUnknownType(t *testing.T) {
	s := NewSystem()
	s.AddType("M", []Constructor{
		{Name: "Bad", Weight: 1, Args: []Argument{{Kind: TypeArg, Type: "Ghost"}}},
	})
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, ErrUnknownType.Is(err))
}

func TestValidateNoAtoms(t *testing.T) {
	s := NewSystem()
	s.AddType("M", []Constructor{
		{Name: "Unary", Weight: 1, Args: []Argument{{Kind: TypeArg, Type: "M"}}},
	})
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, ErrNoAtoms.Is(err))
}

func TestValidateDegenerateConstructor(t *testing.T) {
	s := NewSystem()
	s.AddType("M", []Constructor{
		{Name: "Empty", Weight: 0},
	})
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, ErrDegenerateConstructor.Is(err))
}

func TestValidateInvalidFrequency(t *testing.T) {
	bad := -1.0
	s := NewSystem()
	s.AddType("M", []Constructor{
		{Name: "Leaf", Weight: 1, Frequency: &bad},
	})
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, ErrInvalidFrequency.Is(err))
}

func TestAnnotationsBool(t *testing.T) {
	a := Annotations{"withIO": "TRUE", "withShow": "false", "junk": "maybe"}
	v, ok := a.Bool("withIO")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = a.Bool("withShow")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = a.Bool("junk")
	assert.False(t, ok)

	assert.True(t, a.BoolOr("withIO", false))
	assert.False(t, a.BoolOr("missing", false))
}

func TestFingerprintStable(t *testing.T) {
	s1 := motzkin()
	s2 := motzkin()
	h1, d1 := s1.Fingerprint()
	h2, d2 := s2.Fingerprint()
	assert.Equal(t, h1, h2)
	assert.Equal(t, d1, d2)

	s2.Types["M"][0].Weight = 2
	h3, d3 := s2.Fingerprint()
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, d1, d3)
}

func TestHasFrequenciesAndCount(t *testing.T) {
	f := 0.5
	s := NewSystem()
	s.AddType("T", []Constructor{
		{Name: "A", Weight: 1, Frequency: &f},
		{Name: "B", Weight: 1},
	})
	assert.True(t, s.HasFrequencies())
	assert.Equal(t, 1, s.FrequencyCount())
}

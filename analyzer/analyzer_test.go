package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltzmannbrain/bb/model"
)

func motzkin() *model.System {
	s := model.NewSystem()
	s.AddType("M", []model.Constructor{
		{Name: "Leaf", Weight: 1},
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "M"}}},
		{Name: "Binary", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "M"}, {Kind: model.TypeArg, Type: "M"}}},
	})
	return s
}

func binaryWords() *model.System {
	s := model.NewSystem()
	s.AddType("T", []model.Constructor{
		{Name: "Zero", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "T"}}},
		{Name: "One", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "T"}}},
		{Name: "Eps", Weight: 0},
	})
	return s
}

func seqOfAtoms() *model.System {
	s := model.NewSystem()
	s.AddType("A", []model.Constructor{
		{Name: "Wrap", Weight: 0, Args: []model.Argument{{Kind: model.ListArg, Type: "B"}}},
	})
	s.AddType("B", []model.Constructor{
		{Name: "B", Weight: 1},
	})
	return s
}

func TestClassifyMotzkinIsAlgebraic(t *testing.T) {
	r := Classify(motzkin())
	assert.Equal(t, Algebraic, r.Class)
}

func TestClassifyBinaryWordsIsRational(t *testing.T) {
	r := Classify(binaryWords())
	assert.Equal(t, Rational, r.Class)
}

func TestClassifySeqIsAlgebraic(t *testing.T) {
	r := Classify(seqOfAtoms())
	assert.Equal(t, Algebraic, r.Class)
}

func TestClassifyDisconnectedIsUnsupported(t *testing.T) {
	s := model.NewSystem()
	s.AddType("X", []model.Constructor{{Name: "Leaf", Weight: 1}})
	s.AddType("Y", []model.Constructor{{Name: "Leaf2", Weight: 1}})
	r := Classify(s)
	require.Equal(t, Unsupported, r.Class)
	assert.Contains(t, r.Reason, "2 strongly connected components")
}

func TestAtomicTypesAndSeqTypes(t *testing.T) {
	s := seqOfAtoms()
	atomic := AtomicTypes(s)
	assert.True(t, atomic["B"])
	assert.False(t, atomic["A"])

	seqs := SeqTypes(s)
	assert.True(t, seqs["B"])
}

func TestHasAtoms(t *testing.T) {
	assert.True(t, HasAtoms(motzkin()))

	s := model.NewSystem()
	s.AddType("M", []model.Constructor{
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "M"}}},
	})
	assert.False(t, HasAtoms(s))
}

func TestDependencyGraphSeqReachability(t *testing.T) {
	g := DependencyGraph(seqOfAtoms())
	found := false
	for _, v := range g.Vertices() {
		if v == seqVertex("B") {
			found = true
			assert.Contains(t, g.Neighbors(v), "B")
		}
	}
	assert.True(t, found, "sequence vertex should be present in the dependency graph")
}

func TestClassifyIsDeterministicAndIdempotent(t *testing.T) {
	s := motzkin()
	r1 := Classify(s)
	r2 := Classify(s)
	assert.Equal(t, r1, r2)
}

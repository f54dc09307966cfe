package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltzmannbrain/bb/analyzer"
	"github.com/boltzmannbrain/bb/model"
	"github.com/boltzmannbrain/bb/oracle"
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

// TestBuildPlanMotzkin: Binary's two non-atomic M references make Motzkin
// algebraic (spec.md's linearity test, spec §4.1), not rational — Binary
// words below is the suite's rational example.
func TestBuildPlanMotzkin(t *testing.T) {
	s := motzkin()
	require.NoError(t, s.Validate())
	class := analyzer.Classify(s)
	require.Equal(t, analyzer.Algebraic, class.Class)

	p, err := oracle.Evaluate(s, oracle.Options{EpsRho: 1e-9, EpsY: 1e-9})
	require.NoError(t, err)

	plan := Build(p, class.Class)
	require.Len(t, plan.Types, 1)
	tp := plan.Types[0]
	assert.Equal(t, "M", tp.Name)
	assert.False(t, tp.Interruptible)
	require.Len(t, tp.Branches, 3)

	last := tp.Branches[2]
	assert.False(t, last.NeedsTest)
	assert.Equal(t, 1.0, last.CumProb)

	first := tp.Branches[0]
	assert.True(t, first.NeedsTest)
	assert.True(t, first.CumProb > 0 && first.CumProb < 1)
}

func TestBuildPlanBinaryWordsIsInterruptible(t *testing.T) {
	s := binaryWords()
	require.NoError(t, s.Validate())
	class := analyzer.Classify(s)
	require.Equal(t, analyzer.Rational, class.Class)

	p, err := oracle.Evaluate(s, oracle.Options{EpsRho: 1e-9, EpsY: 1e-9})
	require.NoError(t, err)

	plan := Build(p, class.Class)
	require.Len(t, plan.Types, 1)
	assert.True(t, plan.Types[0].Interruptible)
}

func TestBuildPlanSeqOfAtoms(t *testing.T) {
	s := model.NewSystem()
	s.AddType("A", []model.Constructor{
		{Name: "Wrap", Weight: 0, Args: []model.Argument{{Kind: model.ListArg, Type: "B"}}},
	})
	s.AddType("B", []model.Constructor{
		{Name: "B", Weight: 1},
	})
	require.NoError(t, s.Validate())
	class := analyzer.Classify(s)
	require.Equal(t, analyzer.Algebraic, class.Class)

	rho := 0.5
	p, err := oracle.Evaluate(s, oracle.Options{EpsY: 1e-9, Rho0: &rho})
	require.NoError(t, err)

	plan := Build(p, class.Class)
	require.Len(t, plan.Seqs, 1)
	assert.Equal(t, "B", plan.Seqs[0].Element)
	assert.InDelta(t, 0.5, plan.Seqs[0].Continue, 1e-6)
}

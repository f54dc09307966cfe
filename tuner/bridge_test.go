package tuner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltzmannbrain/bb/analyzer"
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

func frequencySystem() *model.System {
	s := model.NewSystem()
	f := 2.0
	s.AddType("T", []model.Constructor{
		{Name: "Zero", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "T"}}, Frequency: &f},
		{Name: "One", Weight: 1, Args: []model.Argument{{Kind: model.TypeArg, Type: "T"}}},
		{Name: "Eps", Weight: 0},
	})
	return s
}

func TestWriteSpecMotzkinShape(t *testing.T) {
	spc := writeSpec(motzkin())
	lines := strings.Split(strings.TrimRight(string(spc.bytes), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "1 0", lines[0]) // 1 type, 0 synthetic seq types, 0 freqs
	assert.Equal(t, "", lines[1])    // empty frequencies vector
	assert.Equal(t, "3", lines[2])   // 3 constructors for M
	assert.Equal(t, 0, spc.numFreqs)
	assert.Equal(t, []string{"M"}, spc.typeOrder)
}

func TestWriteSpecWithSeqType(t *testing.T) {
	s := model.NewSystem()
	s.AddType("A", []model.Constructor{
		{Name: "Wrap", Weight: 0, Args: []model.Argument{{Kind: model.ListArg, Type: "B"}}},
	})
	s.AddType("B", []model.Constructor{
		{Name: "B", Weight: 1},
	})
	spc := writeSpec(s)
	assert.Equal(t, []string{"B"}, spc.seqOrder)
	lines := strings.Split(strings.TrimRight(string(spc.bytes), "\n"), "\n")
	assert.Equal(t, "3 0", lines[0]) // 2 types + 1 synthetic seq type, 0 freqs
}

func TestWriteSpecFrequencyIndex(t *testing.T) {
	spc := writeSpec(frequencySystem())
	assert.Equal(t, 1, spc.numFreqs)
	assert.Equal(t, 0, spc.freqIndex[seqKey("T", "Zero")])
}

// fakeSolverRunner simulates an external solver by writing back the given
// rho, u and y values in the solver's response format, bypassing os/exec
// so the round-trip wire-format/parse/convert path can be tested without a
// real solver binary.
func fakeSolverRunner(rho float64, u []float64, y []float64) runner {
	return func(ctx context.Context, opts Options, stdin []byte) ([]byte, error) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%.17g\n", rho)
		for _, v := range u {
			fmt.Fprintf(&sb, "%.17g ", v)
		}
		sb.WriteByte('\n')
		for _, v := range y {
			fmt.Fprintf(&sb, "%.17g ", v)
		}
		return []byte(sb.String()), nil
	}
}

func TestBridgeEvaluateMotzkin(t *testing.T) {
	b := &Bridge{
		opts: Options{Command: "fake-solver", Solver: "interior-point", Eps: 1e-20, MaxIter: 2500},
		// The exact Motzkin solution: rho = 1/3, y_M = 1.
		run: fakeSolverRunner(1.0/3.0, nil, []float64{1.0}),
	}
	p, err := b.Evaluate(context.Background(), motzkin())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, p.Rho, 1e-9)
	assert.InDelta(t, 1.0, p.Y["M"], 1e-9)
	require.Len(t, p.Constructors["M"], 3)
	for _, c := range p.Constructors["M"] {
		assert.InDelta(t, 1.0/3.0, c.Probability, 1e-6)
	}
}

func TestBridgeEvaluateWithFrequencyMarking(t *testing.T) {
	s := frequencySystem()
	b := &Bridge{
		opts: Options{Command: "fake-solver"},
		run:  fakeSolverRunner(0.4, []float64{1.5}, []float64{0.6}),
	}
	p, err := b.Evaluate(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, p.Constructors["T"], 3)
	// Zero is frequency-marked with u=1.5: its value should exceed the
	// unmarked One constructor's value despite identical weight/args.
	var zeroProb, oneProb float64
	for _, c := range p.Constructors["T"] {
		switch c.Name {
		case "Zero":
			zeroProb = c.Probability
		case "One":
			oneProb = c.Probability
		}
	}
	assert.Greater(t, zeroProb, oneProb)
}

func TestBridgeEvaluateSpawnFailure(t *testing.T) {
	b := &Bridge{
		opts: Options{Command: "fake-solver"},
		run: func(ctx context.Context, opts Options, stdin []byte) ([]byte, error) {
			return nil, fmt.Errorf("boom")
		},
	}
	_, err := b.Evaluate(context.Background(), motzkin())
	require.Error(t, err)
}

func TestBridgeEvaluateParseError(t *testing.T) {
	b := &Bridge{
		opts: Options{Command: "fake-solver"},
		run: func(ctx context.Context, opts Options, stdin []byte) ([]byte, error) {
			return []byte("not a number"), nil
		},
	}
	_, err := b.Evaluate(context.Background(), motzkin())
	require.Error(t, err)
	assert.True(t, ErrTunerParseError.Is(err))
}

func TestBridgeEvaluateRejectsNonPositiveRho(t *testing.T) {
	b := &Bridge{
		opts: Options{Command: "fake-solver"},
		run:  fakeSolverRunner(0.0, nil, []float64{0.5}),
	}
	_, err := b.Evaluate(context.Background(), motzkin())
	require.Error(t, err)
	assert.True(t, ErrTunerRejected.Is(err))
}

func TestDefaultOptionsBySolverClass(t *testing.T) {
	rational := DefaultOptions("solver", analyzer.Rational)
	assert.Equal(t, "interior-point", rational.Solver)
	assert.Equal(t, 2500, rational.MaxIter)

	algebraic := DefaultOptions("solver", analyzer.Algebraic)
	assert.Equal(t, "conic", algebraic.Solver)
	assert.Equal(t, 20, algebraic.MaxIter)
}

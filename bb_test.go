package bb

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltzmannbrain/bb/config"
	"github.com/boltzmannbrain/bb/model"
)

const motzkinGrammar = `module: motzkin
M = Leaf | Unary M @1 | Binary M M @1
`

func TestCompileMotzkinProducesGoSource(t *testing.T) {
	c := New(config.Default())
	defer c.Close()

	src, err := c.Compile(context.Background(), strings.NewReader(motzkinGrammar))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package motzkin")
	assert.Contains(t, string(src), "func SampleM(")
}

func TestCompileIsCachedOnSecondRun(t *testing.T) {
	c := New(config.Default())
	defer c.Close()

	first, err := c.Compile(context.Background(), strings.NewReader(motzkinGrammar))
	require.NoError(t, err)

	second, err := c.Compile(context.Background(), strings.NewReader(motzkinGrammar))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileFrequencyWithoutTunerFails(t *testing.T) {
	c := New(config.Default())
	defer c.Close()

	src := `M = Leaf | Unary M @1/2 | Binary M M @1
`
	_, err := c.Compile(context.Background(), strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, model.ErrFrequencyRequiresTuner.Is(err))
}

func TestCompileInvalidGrammarFails(t *testing.T) {
	c := New(config.Default())
	defer c.Close()

	_, err := c.Compile(context.Background(), strings.NewReader("not a grammar ==="))
	require.Error(t, err)
}

func TestNewNilConfigUsesDefault(t *testing.T) {
	c := New(nil)
	defer c.Close()
	assert.NotNil(t, c.cfg)
	assert.Equal(t, config.Default().EpsRho, c.cfg.EpsRho)
}

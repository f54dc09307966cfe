package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHelpExitsZero(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--help"}))
}

func TestRunVersionExitsZero(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--version"}))
}

func TestRunNoArgsExitsOne(t *testing.T) {
	assert.Equal(t, 1, run(nil))
}

func TestRunMissingFileExitsOne(t *testing.T) {
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "does-not-exist.bb")}))
}

func TestRunCompilesGrammarFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "motzkin.bb")
	require.NoError(t, os.WriteFile(path, []byte("M = Leaf | Unary M @1 | Binary M M @1\n"), 0o644))

	assert.Equal(t, 0, run([]string{"-m", "motzkin", path}))
}

func TestRunNoAtomsSystemExitsOne(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bb")
	require.NoError(t, os.WriteFile(path, []byte("M = Unary M @1\n"), 0o644))

	assert.Equal(t, 1, run([]string{path}))
}

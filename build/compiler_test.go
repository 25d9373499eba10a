package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysc/report"
)

func TestCompilerAnalyze(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.sysc"), []byte(
		"import util\nvar total = util.base\nwhile total < 10\n  total += util.step()\nend\n",
	), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.sysc"), []byte(
		"var base = 1\nfunc step\n  2\nend\n",
	), 0o644))

	c := NewCompiler(filepath.Join(dir, "main"))
	require.True(t, c.Analyze())

	prog := c.Program()
	require.NotNil(t, prog)
	assert.Len(t, prog.Files, 2)
	assert.Len(t, prog.Functions, 1)
	assert.Len(t, c.Reader().Files, 2)
}

func TestCompilerAnalyzeStopsOnParseErrors(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.sysc"), []byte(
		"while x\n  y\n",
	), 0o644))

	c := NewCompiler(filepath.Join(dir, "main"))
	assert.False(t, c.Analyze())

	// Name resolution never ran over the broken parse.
	assert.Nil(t, c.Program())
}

func TestCompilerAnalyzeMissingRoot(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	c := NewCompiler(filepath.Join(t.TempDir(), "main"))
	assert.False(t, c.Analyze())
	assert.Positive(t, report.ErrorCount())
}

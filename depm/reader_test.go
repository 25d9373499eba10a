package depm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysc/ast"
	"sysc/report"
)

// writeFiles writes each named source file into dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
}

func readRoot(t *testing.T, dir string, files map[string]string) (*Reader, int) {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)
	writeFiles(t, dir, files)

	r := NewReader()
	rootIndex, err := r.ReadRoot(filepath.Join(dir, "main"))
	require.NoError(t, err)
	return r, rootIndex
}

// -----------------------------------------------------------------------------

func TestReadSingleFile(t *testing.T) {
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "var x\nx = 1\n",
	})

	require.Len(t, r.Files, 1)
	assert.True(t, r.Files[rootIndex].Parsed)
	assert.Len(t, r.Files[rootIndex].Stmts, 2)
	assert.True(t, report.ShouldProceed())
}

func TestDiamondImportParsedOnce(t *testing.T) {
	// Both b and c import d; d must occupy a single file-table slot that both
	// item tables agree on.
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import b\nimport c\n",
		"b.sysc":    "import d\n",
		"c.sysc":    "import d\n",
		"d.sysc":    "func helper\nend\n",
	})

	require.Len(t, r.Files, 4)
	assert.True(t, report.ShouldProceed())

	root := r.Files[rootIndex]
	b := r.Files[root.Items["b"].FileIndex]
	c := r.Files[root.Items["c"].FileIndex]

	assert.Equal(t, b.Items["d"].FileIndex, c.Items["d"].FileIndex)
}

func TestImportsAreDepthFirst(t *testing.T) {
	// Files complete in dependency order: the deepest import finishes first
	// and the root finishes last.
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import mid\n",
		"mid.sysc":  "import leaf\n",
		"leaf.sysc": "var x\n",
	})

	require.Len(t, r.Files, 3)
	assert.Equal(t, 2, rootIndex)

	mid := r.Files[r.Files[rootIndex].Items["mid"].FileIndex]
	assert.Equal(t, 0, mid.Items["leaf"].FileIndex)
}

func TestCircularImport(t *testing.T) {
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import other\n",
		"other.sysc": "import main\n",
	})

	// The cycle is an error in `other`, where the back edge occurs; main
	// itself parses fine.
	assert.False(t, report.ShouldProceed())
	require.Len(t, r.Files, 2)
	assert.False(t, r.Files[0].Parsed)
	assert.True(t, r.Files[rootIndex].Parsed)
}

func TestSelfImport(t *testing.T) {
	_, _ = readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import main\n",
	})

	assert.False(t, report.ShouldProceed())
}

func TestMissingImportIsRecoverable(t *testing.T) {
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import nowhere\n",
	})

	assert.False(t, report.ShouldProceed())

	// The failed file still occupies its table slot.
	require.Len(t, r.Files, 1)
	assert.False(t, r.Files[rootIndex].Parsed)
}

func TestExplicitImportPath(t *testing.T) {
	r, rootIndex := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc":     "import util(\"lib/util\")\n",
		"lib/util.sysc": "func helper\nend\n",
	})

	require.Len(t, r.Files, 2)
	assert.True(t, report.ShouldProceed())

	util := r.Files[r.Files[rootIndex].Items["util"].FileIndex]
	assert.Equal(t, ast.ItemFunction, util.Items["helper"].Kind)
}

func TestFunctionDefinitionTableIsGlobal(t *testing.T) {
	r, _ := readRoot(t, t.TempDir(), map[string]string{
		"main.sysc": "import util\nfunc local\nend\n",
		"util.sysc": "func helper\nend\nfunc helper(x)\n  x\nend\n",
	})

	// util's two overloads parse first, then main's definition.
	require.Len(t, r.FunctionDefs, 3)
	assert.True(t, report.ShouldProceed())
}

func TestReadRootMissingFile(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	r := NewReader()
	_, err := r.ReadRoot(filepath.Join(t.TempDir(), "main"))
	assert.Error(t, err)
}

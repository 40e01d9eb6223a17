package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/graphbench/graphbench-go/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const nodesCSV = "id,label,properties\n" +
	"1,protein,\"{\"\"mass\"\": 10}\"\n" +
	"2,protein,{}\n"

const edgesCSV = "id,source,target,label,properties\n" +
	"e1,1,2,interacts,{}\n"

func TestReadAllNodes(t *testing.T) {
	path := writeFile(t, "nodes.csv", nodesCSV)

	rows, err := ReadAllNodes(path, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "protein", rows[0].Label)
	assert.Equal(t, `{"mass": 10}`, rows[0].Properties)
	assert.Equal(t, 2, rows[0].Line)

	assert.Equal(t, "2", rows[1].ID)
	assert.Equal(t, "{}", rows[1].Properties)
}

func TestReadAllEdges(t *testing.T) {
	path := writeFile(t, "edges.csv", edgesCSV)

	rows, err := ReadAllEdges(path, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "e1", rows[0].ID)
	assert.Equal(t, "1", rows[0].Source)
	assert.Equal(t, "2", rows[0].Target)
	assert.Equal(t, "interacts", rows[0].Label)
}

func TestHeaderSkip(t *testing.T) {
	// Without the header flag the first line is data.
	path := writeFile(t, "nodes.csv", "1,protein,{}\n2,gene,{}\n")

	rows, err := ReadAllNodes(path, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, 1, rows[0].Line)
}

func TestLineNumbersWithMultilineCells(t *testing.T) {
	// A quoted properties cell may contain newlines; Line must report the
	// physical line where each record starts.
	path := writeFile(t, "nodes.csv", "id,label,properties\n"+
		"1,protein,\"{\"\"note\"\": \"\"a\nb\"\"}\"\n"+
		"2,gene,{}\n")

	rows, err := ReadAllNodes(path, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)
}

func TestMissingFile(t *testing.T) {
	_, err := ReadAllNodes(filepath.Join(t.TempDir(), "absent.csv"), true)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeFileAccess))
}

func TestFieldCountMismatch(t *testing.T) {
	path := writeFile(t, "nodes.csv", "id,label,properties\n1,protein\n")

	_, err := ReadAllNodes(path, true)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedRow))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 2, appErr.Context["line"])
}

func TestEdgeRowsPassThroughDuplicates(t *testing.T) {
	path := writeFile(t, "edges.csv", "id,source,target,label,properties\n"+
		"e1,1,2,interacts,{}\n"+
		"e2,1,2,interacts,\"{\"\"w\"\": 2}\"\n")

	rows, err := ReadAllEdges(path, true)
	require.NoError(t, err)
	// no dedup at this stage
	require.Len(t, rows, 2)
}

func TestScannerCloseEarly(t *testing.T) {
	path := writeFile(t, "nodes.csv", nodesCSV)

	sc, err := OpenNodes(path, true)
	require.NoError(t, err)
	require.True(t, sc.Next())

	// Abandon mid-iteration; Close must release the handle and further
	// Next calls must report exhaustion.
	require.NoError(t, sc.Close())
	assert.False(t, sc.Next())
	assert.NoError(t, sc.Err())
	assert.NoError(t, sc.Close())
}

func TestCheckFiles(t *testing.T) {
	nodes := writeFile(t, "nodes.csv", nodesCSV)

	assert.NoError(t, CheckFiles(nodes))

	err := CheckFiles(nodes, filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeFileAccess))
}

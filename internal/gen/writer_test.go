package gen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adapter-generator/internal/gen"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "adapters")

	files := []gen.GeneratedFile{
		{Filename: "a_gen.go", Content: []byte("package adapters\n")},
		{Filename: "b_gen.go", Content: []byte("package adapters\n\nvar _ = 1\n")},
	}
	require.NoError(t, gen.WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "b_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, files[1].Content, got)

	info, err := os.Stat(filepath.Join(dir, "a_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	files[0].Content = []byte("package adapters // v2\n")
	require.NoError(t, gen.WriteFiles(files[:1], dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files are left behind")
}

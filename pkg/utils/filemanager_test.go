package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "input_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("B;FR;CUS1|"), 0644))
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)
	touch(t, filepath.Join(fm.InputDir, "orders.dat"))
	touch(t, filepath.Join(fm.InputDir, "materials.txt"))
	touch(t, filepath.Join(fm.InputDir, "notes.md"))
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "nested.dat"), 0755))

	files, err := fm.DiscoverInputFiles("")

	require.NoError(t, err)
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.Equal(t, []string{"materials.txt", "orders.dat"}, names)
}

func TestDiscoverWithPattern(t *testing.T) {
	fm := newTestManager(t)
	touch(t, filepath.Join(fm.InputDir, "orders_jan.dat"))
	touch(t, filepath.Join(fm.InputDir, "materials_jan.dat"))

	files, err := fm.DiscoverInputFiles("orders_*.dat")

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "orders_jan.dat", filepath.Base(files[0]))
}

func TestArchiveInputFileMoves(t *testing.T) {
	fm := newTestManager(t)
	source := filepath.Join(fm.InputDir, "orders.dat")
	touch(t, source)

	archived, err := fm.ArchiveInputFile(source)

	require.NoError(t, err)
	assert.False(t, FileExists(source))
	assert.True(t, FileExists(archived))
	assert.Equal(t, fm.InputArchiveDir, filepath.Dir(archived))
}

func TestArchiveDisabled(t *testing.T) {
	fm := newTestManager(t)
	fm.ArchiveOnSuccess = false
	source := filepath.Join(fm.InputDir, "orders.dat")
	touch(t, source)

	archived, err := fm.ArchiveInputFile(source)

	require.NoError(t, err)
	assert.Equal(t, source, archived)
	assert.True(t, FileExists(source))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{module}_{timestamp}_{uuid}", map[string]string{
		"module": "materials",
	})

	pattern := regexp.MustCompile(`^materials_\d{8}_\d{6}_[0-9a-f-]{36}$`)
	assert.Regexp(t, pattern, name)
}

func TestGenerateOutputFileNameIsUnique(t *testing.T) {
	format := "{module}_{uuid}"
	params := map[string]string{"module": "orders"}

	assert.NotEqual(t,
		GenerateOutputFileName(format, params),
		GenerateOutputFileName(format, params),
	)
}

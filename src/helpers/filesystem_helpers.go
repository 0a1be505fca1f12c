package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempFile creates a temporary file in the test's temporary directory,
// and automatically removes it when the test is done.
func CreateTempFile(t testing.TB, fileName string) *os.File {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), fileName)
	require.NoError(t, err)

	t.Cleanup(func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	})

	return tmpFile
}

// CreateTempFileWithContents creates a temporary file in the test's temporary
// directory, writes the given content to it, and returns its path. The file
// is removed when the test is done.
func CreateTempFileWithContents(t testing.TB, content string) string {
	t.Helper()

	tmpFile := CreateTempFile(t, "propositions-test-*")

	_, err := tmpFile.WriteString(content)
	require.NoError(t, err)

	err = tmpFile.Close()
	require.NoError(t, err)

	return tmpFile.Name()
}

// CreateFormulaFile writes one formula per line to a file called name in a
// fresh temporary directory and returns its path.
func CreateFormulaFile(t testing.TB, name string, formulas ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(formulas, "\n") + "\n"
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	return path
}

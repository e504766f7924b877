package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(small, []byte(`{}`), 0o600))

	assert.NoError(t, ValidateInputFile(small, 1024))
	assert.NoError(t, ValidateInputFile(small, 0))
	assert.ErrorContains(t, ValidateInputFile(small, 1), "larger than the 1 B limit")
	assert.ErrorContains(t, ValidateInputFile("", 0), "filename cannot be empty")
	assert.ErrorContains(t, ValidateInputFile(filepath.Join(dir, "missing.json"), 0), "file does not exist")
	assert.ErrorContains(t, ValidateInputFile(dir, 0), "path is a directory")
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "out.html")
	require.NoError(t, EnsureParentDir(target))
	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParentDir("out.html"))
}

func TestIsJSONFile(t *testing.T) {
	assert.True(t, IsJSONFile("resume.json"))
	assert.True(t, IsJSONFile("RESUME.JSON"))
	assert.False(t, IsJSONFile("resume.txt"))
	assert.False(t, IsJSONFile("resume"))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size))
	}
}

package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mentor_prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Question: {question}"), 0o644))

	body, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Question: {question}", body)
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

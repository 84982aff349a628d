package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/locov/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectFileAdapter_Load_MissingFile(t *testing.T) {
	adapter := NewLocalObjectFileAdapter()

	path := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := adapter.Load(m.Path(path))

	require.Error(t, err)
	assert.Contains(t, err.Error(), path, "input errors carry the file name")
}

func TestLocalObjectFileAdapter_Load_UnrecognizedFormat(t *testing.T) {
	adapter := NewLocalObjectFileAdapter()

	path := filepath.Join(t.TempDir(), "not-a-binary")
	require.NoError(t, os.WriteFile(path, []byte("just some text, no object file here"), 0o600))

	_, err := adapter.Load(m.Path(path))

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "unrecognized object file format")
}

func TestLocalObjectFileAdapter_Load_EmptyFile(t *testing.T) {
	adapter := NewLocalObjectFileAdapter()

	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := adapter.Load(m.Path(path))
	assert.Error(t, err)
}

package workspace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := New(nil)
	require.NoError(t, err)

	assert.NotEmpty(t, ws.ID())
	assert.DirExists(t, ws.Dir())

	require.NoError(t, ws.Stage("original.wav", []byte("RIFF....WAVE")))
	assert.FileExists(t, ws.Path("original.wav"))

	data, err := os.ReadFile(ws.Path("original.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF....WAVE", string(data))

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir())
}

func TestWorkspaceCloseIsRepeatable(t *testing.T) {
	ws, err := New(nil)
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	assert.NoError(t, ws.Close())
}

func TestWorkspacesAreDistinct(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	defer a.Close()

	b, err := New(nil)
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.Dir(), b.Dir())
}

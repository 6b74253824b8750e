package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath_UniqueAndContained(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	a := s.NewPath("poster.png")
	b := s.NewPath("poster.png")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-poster.png"))
	assert.True(t, s.owns(a))
}

func TestNewPath_StripsDirectories(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../../etc/passwd", `..\..\boot.ini`, "/abs/path/x.jpg", ""} {
		p := s.NewPath(name)
		assert.True(t, s.owns(p), "path %q escaped the store", p)
	}

	assert.True(t, strings.HasSuffix(s.NewPath(""), "-upload"))
}

func TestRemove(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	p := s.NewPath("a.txt")
	require.NoError(t, os.WriteFile(filepath.FromSlash(p), []byte("x"), 0o644))

	require.NoError(t, s.Remove(p))
	_, err = os.Stat(filepath.FromSlash(p))
	assert.True(t, os.IsNotExist(err))

	// already gone and foreign paths are both no-ops
	require.NoError(t, s.Remove(p))
	require.NoError(t, s.Remove("/tmp/not-ours.txt"))
}

func TestNewDiskStore_RequiresDir(t *testing.T) {
	_, err := NewDiskStore("")
	assert.Error(t, err)
}

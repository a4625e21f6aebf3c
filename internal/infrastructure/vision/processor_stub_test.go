//go:build !gocv
// +build !gocv

package vision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageProcessor_LoadReturnsFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pump.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))

	p := NewImageProcessor(0, "")
	require.Equal(t, DefaultMaxSide, p.MaxSide)

	data, err := p.Load(path)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), data)
}

func TestImageProcessor_LoadMissingFile(t *testing.T) {
	_, err := NewImageProcessor(512, "").Load(filepath.Join(t.TempDir(), "nope.jpg"))
	require.ErrorContains(t, err, "read image")
}

func TestImageProcessor_AnnotateWithoutGoCV(t *testing.T) {
	_, err := NewImageProcessor(512, t.TempDir()).Annotate(nil, "a.jpg", nil)
	require.Error(t, err)
}

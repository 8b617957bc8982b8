package output_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"crudgen/internal/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	t.Run("should default to OUTPUT", func(t *testing.T) {
		assert.Equal(t, output.DefaultRoot, output.NewLocalStore("  ").Root())
	})

	t.Run("should create directories idempotently", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		require.NoError(t, s.MkdirAll(output.AppDir("blog")))
		require.NoError(t, s.MkdirAll(output.AppDir("blog")))

		st, err := os.Stat(filepath.Join(s.Root(), "APP_Files", "blog"))
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("should write and report the artifact", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		require.NoError(t, s.MkdirAll(output.BuildDir))

		art, err := s.WriteFile(filepath.Join(output.BuildDir, output.BuildFile), "hello\n")
		require.NoError(t, err)

		sum := sha256.Sum256([]byte("hello\n"))
		assert.Equal(t, output.Artifact{
			Path:   "building_app/build.txt",
			Size:   6,
			SHA256: hex.EncodeToString(sum[:]),
		}, art)

		b, err := os.ReadFile(filepath.Join(s.Root(), "building_app", "build.txt"))
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(b))
	})

	t.Run("should overwrite existing files completely", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		_, err := s.WriteFile("f.txt", "a much longer first version\n")
		require.NoError(t, err)
		_, err = s.WriteFile("f.txt", "short\n")
		require.NoError(t, err)

		b, err := os.ReadFile(filepath.Join(s.Root(), "f.txt"))
		require.NoError(t, err)
		assert.Equal(t, "short\n", string(b))
	})

	t.Run("should fail when the parent directory is missing", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		_, err := s.WriteFile("APP_Files/blog/models.py", "x")
		assert.Error(t, err)
	})

	t.Run("should fail when a file blocks a directory", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		_, err := s.WriteFile(output.BuildDir, "not a dir")
		require.NoError(t, err)
		assert.Error(t, s.MkdirAll(output.BuildDir))
	})

	t.Run("should refuse paths outside the root", func(t *testing.T) {
		s := output.NewLocalStore(t.TempDir())
		assert.Error(t, s.MkdirAll("../escape"))
		_, err := s.WriteFile("../escape.txt", "x")
		assert.Error(t, err)
	})
}

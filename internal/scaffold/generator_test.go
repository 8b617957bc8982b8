package scaffold_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crudgen/internal/django"
	"crudgen/internal/dsl"
	"crudgen/internal/output"
	"crudgen/internal/scaffold"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blogRequest = dsl.Request{
	ProjectName: "mysite",
	AppName:     "blog",
	EntityName:  "Post",
	FieldSpec:   "title:text,published_date:date,views:integer",
}

func newGenerator(t *testing.T, root string, now time.Time) *scaffold.Generator {
	t.Helper()
	return &scaffold.Generator{
		Store:  output.NewLocalStore(root),
		Mapper: django.NewMapper(nil),
		Now:    func() time.Time { return now },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func readAll(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		out[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestGeneratorRun(t *testing.T) {
	day := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	t.Run("should write the five artifacts in order", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "OUTPUT")
		res, err := newGenerator(t, root, day).Run(context.Background(), blogRequest)
		require.NoError(t, err)

		paths := make([]string, 0, len(res.Artifacts))
		for _, a := range res.Artifacts {
			paths = append(paths, a.Path)
		}
		assert.Equal(t, []string{
			"building_app/build.txt",
			"APP_Files/blog/models.py",
			"APP_Files/blog/forms.py",
			"APP_Files/blog/views.py",
			"APP_Files/blog/urls.py",
		}, paths)
		assert.NotEmpty(t, res.RequestID)
		assert.Equal(t, root, res.Root)

		files := readAll(t, root)
		require.Len(t, files, 5)
		assert.Equal(t, django.BuildScript("mysite", "blog", day), files["building_app/build.txt"])
		assert.Equal(t, django.Forms("Post"), files["APP_Files/blog/forms.py"])
		assert.Equal(t, django.Views("blog", "Post", django.ViewOptions{}), files["APP_Files/blog/views.py"])
		assert.Equal(t, django.URLs("blog", "Post"), files["APP_Files/blog/urls.py"])
		assert.Contains(t, files["APP_Files/blog/models.py"], "    views = models.IntegerField(blank=True, null=True)\n")
	})

	t.Run("should produce identical files on the same day", func(t *testing.T) {
		root := t.TempDir()
		g := newGenerator(t, root, day)
		_, err := g.Run(context.Background(), blogRequest)
		require.NoError(t, err)
		first := readAll(t, root)

		g.Now = func() time.Time { return day.Add(13 * time.Hour) }
		_, err = g.Run(context.Background(), blogRequest)
		require.NoError(t, err)
		assert.Equal(t, first, readAll(t, root))
	})

	t.Run("should only change build.txt across days", func(t *testing.T) {
		root := t.TempDir()
		g := newGenerator(t, root, day)
		_, err := g.Run(context.Background(), blogRequest)
		require.NoError(t, err)
		first := readAll(t, root)

		g.Now = func() time.Time { return day.AddDate(0, 0, 1) }
		_, err = g.Run(context.Background(), blogRequest)
		require.NoError(t, err)
		second := readAll(t, root)

		for name, body := range first {
			if name == "building_app/build.txt" {
				assert.NotEqual(t, body, second[name])
				continue
			}
			assert.Equal(t, body, second[name], name)
		}
	})

	t.Run("should stop at models.py for a malformed spec", func(t *testing.T) {
		root := t.TempDir()
		req := blogRequest
		req.FieldSpec = "title-text"

		res, err := newGenerator(t, root, day).Run(context.Background(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, dsl.ErrMalformedField)
		require.Len(t, res.Artifacts, 1)

		files := readAll(t, root)
		assert.Equal(t, []string{"building_app/build.txt"}, keys(files))
		st, err := os.Stat(filepath.Join(root, "APP_Files", "blog"))
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("should write an empty model for an empty spec", func(t *testing.T) {
		root := t.TempDir()
		req := blogRequest
		req.FieldSpec = ""

		_, err := newGenerator(t, root, day).Run(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "from django.db import models\n\nclass Post(models.Model):\n",
			readAll(t, root)["APP_Files/blog/models.py"])
	})

	t.Run("should apply view options", func(t *testing.T) {
		root := t.TempDir()
		g := newGenerator(t, root, day)
		g.Views = django.ViewOptions{FixSaveCall: true}

		_, err := g.Run(context.Background(), blogRequest)
		require.NoError(t, err)
		assert.Contains(t, readAll(t, root)["APP_Files/blog/views.py"], "post.save()")
	})

	t.Run("should reuse the request id from the context", func(t *testing.T) {
		ctx := scaffold.WithRequestID(context.Background(), "req-1")
		res, err := newGenerator(t, t.TempDir(), day).Run(ctx, blogRequest)
		require.NoError(t, err)
		assert.Equal(t, "req-1", res.RequestID)
	})

	t.Run("should not start when the context is canceled", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "OUTPUT")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newGenerator(t, root, day).Run(ctx, blogRequest)
		assert.ErrorIs(t, err, scaffold.ErrCanceled)
		_, statErr := os.Stat(root)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should propagate filesystem failures without cleanup", func(t *testing.T) {
		store := &failingStore{LocalStore: output.NewLocalStore(t.TempDir()), failOn: "APP_Files/blog/views.py"}
		g := newGenerator(t, "", day)
		g.Store = store

		res, err := g.Run(context.Background(), blogRequest)
		require.Error(t, err)
		assert.ErrorIs(t, err, errDiskFull)
		assert.Len(t, res.Artifacts, 3)
		assert.Len(t, readAll(t, store.Root()), 3)
	})
}

var errDiskFull = errors.New("disk full")

type failingStore struct {
	*output.LocalStore
	failOn string
}

func (s *failingStore) WriteFile(rel, content string) (output.Artifact, error) {
	if rel == s.failOn {
		return output.Artifact{}, errDiskFull
	}
	return s.LocalStore.WriteFile(rel, content)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

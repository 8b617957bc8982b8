package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"crudgen/internal/django"
	"crudgen/internal/dsl"
	"crudgen/internal/output"
)

// ErrCanceled — контекст отменён между шагами
var ErrCanceled = errors.New("generation canceled")

// Result — итог одного запуска
type Result struct {
	RequestID string            `json:"request_id"`
	Root      string            `json:"root"`
	Artifacts []output.Artifact `json:"artifacts"`
}

// Generator создаёт папки и пишет пять артефактов строго по порядку.
// Отката нет: при ошибке уже созданное остаётся на диске.
type Generator struct {
	Store  output.Store
	Mapper *django.Mapper
	Now    func() time.Time // nil -> time.Now().UTC()
	Views  django.ViewOptions
	Logger *slog.Logger
}

type step struct {
	path   string
	render func() (string, error)
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Run не валидирует запрос (это dsl.Validate): кривая спецификация полей
// упадёт на шаге models.py, когда папки и build.txt уже записаны.
func (g *Generator) Run(ctx context.Context, req dsl.Request) (Result, error) {
	now := g.now()
	res := Result{
		RequestID: RequestIDFrom(ctx, now),
		Root:      g.Store.Root(),
	}
	log := g.logger().With(
		slog.String("request_id", res.RequestID),
		slog.String("app", req.AppName),
		slog.String("model", req.EntityName),
	)

	// 1) папки
	appDir := output.AppDir(req.AppName)
	for _, dir := range []string{".", output.BuildDir, appDir} {
		if err := checkCtx(ctx); err != nil {
			return res, err
		}
		if err := g.Store.MkdirAll(dir); err != nil {
			log.Error("mkdir failed", slog.String("dir", dir), slog.Any("err", err))
			return res, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	// 2) артефакты: build -> models -> forms -> views -> urls
	appFile := func(name string) string { return path.Join(output.AppFilesDir, req.AppName, name) }
	steps := []step{
		{path.Join(output.BuildDir, output.BuildFile), func() (string, error) {
			return django.BuildScript(req.ProjectName, req.AppName, now), nil
		}},
		{appFile(output.ModelsFile), func() (string, error) {
			return django.Models(req.EntityName, req.FieldSpec, g.Mapper)
		}},
		{appFile(output.FormsFile), func() (string, error) {
			return django.Forms(req.EntityName), nil
		}},
		{appFile(output.ViewsFile), func() (string, error) {
			return django.Views(req.AppName, req.EntityName, g.Views), nil
		}},
		{appFile(output.URLsFile), func() (string, error) {
			return django.URLs(req.AppName, req.EntityName), nil
		}},
	}

	for _, st := range steps {
		if err := checkCtx(ctx); err != nil {
			return res, err
		}
		content, err := st.render()
		if err != nil {
			log.Error("generate failed", slog.String("file", st.path), slog.Any("err", err))
			return res, fmt.Errorf("generate %s: %w", st.path, err)
		}
		art, err := g.Store.WriteFile(st.path, content)
		if err != nil {
			log.Error("write failed", slog.String("file", st.path), slog.Any("err", err))
			return res, fmt.Errorf("write %s: %w", st.path, err)
		}
		res.Artifacts = append(res.Artifacts, art)
		log.Debug("artifact written", slog.String("file", art.Path), slog.Int64("size", art.Size))
	}

	log.Info("scaffold generated", slog.String("root", res.Root), slog.Int("files", len(res.Artifacts)))
	return res, nil
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCanceled, err)
	}
	return nil
}

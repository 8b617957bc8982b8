package django

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// имена шаблонов = имена файлов в templates/
const (
	tmplBuild  = "build.txt.tmpl"
	tmplModels = "models.py.tmpl"
	tmplForms  = "forms.py.tmpl"
	tmplViews  = "views.py.tmpl"
	tmplURLs   = "urls.py.tmpl"
)

// Renderer держит разобранные один раз шаблоны артефактов.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает встроенные шаблоны.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("django").
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render выполняет шаблон name с данными data.
func (r *Renderer) Render(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}

var renderer = mustRenderer()

func mustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// шаблоны встроены и данные типизированы — ошибка здесь это баг шаблона
func mustRender(name string, data any) string {
	s, err := renderer.Render(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

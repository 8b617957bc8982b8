package django

import (
	"strings"
	"time"

	"crudgen/internal/dsl"
)

// DateLayout — дата в имени рабочей папки build.txt (YYYYMMDD)
const DateLayout = "20060102"

// ViewOptions управляет текстом views.py.
type ViewOptions struct {
	// FixSaveCall генерирует "<obj>.save()" вместо исторического "<obj>save()".
	// Меняет вывод генератора, поэтому по умолчанию выключен.
	FixSaveCall bool
}

type buildData struct {
	Project string
	App     string
	Date    string
}

type modelField struct {
	Name string
	Mapping
}

type modelData struct {
	Entity string
	Fields []modelField
}

type entityData struct {
	App         string
	Entity      string
	Lower       string
	FixSaveCall bool
}

func newEntityData(app, entity string) entityData {
	return entityData{App: app, Entity: entity, Lower: strings.ToLower(entity)}
}

// BuildScript — команды развёртывания проекта. Дата берётся из now,
// поэтому вывод меняется при смене календарного дня.
func BuildScript(project, app string, now time.Time) string {
	return mustRender(tmplBuild, buildData{
		Project: project,
		App:     app,
		Date:    now.Format(DateLayout),
	})
}

// Models — models.py с одной декларацией на поле, в порядке спецификации.
// Кривая спецификация полей возвращает dsl.ErrMalformedField.
func Models(entity, fieldSpec string, mapper *Mapper) (string, error) {
	fields, err := dsl.ParseFields(fieldSpec)
	if err != nil {
		return "", err
	}
	data := modelData{Entity: entity, Fields: make([]modelField, 0, len(fields))}
	for _, f := range fields {
		data.Fields = append(data.Fields, modelField{Name: f.Name, Mapping: mapper.Map(f.Type)})
	}
	return mustRender(tmplModels, data), nil
}

// Forms — ModelForm со всеми полями модели и css-классом form-control.
func Forms(entity string) string {
	return mustRender(tmplForms, newEntityData("", entity))
}

// Views — list/detail/create/update/delete.
func Views(app, entity string, opts ViewOptions) string {
	d := newEntityData(app, entity)
	d.FixSaveCall = opts.FixSaveCall
	return mustRender(tmplViews, d)
}

// URLs — пять маршрутов <lower>_list|_detail|_create|_update|_delete.
func URLs(app, entity string) string {
	return mustRender(tmplURLs, newEntityData(app, entity))
}

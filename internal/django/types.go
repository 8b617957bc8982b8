package django

import (
	"sort"
	"strings"

	"crudgen/internal/reference"
)

// Mapping — Django-тип поля и, для текстовых, max_length
type Mapping struct {
	Field     string
	MaxLength int
}

const (
	FieldChar    = "CharField"
	FieldInteger = "IntegerField"
	FieldDate    = "DateField"

	defaultMaxLength = 200
)

// DefaultMapping — для неизвестных токенов. Это не ошибка.
var DefaultMapping = Mapping{Field: FieldChar, MaxLength: defaultMaxLength}

var builtin = map[string]Mapping{
	"int":     {Field: FieldInteger},
	"integer": {Field: FieldInteger},
	"text":    {Field: FieldChar, MaxLength: defaultMaxLength},
	"date":    {Field: FieldDate},
}

// MapFieldType — встроенная таблица без каталога.
func MapFieldType(token string) string {
	return builtinMapping(token).Field
}

func builtinMapping(token string) Mapping {
	if m, ok := builtin[token]; ok {
		return m
	}
	return DefaultMapping
}

// Mapper — встроенная таблица + каталог из reference. После создания не меняется.
type Mapper struct {
	table map[string]Mapping
}

// NewMapper накладывает каталог поверх встроенных токенов (каталог выигрывает).
func NewMapper(catalog map[string]reference.TypeItem) *Mapper {
	t := make(map[string]Mapping, len(builtin)+len(catalog))
	for k, v := range builtin {
		t[k] = v
	}
	for k, it := range catalog {
		t[k] = Mapping{Field: it.Field, MaxLength: it.MaxLength}
	}
	return &Mapper{table: t}
}

// Map никогда не падает: неизвестный токен -> DefaultMapping.
func (m *Mapper) Map(token string) Mapping {
	if m == nil {
		return builtinMapping(token)
	}
	if v, ok := m.table[token]; ok {
		return v
	}
	return DefaultMapping
}

// Entry — строка таблицы для вывода (cli types)
type Entry struct {
	Token string
	Mapping
}

// Table возвращает таблицу, отсортированную по токену.
func (m *Mapper) Table() []Entry {
	src := builtin
	if m != nil {
		src = m.table
	}
	out := make([]Entry, 0, len(src))
	for k, v := range src {
		out = append(out, Entry{Token: k, Mapping: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Token, out[j].Token) < 0
	})
	return out
}

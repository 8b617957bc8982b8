package dsl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMalformedField — сегмент спецификации без ровно одного ':'
	ErrMalformedField = errors.New("malformed field")

	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

const (
	fieldSep = ","
	typeSep  = ":"
)

// ParseFields разбирает "title:text,published_date:date,views:integer".
// Пустая строка — ноль полей. Сегменты не тримятся и не дедуплицируются:
// повтор имени даст повторную декларацию в модели.
func ParseFields(spec string) ([]Field, error) {
	if spec == "" {
		return nil, nil
	}
	segments := strings.Split(spec, fieldSep)
	out := make([]Field, 0, len(segments))
	for i, seg := range segments {
		parts := strings.Split(seg, typeSep)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w #%d %q: expected name:type", ErrMalformedField, i+1, seg)
		}
		out = append(out, Field{Name: parts[0], Type: parts[1]})
	}
	return out, nil
}

// IsIdent — допустимый идентификатор Python (ASCII)
func IsIdent(s string) bool {
	return identRe.MatchString(s)
}

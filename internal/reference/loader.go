package reference

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTypeCatalog читает все *.yaml/*.yml из dir и возвращает token -> TypeItem.
// Отсутствующая папка — пустой каталог. Дубликат токена между файлами — ошибка.
func LoadTypeCatalog(dir string) (map[string]TypeItem, error) {
	result := make(map[string]TypeItem)
	if strings.TrimSpace(dir) == "" {
		return result, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, err
	}

	seenIn := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var td TypeDirectory
		if err := yaml.Unmarshal(data, &td); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for i, it := range td.Items {
			tok := strings.TrimSpace(it.Token)
			field := strings.TrimSpace(it.Field)
			if tok == "" || field == "" {
				return nil, fmt.Errorf("%s: item #%d needs both token and field", path, i+1)
			}
			if it.MaxLength < 0 {
				return nil, fmt.Errorf("%s: item %q has negative max_length", path, tok)
			}
			if prev, dup := seenIn[tok]; dup {
				return nil, fmt.Errorf("duplicate type token %q in %s (already defined in %s)", tok, path, prev)
			}
			seenIn[tok] = path
			result[tok] = TypeItem{Token: tok, Field: field, MaxLength: it.MaxLength}
		}
	}
	return result, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

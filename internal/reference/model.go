package reference

// TypeDirectory описывает один YAML-справочник типов полей
type TypeDirectory struct {
	Name  string     `yaml:"name"`
	Items []TypeItem `yaml:"items"`
}

// TypeItem — токен из спецификации полей и соответствующий ему Django-тип
type TypeItem struct {
	Token     string `yaml:"token"`
	Field     string `yaml:"field"`                // IntegerField, BooleanField, ...
	MaxLength int    `yaml:"max_length,omitempty"` // >0 — шаблон с max_length
}

package dsl

// Request — входные данные одной генерации, как пришли из формы (без trim/коэрсинга)
type Request struct {
	ProjectName string `validate:"required,pyident"`
	AppName     string `validate:"required,pyident"`
	EntityName  string `validate:"required,pyident"`
	FieldSpec   string
}

// Field описывает одно поле модели: "name:type"
type Field struct {
	Name string
	Type string // int, integer, text, date или любой другой токен
}

// Fields разбирает FieldSpec запроса.
func (r Request) Fields() ([]Field, error) {
	return ParseFields(r.FieldSpec)
}

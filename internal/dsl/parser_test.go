package dsl_test

import (
	"errors"
	"testing"

	"crudgen/internal/dsl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	t.Run("should keep input order", func(t *testing.T) {
		fields, err := dsl.ParseFields("title:text,published_date:date,views:integer")
		require.NoError(t, err)
		assert.Equal(t, []dsl.Field{
			{Name: "title", Type: "text"},
			{Name: "published_date", Type: "date"},
			{Name: "views", Type: "integer"},
		}, fields)
	})

	t.Run("should return zero fields for an empty spec", func(t *testing.T) {
		fields, err := dsl.ParseFields("")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("should fail when a segment has no separator", func(t *testing.T) {
		_, err := dsl.ParseFields("title-text")
		assert.True(t, errors.Is(err, dsl.ErrMalformedField))
	})

	t.Run("should fail when a segment has two separators", func(t *testing.T) {
		_, err := dsl.ParseFields("title:text,age:int:extra")
		require.Error(t, err)
		assert.ErrorIs(t, err, dsl.ErrMalformedField)
		assert.Contains(t, err.Error(), "#2")
	})

	t.Run("should not deduplicate or trim", func(t *testing.T) {
		fields, err := dsl.ParseFields("a:int, a:int")
		require.NoError(t, err)
		require.Len(t, fields, 2)
		assert.Equal(t, " a", fields[1].Name)
	})

	t.Run("should accept an empty type token", func(t *testing.T) {
		fields, err := dsl.ParseFields("title:")
		require.NoError(t, err)
		assert.Equal(t, []dsl.Field{{Name: "title", Type: ""}}, fields)
	})
}

func TestValidate(t *testing.T) {
	valid := dsl.Request{ProjectName: "mysite", AppName: "blog", EntityName: "Post", FieldSpec: "title:text,age:integer"}

	t.Run("should accept a well-formed request", func(t *testing.T) {
		assert.Empty(t, dsl.Validate(valid))
	})

	t.Run("should accept an empty field spec", func(t *testing.T) {
		req := valid
		req.FieldSpec = ""
		assert.Empty(t, dsl.Validate(req))
	})

	t.Run("should report every missing name", func(t *testing.T) {
		errs := dsl.Validate(dsl.Request{})
		require.Len(t, errs, 3)
		for _, e := range errs {
			assert.Equal(t, dsl.ErrRequired, e.Code)
		}
		assert.Equal(t, dsl.FormProjectName, errs[0].Field)
		assert.Equal(t, dsl.FormAppName, errs[1].Field)
		assert.Equal(t, dsl.FormEntityName, errs[2].Field)
	})

	t.Run("should reject names that are not identifiers", func(t *testing.T) {
		req := valid
		req.AppName = "my-blog"
		errs := dsl.Validate(req)
		require.Len(t, errs, 1)
		assert.Equal(t, dsl.ErrInvalidIdentifier, errs[0].Code)
		assert.Equal(t, dsl.FormAppName, errs[0].Field)
	})

	t.Run("should report a malformed field spec", func(t *testing.T) {
		req := valid
		req.FieldSpec = "title-text"
		errs := dsl.Validate(req)
		require.Len(t, errs, 1)
		assert.Equal(t, dsl.ErrMalformedSpec, errs[0].Code)
		assert.Equal(t, dsl.FormFieldSpec, errs[0].Field)
	})

	t.Run("should reject field names with spaces", func(t *testing.T) {
		req := valid
		req.FieldSpec = "title:text, age:int"
		errs := dsl.Validate(req)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, `" age"`)
	})

	t.Run("should not treat unknown type tokens as errors", func(t *testing.T) {
		req := valid
		req.FieldSpec = "mood:frobnicate"
		assert.Empty(t, dsl.Validate(req))
	})
}

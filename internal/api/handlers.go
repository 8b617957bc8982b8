package api

import (
	"net/http"

	"crudgen/internal/dsl"
	"crudgen/internal/scaffold"

	"github.com/gin-gonic/gin"
)

const indexTemplate = "index.html"

// generateForm — поля исходной html-формы. Значения берутся как есть.
type generateForm struct {
	ProjectName string `form:"project_name" json:"project_name"`
	AppName     string `form:"app_name" json:"app_name"`
	EntityName  string `form:"database_model" json:"database_model"`
	FieldSpec   string `form:"fields" json:"fields"`
}

func (f generateForm) request() dsl.Request {
	return dsl.Request{
		ProjectName: f.ProjectName,
		AppName:     f.AppName,
		EntityName:  f.EntityName,
		FieldSpec:   f.FieldSpec,
	}
}

type indexPage struct {
	Form    dsl.Request
	Types   []string
	Errors  []dsl.FieldError
	Message string
	Result  *scaffold.Result
}

func newPage(gen *scaffold.Generator, req dsl.Request) indexPage {
	table := gen.Mapper.Table()
	types := make([]string, 0, len(table))
	for _, e := range table {
		types = append(types, e.Token)
	}
	return indexPage{Form: req, Types: types}
}

func (p indexPage) json() gin.H {
	h := gin.H{}
	if len(p.Errors) > 0 {
		h["errors"] = p.Errors
	}
	if p.Message != "" {
		h["error"] = p.Message
	}
	if p.Result != nil {
		h["result"] = p.Result
	}
	if len(h) == 0 {
		h["types"] = p.Types
	}
	return h
}

// html для браузера, json — если клиент просит application/json
func respond(c *gin.Context, status int, page indexPage) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(status, page.json())
	default:
		c.HTML(status, indexTemplate, page)
	}
}

// GET /
func IndexHandler(gen *scaffold.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, newPage(gen, dsl.Request{}))
	}
}

// POST /
func GenerateHandler(gen *scaffold.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form generateForm
		if err := c.ShouldBind(&form); err != nil {
			page := newPage(gen, dsl.Request{})
			page.Message = "Invalid form submission"
			respond(c, http.StatusBadRequest, page)
			return
		}
		req := form.request()
		page := newPage(gen, req)

		// валидация — до любых операций с диском
		if errs := dsl.Validate(req); len(errs) > 0 {
			page.Errors = errs
			respond(c, http.StatusBadRequest, page)
			return
		}

		res, err := gen.Run(c.Request.Context(), req)
		if err != nil {
			// подробности уже в логе генератора
			page.Message = "Generation failed (request " + c.GetString(ctxRequestID) + ")"
			respond(c, http.StatusInternalServerError, page)
			return
		}
		page.Result = &res
		respond(c, http.StatusOK, page)
	}
}

// GET /healthz
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

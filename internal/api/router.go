// api/router.go
package api

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"crudgen/internal/scaffold"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var pageFS embed.FS

var pages = template.Must(template.ParseFS(pageFS, "templates/index.html"))

const shutdownTimeout = 10 * time.Second

func NewRouter(gen *scaffold.Generator, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))
	r.SetHTMLTemplate(pages)

	r.GET("/", IndexHandler(gen))
	r.POST("/", GenerateHandler(gen))
	r.GET("/healthz", HealthHandler())

	return r
}

// RunServer блокируется до отмены ctx или ошибки listen.
func RunServer(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(sctx)
	}
}

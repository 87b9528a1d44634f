package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// render executes a named template into the response. A render failure
// is a plain 500; view errors never carry internals to the browser.
func (a *App) render(ctx *fasthttp.RequestCtx, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetBodyString("Internal server error")
		return
	}
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

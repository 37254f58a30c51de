// Package webui serves the browser map page and the debug data dumps.
package webui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vnsites/sitemap/internal/app"
)

//go:embed static
var staticFS embed.FS

type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.indexHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.ServeFiles("/static/*filepath", http.FS(static))
}

package webui

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed index.html debug_index.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "index.html", "debug_index.html"))

type indexData struct {
	Title       string
	AccessToken string
	Style       string
	CenterLat   float64
	CenterLon   float64
	Zoom        float64
	Policy      string
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	m := webUI.Config.Map
	data := indexData{
		Title:       "Site & Route Map",
		AccessToken: m.AccessToken,
		Style:       m.Style,
		CenterLat:   m.CenterLat,
		CenterLon:   m.CenterLon,
		Zoom:        m.Zoom,
		Policy:      webUI.Config.StitchPolicy.String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

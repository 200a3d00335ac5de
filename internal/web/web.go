// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page. Pages are looked up by file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

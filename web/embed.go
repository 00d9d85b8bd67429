// Package web holds the page templates and static assets served by change-web.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assetsFS embed.FS

// TemplatesFS returns the embedded templates directory
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(assetsFS, "templates")
}

// StaticFS returns the embedded static assets directory
func StaticFS() (fs.FS, error) {
	return fs.Sub(assetsFS, "static")
}

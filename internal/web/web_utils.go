package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// renderTemplate renders templateName.html from the templates filesystem.
// Templates are parsed on every request so edits show up without a restart.
func (s *WebServer) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	file := templateName + ".html"
	tmpl, err := template.ParseFS(s.templates, file)
	if err != nil {
		s.renderError(c, fmt.Errorf("template %s: %w", file, err))
		return
	}

	// render into a buffer so a failing template still yields a clean 500
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.renderError(c, fmt.Errorf("template %s: %w", file, err))
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// renderError answers with a bare 500 and records err on the context
func (s *WebServer) renderError(c *gin.Context, err error) {
	log.Printf("[WEB]: Error rendering %s: %v", c.Request.URL.Path, err)
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}

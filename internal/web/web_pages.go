package web

import (
	"github.com/gin-gonic/gin"
)

// DefaultPageName is substituted for the name placeholder of every page
const DefaultPageName = "Change!"

// Page maps a route to the template rendered for it
type Page struct {
	Path     string
	Template string // file name without the .html extension
}

// Pages is the fixed route table; "/" renders the planning page
var Pages = []Page{
	{Path: "/", Template: "Planning"},
	{Path: "/Planning", Template: "Planning"},
	{Path: "/Settings", Template: "Settings"},
	{Path: "/tests", Template: "tests"},
}

// PageData is the data every page template is executed with
type PageData struct {
	Name  string
	Title string
}

// pageHandler renders page.Template; the request itself is never read
func (s *WebServer) pageHandler(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.renderTemplate(c, page.Template, PageData{
			Name:  DefaultPageName,
			Title: page.Template,
		})
	}
}

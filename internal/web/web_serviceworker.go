package web

import (
	"github.com/change-app/change-web/internal/mimetypes"
	"github.com/gin-gonic/gin"
)

const (
	ServiceWorkerFile        = "sw.js"
	ServiceWorkerContentType = mimetypes.JavaScript
)

// serviceWorker serves sw.js from the static directory. The content type is
// set before the file server runs so it is never replaced by a guessed one.
// A missing file is answered with the file server's 404.
func (s *WebServer) serviceWorker(c *gin.Context) {
	c.Header("Content-Type", ServiceWorkerContentType)
	c.FileFromFS(ServiceWorkerFile, s.static)
}

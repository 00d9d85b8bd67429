// Package web provides the HTTP server and page handlers for change-web
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/change-app/change-web/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // Track server start time for uptime calculations

	templates fs.FS           // page templates, parsed on every request
	static    http.FileSystem // static assets, directories hidden

	mux        sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new web server instance serving templates and static
// assets from disk, or from the binary when webconfig.Embedded is set
func NewServer(webconfig *config.WebConfig) (*WebServer, error) {
	templates, static, err := assetFileSystems(webconfig)
	if err != nil {
		return nil, err
	}
	return NewServerFS(webconfig, templates, static)
}

// NewServerFS creates a web server instance on top of the given template and
// static asset filesystems
func NewServerFS(webconfig *config.WebConfig, templates, static fs.FS) (*WebServer, error) {
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		// Set Gin to release mode for production
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// known path with the wrong method answers 405 instead of 404
	router.HandleMethodNotAllowed = true

	// Configure Gin to trust reverse proxy headers
	if err := router.SetTrustedProxies(webconfig.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies %v: %w", webconfig.TrustedProxies, err)
	}

	server := &WebServer{
		Router:    router,
		Config:    webconfig,
		templates: templates,
		static:    assetFileSystem{http.FS(static)},
	}

	if webconfig.AccessLog {
		router.Use(server.ApacheLogFormat())
	}
	router.Use(gin.Recovery())

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	// Apply security middleware
	router.Use(secure.New(secureConfig))

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	// Pages
	for _, page := range Pages {
		handler := s.pageHandler(page)
		s.Router.GET(page.Path, handler)
		s.Router.HEAD(page.Path, handler)
	}

	// Service worker must live at the root so its scope covers every page
	s.Router.GET("/"+ServiceWorkerFile, s.serviceWorker)
	s.Router.HEAD("/"+ServiceWorkerFile, s.serviceWorker)

	// Static files
	s.Router.StaticFS("/static", s.static)
}

// Addr returns the listen address built from the config
func (s *WebServer) Addr() string {
	return net.JoinHostPort(s.Config.ListenAddr, strconv.Itoa(s.Config.ListenPort))
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops and returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Start() error {
	addr := s.Addr()

	s.mux.Lock()
	if s.httpServer != nil {
		s.mux.Unlock()
		return errors.New("web server already started")
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}
	s.httpServer = srv
	s.StartTime = time.Now() // Set the start time for uptime calculations
	s.mux.Unlock()

	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		log.Printf("[WEB]: Starting HTTPS server on %s", addr)
		return srv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", addr)
	return srv.ListenAndServe()
}

// Shutdown gracefully stops a running server; in-flight requests finish first
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv := s.httpServer
	s.mux.Unlock()
	if srv == nil {
		return nil
	}
	log.Printf("[WEB]: Shutting down web server (uptime %s)", time.Since(s.StartTime).Round(time.Second))
	return srv.Shutdown(ctx)
}

// ApacheLogFormat logs every request in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}

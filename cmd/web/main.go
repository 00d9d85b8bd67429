// Web server for the Change! budgeting app
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/change-app/change-web/internal/config"
	"github.com/change-app/change-web/internal/mimetypes"
	"github.com/change-app/change-web/internal/web"
	prof "github.com/go-while/go-cpu-mem-profiler"
)

var (
	// command-line flags
	configPath  string
	webaddr     string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	templates   string
	static      string
	embedded    bool
	pprofAddr   string
)

var appVersion = "-unset-"

var Prof *prof.Profiler

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configPath, "config", "", "JSON config file; created with defaults if missing (default: none, built-in defaults)")
	flag.StringVar(&webaddr, "webaddr", "", "Web server listen address (default: 0.0.0.0)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 5000)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&templates, "templates", "", "Templates directory (default: web/templates)")
	flag.StringVar(&static, "static", "", "Static assets directory (default: web/static)")
	flag.BoolVar(&embedded, "embedded", false, "Serve templates and static assets compiled into the binary")
	flag.StringVar(&pprofAddr, "pprof", "", "Start the pprof web profiler on this address, e.g. 127.0.0.1:51111 (default: off)")
	flag.Parse()

	log.Printf("Starting change-web (version: %s)", appVersion)

	// Must happen before anything is served
	if err := mimetypes.Register(); err != nil {
		log.Fatalf("[WEB]: Failed to register MIME types: %v", err)
	}

	mainConfig := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("[WEB]: Failed to load config: %v", err)
		}
		mainConfig = loaded
	}
	webConfig := mainConfig.Web

	applyFlagOverrides(webConfig)

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid web configuration: %v", err)
	}
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if webConfig.PprofAddr != "" {
		Prof = prof.NewProf()
		go Prof.PprofWeb(webConfig.PprofAddr)
		log.Printf("[WEB]: pprof web profiler listening on %s", webConfig.PprofAddr)
	}

	server, err := web.NewServer(webConfig)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started. Press Ctrl+C to gracefully shutdown...")

	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
	}
	log.Printf("[WEB]: Graceful shutdown completed")
} // end main

// applyFlagOverrides copies every command-line flag that was set onto webConfig
func applyFlagOverrides(webConfig *config.WebConfig) {
	// Override config with command-line flags if provided
	if webaddr != "" {
		webConfig.ListenAddr = webaddr
		log.Printf("[WEB]: Overriding listen address with command-line flag: %s", webConfig.ListenAddr)
	}
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
		log.Printf("[WEB]: SSL cert file set: %s", webConfig.CertFile)
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL key file set: %s", webConfig.KeyFile)
	}
	if templates != "" {
		webConfig.TemplatesDir = templates
	}
	if static != "" {
		webConfig.StaticDir = static
	}
	if embedded {
		webConfig.Embedded = true
	}
	if pprofAddr != "" {
		webConfig.PprofAddr = pprofAddr
	}
}

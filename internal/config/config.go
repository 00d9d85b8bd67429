// Package config provides configuration management for change-web.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default listener, matches the legacy deployment (all interfaces, port 5000)
	DefaultListenAddr = "0.0.0.0"
	DefaultListenPort = 5000

	// Default asset locations, relative to the working directory
	DefaultTemplatesDir = "web/templates"
	DefaultStaticDir    = "web/static"
)

// MainConfig holds the main configuration for change-web
type MainConfig struct {
	// Mutex for thread-safe access
	mux sync.Mutex

	// Web interface settings
	Web *WebConfig `json:"web"`

	AppVersion string `json:"app_version"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenAddr     string   `json:"listen_addr"`
	ListenPort     int      `json:"listen_port"`
	SSL            bool     `json:"ssl"`
	CertFile       string   `json:"cert_file,omitempty"`
	KeyFile        string   `json:"key_file,omitempty"`
	TemplatesDir   string   `json:"templates_dir"`
	StaticDir      string   `json:"static_dir"`
	Embedded       bool     `json:"embedded"` // serve templates and static assets compiled into the binary
	TrustedProxies []string `json:"trusted_proxies"`
	AccessLog      bool     `json:"access_log"`
	PprofAddr      string   `json:"pprof_addr,omitempty"` // empty disables the profiler
	Debug          bool     `json:"debug"`                // gin debug mode
}

// NewDefaultWebConfig returns the web settings used when nothing else is configured
func NewDefaultWebConfig() *WebConfig {
	return &WebConfig{
		ListenAddr:     DefaultListenAddr,
		ListenPort:     DefaultListenPort,
		TemplatesDir:   DefaultTemplatesDir,
		StaticDir:      DefaultStaticDir,
		TrustedProxies: []string{"127.0.0.1", "::1"},
		AccessLog:      true,
	}
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	maincfg := &MainConfig{
		AppVersion: AppVersion, // Set application version
		Web:        NewDefaultWebConfig(),
	}

	maincfg.mux.Lock()
	log.Printf("[CONFIG]: MainConfig initialized, web listener %s:%d", maincfg.Web.ListenAddr, maincfg.Web.ListenPort)
	maincfg.mux.Unlock()
	return maincfg
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*MainConfig, error) {
	maincfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := maincfg.Save(path); err != nil {
				// the server can still run with defaults
				log.Printf("[CONFIG]: Warning: failed to write default config file: %v", err)
			} else {
				log.Printf("[CONFIG]: Wrote default config to %s", path)
			}
			return maincfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, maincfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if maincfg.Web == nil {
		maincfg.Web = NewDefaultWebConfig()
	}
	// the running binary decides the version, not the file
	maincfg.AppVersion = AppVersion
	log.Printf("[CONFIG]: Loaded config from %s", path)
	return maincfg, nil
}

// Save writes the configuration to path, replacing any existing file atomically
func (mc *MainConfig) Save(path string) error {
	mc.mux.Lock()
	defer mc.mux.Unlock()

	data, err := json.MarshalIndent(mc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the web settings before the server is started
func (wc *WebConfig) Validate() error {
	if wc.ListenPort < 1 || wc.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", wc.ListenPort)
	}
	if wc.SSL && (wc.CertFile == "" || wc.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if !wc.Embedded {
		if wc.TemplatesDir == "" {
			return errors.New("templates_dir must be set when not serving embedded assets")
		}
		if wc.StaticDir == "" {
			return errors.New("static_dir must be set when not serving embedded assets")
		}
	}
	return nil
}

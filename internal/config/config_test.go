package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NotNil(t, cfg.Web)
	assert.Equal(t, "0.0.0.0", cfg.Web.ListenAddr)
	assert.Equal(t, 5000, cfg.Web.ListenPort)
	assert.False(t, cfg.Web.SSL)
	assert.False(t, cfg.Web.Debug)
	assert.False(t, cfg.Web.Embedded)
	assert.Equal(t, "web/templates", cfg.Web.TemplatesDir)
	assert.Equal(t, "web/static", cfg.Web.StaticDir)
	assert.Empty(t, cfg.Web.PprofAddr)
	assert.NoError(t, cfg.Web.Validate())
}

func TestLoadConfig_writes_defaults_when_missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultListenPort, cfg.Web.ListenPort)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"listen_port": 5000`)
	assert.Contains(t, string(data), `"templates_dir": "web/templates"`)
}

func TestLoadConfig_overrides_defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"web": {"listen_port": 8081, "static_dir": "/srv/static", "embedded": true}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Web.ListenPort)
	assert.Equal(t, "/srv/static", cfg.Web.StaticDir)
	assert.True(t, cfg.Web.Embedded)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultListenAddr, cfg.Web.ListenAddr)
	assert.Equal(t, DefaultTemplatesDir, cfg.Web.TemplatesDir)
	assert.True(t, cfg.Web.AccessLog)
}

func TestLoadConfig_null_web_section(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"web": null}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Web)
	assert.Equal(t, DefaultListenPort, cfg.Web.ListenPort)
}

func TestLoadConfig_invalid_json(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"web": `), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSave_roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := NewDefaultConfig()
	cfg.Web.ListenPort = 9090
	cfg.Web.TrustedProxies = []string{"10.0.0.0/8"}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, loaded.Web.ListenPort)
	assert.Equal(t, []string{"10.0.0.0/8"}, loaded.Web.TrustedProxies)
}

func TestWebConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(wc *WebConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(wc *WebConfig) {}},
		{name: "port zero", mutate: func(wc *WebConfig) { wc.ListenPort = 0 }, wantErr: true},
		{name: "port too high", mutate: func(wc *WebConfig) { wc.ListenPort = 70000 }, wantErr: true},
		{name: "ssl without cert", mutate: func(wc *WebConfig) { wc.SSL = true; wc.KeyFile = "key.pem" }, wantErr: true},
		{name: "ssl with cert and key", mutate: func(wc *WebConfig) { wc.SSL = true; wc.CertFile = "c.pem"; wc.KeyFile = "k.pem" }},
		{name: "missing templates dir", mutate: func(wc *WebConfig) { wc.TemplatesDir = "" }, wantErr: true},
		{name: "missing static dir", mutate: func(wc *WebConfig) { wc.StaticDir = "" }, wantErr: true},
		{name: "embedded ignores dirs", mutate: func(wc *WebConfig) { wc.Embedded = true; wc.TemplatesDir = ""; wc.StaticDir = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wc := NewDefaultWebConfig()
			tc.mutate(wc)
			err := wc.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package web

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/change-app/change-web/internal/config"
	assets "github.com/change-app/change-web/web"
)

// assetFileSystems picks the template and static filesystems: the copies
// compiled into the binary, or the configured directories on disk
func assetFileSystems(webconfig *config.WebConfig) (templates fs.FS, static fs.FS, err error) {
	if webconfig.Embedded {
		if templates, err = assets.TemplatesFS(); err != nil {
			return nil, nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}
		if static, err = assets.StaticFS(); err != nil {
			return nil, nil, fmt.Errorf("failed to open embedded static files: %w", err)
		}
		logAssets("embedded templates", templates)
		logAssets("embedded static", static)
		return templates, static, nil
	}

	// Missing directories are not fatal: pages answer 500 and files 404 until they appear
	for _, dir := range []string{webconfig.TemplatesDir, webconfig.StaticDir} {
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			log.Printf("[WEB]: Warning: asset directory %s not found", dir)
		}
	}
	templates = os.DirFS(webconfig.TemplatesDir)
	static = os.DirFS(webconfig.StaticDir)
	log.Printf("[WEB]: Serving templates from %s and static files from %s", webconfig.TemplatesDir, webconfig.StaticDir)
	return templates, static, nil
}

func logAssets(label string, fsys fs.FS) {
	files, err := ListFiles(fsys)
	if err != nil {
		log.Printf("[WEB]: Warning: cannot list %s files: %v", label, err)
		return
	}
	log.Printf("[WEB]: Found %d %s files", len(files), label)
}

// ListFiles returns a list of all regular files in fsys for debugging
func ListFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// assetFileSystem serves regular files only; directories look like missing
// files so no listing is ever produced
type assetFileSystem struct {
	http.FileSystem
}

func (a assetFileSystem) Open(name string) (http.File, error) {
	f, err := a.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

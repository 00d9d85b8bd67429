// Package mimetypes registers the process-wide file extension to MIME type
// associations change-web relies on.
// Windows registry entries can map .js and .css to the wrong types, so the
// associations are forced once at startup before any request is served.
package mimetypes

import (
	"fmt"
	"log"
	"mime"
	"sort"
	"sync"
)

const (
	JavaScript = "application/javascript"
	CSS        = "text/css"
)

var defaults = map[string]string{
	".js":  JavaScript,
	".css": CSS,
}

var (
	once        sync.Once
	registerErr error
)

// Register installs the default associations with the mime package.
// Only the first call does any work; later calls return its result.
func Register() error {
	once.Do(func() {
		for _, ext := range extensions() {
			if err := mime.AddExtensionType(ext, defaults[ext]); err != nil {
				registerErr = fmt.Errorf("register %s as %s: %w", ext, defaults[ext], err)
				return
			}
			log.Printf("[MIME]: %s => %s", ext, mime.TypeByExtension(ext))
		}
	})
	return registerErr
}

// Defaults returns a copy of the extension to MIME type table
func Defaults() map[string]string {
	out := make(map[string]string, len(defaults))
	for ext, typ := range defaults {
		out[ext] = typ
	}
	return out
}

func extensions() []string {
	exts := make([]string, 0, len(defaults))
	for ext := range defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Package web embeds the storefront's page templates and static assets
// so the binary ships self-contained.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var assets embed.FS

// StaticFS returns the stylesheet and other static assets.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		log.Fatalf("static assets missing from build: %v", err)
	}
	return sub
}

// TemplatesFS returns the page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		log.Fatalf("templates missing from build: %v", err)
	}
	return sub
}

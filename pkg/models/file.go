package models

import (
	"path/filepath"
	"strings"
)

// File is one named text file of a workspace.
type File struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Role is what a file contributes to the composed preview.
type Role int

const (
	RoleMarkup Role = iota
	RoleStylesheet
	RoleScript
)

// RoleOf classifies a file by the extension of its name.
func RoleOf(name string) Role {
	switch {
	case strings.HasSuffix(name, ".css"):
		return RoleStylesheet
	case strings.HasSuffix(name, ".js"):
		return RoleScript
	default:
		return RoleMarkup
	}
}

func (r Role) String() string {
	switch r {
	case RoleStylesheet:
		return "stylesheet"
	case RoleScript:
		return "script"
	default:
		return "markup"
	}
}

// MediaType returns the MIME type used when serving or minifying a file of
// this role. Markup files that are not HTML are served as plain text.
func (r Role) MediaType(name string) string {
	switch r {
	case RoleStylesheet:
		return "text/css"
	case RoleScript:
		return "application/javascript"
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "text/html"
	case ".svg":
		return "image/svg+xml"
	case ".json":
		return "application/json"
	default:
		return "text/plain"
	}
}

package source

import (
	"net/url"
	"strings"
)

// Default catalog layout.
const (
	DefaultManifest    = "scripts-catalog.json"
	DefaultScriptsPath = "library/scripts"
)

// Layout maps a catalog base URL to the manifest and script download URLs.
type Layout struct {
	BaseURL     string
	Manifest    string // file name of the manifest under BaseURL
	ScriptsPath string // directory under BaseURL holding script files
}

// ManifestURL returns <base>/<manifest>.
func (l Layout) ManifestURL() string {
	manifest := l.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	return joinURL(l.BaseURL, manifest)
}

// ScriptURL returns <base>/<scripts_path>/<name>, escaping name.
func (l Layout) ScriptURL(name string) string {
	dir := l.ScriptsPath
	if dir == "" {
		dir = DefaultScriptsPath
	}
	return joinURL(joinURL(l.BaseURL, dir), url.PathEscape(name))
}

// joinURL joins two URL fragments, dropping redundant slashes.
func joinURL(parent, child string) string {
	return strings.TrimRight(parent, "/") + "/" + strings.TrimLeft(child, "/")
}

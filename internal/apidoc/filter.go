package apidoc

import (
	"strings"

	"github.com/go-openapi/spec"
)

// KeepPath reports whether path belongs in the document for versionKey.
// v1 also keeps the unversioned legacy alias. Unknown keys keep nothing.
func KeepPath(versionKey, path string) bool {
	switch versionKey {
	case "v1":
		return strings.Contains(path, "/api/v1/") || path == PathLegacy
	case "v2":
		return strings.Contains(path, "/api/v2/")
	default:
		return false
	}
}

// Filter removes, in place, every path of doc that KeepPath rejects for versionKey.
// A nil document or path set is left alone. Filter is idempotent.
func Filter(doc *spec.Swagger, versionKey string) {
	if doc == nil || doc.Paths == nil {
		return
	}
	var drop []string
	for path := range doc.Paths.Paths {
		if !KeepPath(versionKey, path) {
			drop = append(drop, path)
		}
	}
	for _, path := range drop {
		delete(doc.Paths.Paths, path)
	}
}

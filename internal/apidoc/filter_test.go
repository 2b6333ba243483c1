package apidoc

import (
	"sort"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
)

func docWithPaths(paths ...string) *spec.Swagger {
	items := make(map[string]spec.PathItem, len(paths))
	for _, p := range paths {
		items[p] = spec.PathItem{}
	}
	return &spec.Swagger{SwaggerProps: spec.SwaggerProps{Paths: &spec.Paths{Paths: items}}}
}

func pathKeys(doc *spec.Swagger) []string {
	keys := make([]string, 0, len(doc.Paths.Paths))
	for k := range doc.Paths.Paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var mixedPaths = []string{"/api/v1/x", "/api/v2/y", "/weatherforecast", "/other"}

func TestFilter_ByVersion(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"v1", []string{"/api/v1/x", "/weatherforecast"}},
		{"v2", []string{"/api/v2/y"}},
		{"v3", []string{}},
		{"", []string{}},
		{"V1", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			doc := docWithPaths(mixedPaths...)
			Filter(doc, tt.key)
			assert.Equal(t, tt.want, pathKeys(doc))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	for _, key := range []string{"v1", "v2", "unknown"} {
		once := docWithPaths(mixedPaths...)
		Filter(once, key)
		twice := docWithPaths(mixedPaths...)
		Filter(twice, key)
		Filter(twice, key)
		assert.Equal(t, pathKeys(once), pathKeys(twice), "key %s", key)
	}
}

func TestFilter_RemovesEveryRejectedPath(t *testing.T) {
	// many adjacent rejects must all go in a single pass
	paths := []string{"/api/v1/keep"}
	for _, p := range []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g", "/h"} {
		paths = append(paths, p)
	}
	doc := docWithPaths(paths...)
	Filter(doc, "v1")
	assert.Equal(t, []string{"/api/v1/keep"}, pathKeys(doc))
}

func TestFilter_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Filter(nil, "v1")
		Filter(&spec.Swagger{}, "v1")
	})
}

func TestKeepPath(t *testing.T) {
	assert.True(t, KeepPath("v1", "/api/v1/weatherforecast"))
	assert.True(t, KeepPath("v1", "/weatherforecast"))
	assert.False(t, KeepPath("v1", "/weatherforecast/extra"))
	assert.False(t, KeepPath("v1", "/api/v2/weatherforecast"))
	assert.True(t, KeepPath("v2", "/api/v2/weatherforecast"))
	assert.False(t, KeepPath("v2", "/weatherforecast"))
	assert.True(t, KeepPath("v2", "/prefix/api/v2/anything"), "substring match, not prefix")
}

package apidoc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVersion is returned for a document key the registry does not hold.
var ErrUnknownVersion = errors.New("unknown api document version")

// Registry holds one filtered, pre-rendered document per version key.
type Registry struct {
	keys []string
	docs map[string]*document
}

type document struct {
	info Info
	doc  *spec.Swagger
	raw  []byte
}

// ReadDoc implements swag.Swagger.
func (d *document) ReadDoc() string {
	return string(d.raw)
}

// NewRegistry builds and filters one document per info, in order.
func NewRegistry(infos ...Info) (*Registry, error) {
	if len(infos) == 0 {
		return nil, errors.New("apidoc: at least one document is required")
	}
	r := &Registry{docs: make(map[string]*document, len(infos))}
	for _, info := range infos {
		if info.Key == "" {
			return nil, errors.New("apidoc: document key is required")
		}
		if _, dup := r.docs[info.Key]; dup {
			return nil, fmt.Errorf("apidoc: duplicate document key %q", info.Key)
		}
		doc := Build(info)
		Filter(doc, info.Key)
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("apidoc: render %s: %w", info.Key, err)
		}
		r.keys = append(r.keys, info.Key)
		r.docs[info.Key] = &document{info: info, doc: doc, raw: raw}
	}
	return r, nil
}

// Keys returns the document keys in declaration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Info returns the metadata for key.
func (r *Registry) Info(key string) (Info, bool) {
	d, ok := r.docs[key]
	if !ok {
		return Info{}, false
	}
	return d.info, true
}

// Document returns the filtered document for key. Callers must not mutate it.
func (r *Registry) Document(key string) (*spec.Swagger, bool) {
	d, ok := r.docs[key]
	if !ok {
		return nil, false
	}
	return d.doc, true
}

// JSON returns the rendered document for key.
func (r *Registry) JSON(key string) ([]byte, error) {
	d, ok := r.docs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, key)
	}
	return d.raw, nil
}

// YAML returns the document for key rendered as YAML with sorted keys.
func (r *Registry) YAML(key string) ([]byte, error) {
	raw, err := r.JSON(key)
	if err != nil {
		return nil, err
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("apidoc: decode %s: %w", key, err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode %s as yaml: %w", key, err)
	}
	return out, nil
}

// JSONPath returns the URL path the document for key is served on.
func JSONPath(key string) string {
	return "/swagger/" + key + "/swagger.json"
}

// Register publishes every document with swag under its key. swag panics on duplicate
// names, so keys already registered (by an earlier Registry in the same process) are skipped.
func (r *Registry) Register() {
	for _, key := range r.keys {
		if swag.GetSwagger(key) != nil {
			continue
		}
		swag.Register(key, r.docs[key])
	}
}

// Package loader reads prediction and ground-truth documents.
//
// A document maps a group name to that group's clusters. Values are left
// generic (maps, slices and scalars) so the evaluation package can detect
// each group's shape on its own.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
)

// Document is a parsed input keyed by group name.
type Document map[string]any

// Source is either a file location or an already-parsed structure.
type Source struct {
	path string
	data any
}

// FromPath returns a Source read from a JSON or YAML file.
func FromPath(path string) Source {
	return Source{path: path}
}

// FromData returns a Source backed by an in-memory structure.
func FromData(data any) Source {
	return Source{data: data}
}

// IsPath reports whether the source refers to a file.
func (s Source) IsPath() bool {
	return s.path != ""
}

// String describes the source for diagnostics.
func (s Source) String() string {
	if s.IsPath() {
		return s.path
	}
	return "<in-memory>"
}

// Load resolves a Source into a Document.
func Load(src Source) (Document, error) {
	if src.IsPath() {
		return LoadFile(src.path)
	}
	return fromValue(src.String(), src.data)
}

// LoadFile reads and decodes the file at path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ParseError(path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(path, f)
	default:
		return DecodeJSON(path, f)
	}
}

// DecodeJSON decodes a JSON document. Numbers are kept as json.Number so
// numeric identifiers survive unchanged.
func DecodeJSON(name string, r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, apperrors.ParseError(name, err)
	}
	if dec.More() {
		return nil, apperrors.ParseError(name, fmt.Errorf("trailing data after top-level value"))
	}
	return toDocument(name, v)
}

// DecodeYAML decodes a YAML document.
func DecodeYAML(name string, r io.Reader) (Document, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
		return nil, apperrors.ParseError(name, err)
	}
	return toDocument(name, normalizeYAML(v))
}

func fromValue(name string, data any) (Document, error) {
	// Every in-memory value goes through JSON, including generic maps whose
	// children may still be typed (e.g. [][]string), so documents reach the
	// evaluator with the same shape as a decoded file.
	if data == nil {
		return nil, apperrors.ParseError(name, fmt.Errorf("no data"))
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, apperrors.ParseError(name, err)
	}
	return DecodeJSON(name, bytes.NewReader(raw))
}

func toDocument(name string, v any) (Document, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, apperrors.ParseError(name, fmt.Errorf("top-level value is %T, want an object keyed by group", v))
	}
	return Document(m), nil
}

// normalizeYAML rewrites maps with non-string keys so YAML and JSON inputs
// look the same downstream.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

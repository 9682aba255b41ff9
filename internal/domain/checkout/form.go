package checkout

import (
	"maps"
	"net/url"
	"strings"
)

const extensionsKey = "extensions"

// FormData is the raw data submitted with a checkout. Fields holds top-level
// inputs (classic form); Extensions holds values the block checkout nests
// under "extensions", keyed by namespaced field id.
type FormData struct {
	Fields     map[string]string
	Extensions map[string]string
}

// NewFormData copies the given maps into a FormData
func NewFormData(fields, extensions map[string]string) FormData {
	fd := FormData{
		Fields:     maps.Clone(fields),
		Extensions: maps.Clone(extensions),
	}
	if fd.Fields == nil {
		fd.Fields = map[string]string{}
	}
	if fd.Extensions == nil {
		fd.Extensions = map[string]string{}
	}
	return fd
}

// FormDataFromValues builds FormData from an urlencoded form. Keys of the
// form extensions[<id>] are folded into Extensions; for repeated keys the
// first value wins.
func FormDataFromValues(values url.Values) FormData {
	fd := NewFormData(nil, nil)
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if id, ok := extensionID(key); ok {
			fd.Extensions[id] = vals[0]
			continue
		}
		fd.Fields[key] = vals[0]
	}
	return fd
}

func extensionID(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, extensionsKey+"[")
	if !ok || !strings.HasSuffix(rest, "]") {
		return "", false
	}
	id := strings.TrimSuffix(rest, "]")
	return id, id != ""
}

// Value returns a top-level field
func (f FormData) Value(name string) (string, bool) {
	v, ok := f.Fields[name]
	return v, ok
}

// Extension returns a nested extension value
func (f FormData) Extension(id string) (string, bool) {
	v, ok := f.Extensions[id]
	return v, ok
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// Format is a batch document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Chord is one validated batch entry. An empty Clef means auto-detect.
type Chord struct {
	Name  string     `json:"name,omitempty" yaml:"name,omitempty"`
	Notes []string   `json:"notes" yaml:"notes"`
	Clef  pitch.Clef `json:"clef,omitempty" yaml:"clef,omitempty"`
}

// Batch is a validated list of chords.
type Batch struct {
	Chords []Chord `json:"chords" yaml:"chords"`
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadBatch decodes and validates a batch document from r.
func ReadBatch(r io.Reader, format Format) (Batch, error) {
	doc, err := decode(r, format)
	if err != nil {
		return Batch{}, err
	}
	return validateBatch(doc)
}

// ImportBatch reads the batch file at path, choosing the format from its extension.
func ImportBatch(path string) (Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
		}
		return Batch{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBatch(f, FormatFromPath(path))
}

// ReadChord decodes a single chord object, as sent to the HTTP API.
func ReadChord(r io.Reader) (Chord, error) {
	doc, err := decode(r, FormatJSON)
	if err != nil {
		return Chord{}, err
	}
	return validateChord(doc, "chord")
}

func decode(r io.Reader, format Format) (any, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML")
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported batch format %q", format)
	}
	return doc, nil
}

func validateBatch(doc any) (Batch, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return Batch{}, errors.New(errors.ErrCodeInvalidInput, "batch must be an object with a \"chords\" array")
	}
	raw, ok := top["chords"]
	if !ok {
		return Batch{}, errors.New(errors.ErrCodeInvalidInput, "batch is missing \"chords\"")
	}
	list, ok := raw.([]any)
	if !ok {
		return Batch{}, errors.New(errors.ErrCodeInvalidInput, "\"chords\" must be an array, got %s", typeName(raw))
	}

	b := Batch{Chords: make([]Chord, 0, len(list))}
	for i, item := range list {
		c, err := validateChord(item, fmt.Sprintf("chord %d", i+1))
		if err != nil {
			return Batch{}, err
		}
		b.Chords = append(b.Chords, c)
	}
	return b, nil
}

func validateChord(item any, where string) (Chord, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Chord{}, errors.New(errors.ErrCodeInvalidInput, "%s must be an object, got %s", where, typeName(item))
	}

	raw, ok := obj["notes"]
	if !ok {
		return Chord{}, errors.New(errors.ErrCodeInvalidInput, "%s is missing \"notes\"", where)
	}
	list, ok := raw.([]any)
	if !ok {
		return Chord{}, errors.New(errors.ErrCodeInvalidInput, "%s: \"notes\" must be an array, got %s", where, typeName(raw))
	}

	c := Chord{Notes: make([]string, len(list))}
	for j, n := range list {
		s, ok := n.(string)
		if !ok {
			return Chord{}, errors.New(errors.ErrCodeInvalidInput, "%s: note %d must be a string, got %s", where, j+1, typeName(n))
		}
		c.Notes[j] = s
	}

	if raw, ok := obj["clef"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return Chord{}, errors.New(errors.ErrCodeInvalidClef, "%s: clef must be a string, got %s", where, typeName(raw))
		}
		if s = strings.TrimSpace(s); s != "" && !strings.EqualFold(s, "auto") {
			clef, err := pitch.ParseClef(s)
			if err != nil {
				return Chord{}, errors.Wrap(errors.ErrCodeInvalidClef, err, "%s", where)
			}
			c.Clef = clef
		}
	}

	if raw, ok := obj["name"]; ok {
		s, ok := raw.(string)
		if !ok {
			return Chord{}, errors.New(errors.ErrCodeInvalidInput, "%s: name must be a string, got %s", where, typeName(raw))
		}
		c.Name = s
	}
	return c, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

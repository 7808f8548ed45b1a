// Package codec serializes the prompt catalog to a transport document and
// reads it back. Three formats are supported: a JSON array (the default),
// JSON Lines, and a YAML sequence. Decoding parses the whole document
// before returning, so a malformed document never yields partial entries.
package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Format names a transport document format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatJSON

// Codec errors.
var (
	ErrUnknownFormat     = errors.New("unknown format")
	ErrMalformedDocument = errors.New("malformed document")
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 << 20

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONL, FormatYAML}
}

// ParseFormat accepts a format name in any letter case. "yml" and "ndjson"
// are accepted as aliases. An empty string yields DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultFormat, nil
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (valid: json, jsonl, yaml)", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// DetectFormat guesses the format from the document's first non-blank
// byte: '[' is a JSON array, '{' starts JSON Lines, anything else is YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return DefaultFormat
	}
	switch trimmed[0] {
	case '[':
		return FormatJSON
	case '{':
		return FormatJSONL
	}
	return FormatYAML
}

// Encode writes prompts to w in format f.
func Encode(w io.Writer, prompts []*types.Prompt, f Format) error {
	records := make([]promptRecord, 0, len(prompts))
	for _, p := range prompts {
		records = append(records, toRecord(p))
	}

	switch f {
	case FormatJSON, "":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
		return nil
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for i, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encoding record %d: %w", i, err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode parses a whole document in format f into store entries. Record
// IDs and timestamps are discarded.
func Decode(data []byte, f Format) ([]types.Entry, error) {
	var (
		records []promptRecord
		err     error
	)
	switch f {
	case FormatJSON:
		records, err = decodeJSON(data)
	case FormatJSONL:
		records, err = decodeJSONL(data)
	case FormatYAML:
		records, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, len(records))
	for i, rec := range records {
		e, err := rec.toEntry()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedDocument, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeJSON(data []byte) ([]promptRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records, got null", ErrMalformedDocument)
	}
	records := make([]promptRecord, 0, len(raw))
	for i, msg := range raw {
		rec := newRecord()
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedDocument, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeJSONL reads one record per non-blank line. Unlike a best-effort
// reader, any malformed line fails the whole document.
func decodeJSONL(data []byte) ([]promptRecord, error) {
	var records []promptRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		rec := newRecord()
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDocument, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDocument, line+1, err)
	}
	return records, nil
}

func decodeYAML(data []byte) ([]promptRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a YAML sequence of records", ErrMalformedDocument)
	}
	items := doc.Content[0].Content
	records := make([]promptRecord, 0, len(items))
	for i, node := range items {
		rec := newRecord()
		if err := node.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedDocument, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Package loader reads threshold documents from disk or stdin.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// StdinPath makes Load read from standard input.
const StdinPath = "-"

// ErrNotFound is returned when the input file does not exist.
var ErrNotFound = errors.New("file not found")

// DecodeError reports a document that could not be parsed.
type DecodeError struct {
	Path   string
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s format in file: %s: %v", strings.ToUpper(string(e.Format)), e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseFormat validates a format name. An empty name means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json or yaml)", name)
	}
}

// DetectFormat picks a format from the file extension, ignoring a trailing
// .gz. Unknown extensions are treated as JSON.
func DetectFormat(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the document at path. The result is the generic
// decoded value, typically a map.
func Load(path string, format Format) (any, error) {
	if path == StdinPath {
		if format == FormatAuto || format == "" {
			format = FormatJSON
		}
		return LoadReader(os.Stdin, "<stdin>", format)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	return LoadReader(f, path, format)
}

// LoadReader decodes a document from r. Gzip input is detected by its magic
// bytes. name is used in error messages only.
func LoadReader(r io.Reader, name string, format Format) (any, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, &DecodeError{Path: name, Format: format, Err: err}
		}
		defer func() {
			_ = zr.Close()
		}()
		return decode(zr, name, format)
	}
	return decode(br, name, format)
}

func decode(r io.Reader, name string, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Path: name, Format: format, Err: err}
	}
	var out any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, &DecodeError{Path: name, Format: format, Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, &DecodeError{Path: name, Format: FormatJSON, Err: err}
		}
		if dec.More() {
			return nil, &DecodeError{Path: name, Format: FormatJSON, Err: errors.New("trailing data after document")}
		}
	}
	return out, nil
}

package scenefile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/minidraw/pkg/errors"
	pkgio "github.com/matzehuels/minidraw/pkg/io"
	"github.com/matzehuels/minidraw/pkg/observability"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Format is a scene document encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatForPath infers the document format from the extension of path.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported scene file %s: want .toml, .yaml, .yml or .json", path)
}

// Load reads and decodes the scene document at path on fs.
func Load(ctx context.Context, fs afero.Fs, path string) (*scene.Drawing, error) {
	if _, err := FormatForPath(path); err != nil {
		return nil, err
	}
	data, err := pkgio.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Read(ctx, path, data)
}

// Read decodes data, already read from the file name, in the format its
// extension names. Errors are prefixed with name.
func Read(ctx context.Context, name string, data []byte) (*scene.Drawing, error) {
	format, err := FormatForPath(name)
	if err != nil {
		return nil, err
	}

	hooks := observability.Scene()
	hooks.OnLoadStart(ctx, name, string(format))
	start := time.Now()

	d, err := Decode(data, format)
	count := 0
	if err != nil {
		err = errors.Wrap(errors.GetCode(err), err, "%s", name)
	} else {
		count = d.Count()
	}
	hooks.OnLoadComplete(ctx, name, string(format), count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Decode parses data in the given format and builds the drawing.
func Decode(data []byte, format Format) (*scene.Drawing, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Parse decodes data into a [Document] without building it. Keys that do
// not belong to the document structure are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if und := md.Undecoded(); len(und) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "decode toml: unknown key %s", und[0])
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode yaml")
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown scene format %q", format)
	}
	return &doc, nil
}

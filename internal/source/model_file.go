package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelFileVersion is written into every encoded model file
const ModelFileVersion = "1"

// ModelFile is the on-disk form of a set of classes. It is what `apply`
// writes and what the model frontend reads back.
type ModelFile struct {
	Version string   `yaml:"version" json:"version"`
	Classes []*Class `yaml:"classes" json:"classes"`
}

// DecodeModel reads a model file. JSON is chosen by a .json extension,
// everything else is read as YAML.
func DecodeModel(path string, data []byte) (*ModelFile, error) {
	var model ModelFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&model); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&model); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	for i, c := range model.Classes {
		if c == nil {
			return nil, fmt.Errorf("%s: class %d is empty", path, i)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if c.Kind == "" {
			c.Kind = ClassKindClass
		}
		if c.File == "" {
			c.File = path
		}
	}
	return &model, nil
}

// EncodeModel writes classes in the given format ("json" or "yaml")
func EncodeModel(classes []*Class, format string) ([]byte, error) {
	model := ModelFile{Version: ModelFileVersion, Classes: classes}
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(model); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", format)
	}
}

// Package menufile reads menu templates from YAML, TOML and JSON files.
//
// A template file holds a top-level "menu" list whose entries use the same
// keys as menu.Descriptor:
//
//	menu:
//	  - role: fileMenu
//	  - label: View
//	    submenu:
//	      - label: Compact
//	        type: checkbox
//	        accelerator: CmdOrCtrl+Shift+C
//
// Keys that are not descriptor fields are kept as pass-through properties.
package menufile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/menu"
)

// Format is a template file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .yaml, .yml, .toml and .json.
	ErrUnsupportedFormat = errors.New("unsupported template format")
	// ErrNoMenu is returned when a document has no "menu" list.
	ErrNoMenu = errors.New("template has no menu")
)

//go:embed default.yaml
var defaultTemplate []byte

// DefaultSource returns the embedded default template as YAML.
func DefaultSource() []byte { return defaultTemplate }

// Default returns the embedded default template.
func Default() menu.Template {
	t, err := Parse(defaultTemplate, YAML)
	if err != nil {
		panic(fmt.Sprintf("menufile: embedded default template: %v", err))
	}
	return t
}

// FormatFromPath picks the format from path's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the template at path.
func Load(path string) (menu.Template, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug(log.CatMenu, "template loaded", "path", path, "format", format, "items", len(t))
	return t, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (menu.Template, error) {
	var doc map[string]any
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case JSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", format, err)
	}

	raw, ok := doc["menu"]
	if !ok || raw == nil {
		return nil, ErrNoMenu
	}
	return decode(raw)
}

func decode(raw any) (menu.Template, error) {
	var t menu.Template
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &t,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding menu: %w", err)
	}
	return t, nil
}

// document is the on-disk shape written by Marshal.
type document struct {
	Menu menu.Template `yaml:"menu"`
}

// Marshal encodes t as a YAML template document. Click handlers are not
// serialized.
func Marshal(t menu.Template) ([]byte, error) {
	return yaml.Marshal(document{Menu: t})
}

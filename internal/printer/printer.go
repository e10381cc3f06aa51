// Package printer renders command results as text, JSON or YAML.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/display"
	"github.com/backmassage/seqpath/pkg/imagepath"
)

// Printer writes one result object to w.
type Printer interface {
	PrintObj(obj any, w io.Writer) error
}

// Texter is implemented by results with their own text rendering.
type Texter interface {
	WriteText(w io.Writer) error
}

// New returns the printer for format. Unknown formats fall back to text.
func New(format config.OutputFormat) Printer {
	switch format {
	case config.OutputJSON:
		return &JSONPrinter{}
	case config.OutputYAML:
		return &YAMLPrinter{}
	default:
		return &TextPrinter{}
	}
}

type JSONPrinter struct{}

func (p *JSONPrinter) PrintObj(obj any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}

type YAMLPrinter struct{}

func (p *YAMLPrinter) PrintObj(obj any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(obj); err != nil {
		return err
	}
	return enc.Close()
}

// TextPrinter prints descriptors as aligned key/value blocks separated by
// blank lines, Texter values with their own rendering, and anything else
// one value per line.
type TextPrinter struct{}

func (p *TextPrinter) PrintObj(obj any, w io.Writer) error {
	switch v := obj.(type) {
	case imagepath.Descriptor:
		return display.WriteKV(w, DescriptorRows(v))
	case []imagepath.Descriptor:
		for i, d := range v {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := display.WriteKV(w, DescriptorRows(d)); err != nil {
				return err
			}
		}
		return nil
	case Texter:
		return v.WriteText(w)
	case []string:
		for _, s := range v {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

// descriptorKeys is the text order of descriptor fields.
var descriptorKeys = []string{
	"image", "path", "name", "base_name", "ext",
	"version_folder_level", "version_folder_prefix", "version_folder",
	"version_prefix", "version", "version_sep",
	"frame_prefix", "frame", "frame_padding", "frame_notation", "frame_hash",
}

// DescriptorRows returns the descriptor as key/value rows. Absent values
// print as "-" and a major/minor pair as "major.minor".
func DescriptorRows(d imagepath.Descriptor) []display.KV {
	m := d.Map()
	rows := make([]display.KV, 0, len(descriptorKeys))
	for _, k := range descriptorKeys {
		rows = append(rows, display.KV{Key: k, Value: textValue(m[k])})
	}
	return rows
}

func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return `""`
		}
		return x
	case []string:
		return strings.Join(x, ".")
	default:
		return fmt.Sprint(x)
	}
}

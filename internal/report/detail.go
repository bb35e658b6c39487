package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/yairfalse/awsls/pkg/resource"
)

const banner = "##################################"

var (
	bannerColor = color.New(color.FgBlue)
	keyColor    = color.New(color.FgGreen)
)

// Detail writes every top-level field of doc under an id banner. Nested
// values are rendered as indented YAML in document order.
func Detail(w io.Writer, doc *resource.Document) error {
	var buf bytes.Buffer

	bannerColor.Fprintln(&buf, banner)
	bannerColor.Fprintln(&buf, "# ID: "+doc.ID)
	bannerColor.Fprintln(&buf, banner)

	for _, f := range doc.Fields() {
		if !f.Nested {
			keyColor.Fprint(&buf, f.Key+": ")
			fmt.Fprintln(&buf, f.Value)
			continue
		}

		nested, err := toYAML(f.Value)
		if err != nil {
			return fmt.Errorf("render %s of %s: %w", f.Key, doc.ID, err)
		}
		keyColor.Fprint(&buf, f.Key+":")
		fmt.Fprintln(&buf)
		for _, line := range strings.Split(strings.TrimRight(nested, "\n"), "\n") {
			fmt.Fprintln(&buf, "  "+line)
		}
	}
	fmt.Fprintln(&buf)

	_, err := w.Write(buf.Bytes())
	return err
}

// toYAML re-encodes a JSON value as block-style YAML, keeping key order.
func toYAML(raw string) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return "", err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// blockStyle clears the flow and quoting styles JSON input carries.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

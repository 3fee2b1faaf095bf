package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// numFmt renders counts with thousands separators in tables.
var numFmt = message.NewPrinter(language.English)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck
	return eris.Wrap(enc.Encode(v), "encode yaml")
}

// render writes v as json or yaml; table rendering stays with each command.
func render(format string, v any) error {
	switch format {
	case "json":
		return renderJSON(os.Stdout, v)
	case "yaml":
		return renderYAML(os.Stdout, v)
	}
	return eris.Errorf("unsupported format %q", format)
}

func formatCount(n int64) string {
	return numFmt.Sprintf("%d", n)
}

// truncate cuts on rune boundaries so multibyte text is never split
// mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

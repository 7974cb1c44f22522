package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/rpncalc/internal/session"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// addOutputFlag registers the --output/-o format flag.
func addOutputFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "output", "o", outputText, "Output format (text, json, yaml)")
}

// writeView renders a session view in the requested format.
func writeView(w io.Writer, view session.View, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputText:
		return session.Render(w, view)
	case outputJSON:
		payload, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			_ = enc.Close()
			return fmt.Errorf("encode view: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWrapWidth is the column at which preview bodies are wrapped.
const DefaultWrapWidth = 72

// PreviewText returns a rendered message as plain text: subject line,
// blank line, body wrapped at width. A width below one disables wrapping.
func PreviewText(preview formatter.Preview, width int) string {
	body := preview.Body
	if width > 0 {
		body = wordwrap.String(body, width)
	}
	return "Subject: " + preview.Subject + "\n\n" + body
}

// FormatPreview writes a rendered message followed by a warning for any
// placeholder that had no binding.
func FormatPreview(writer io.Writer, preview formatter.Preview, missing []string, width int) error {
	if _, err := fmt.Fprintln(writer, PreviewText(preview, width)); err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(writer, "\n%sUnbound placeholders: %s%s\n",
		colors.Yellow, strings.Join(missing, ", "), colors.Reset)
	return err
}

// FormatPresets writes one line per template: name, then description.
func FormatPresets(writer io.Writer, presets []formatter.Preset) error {
	for _, p := range presets {
		line := p.Name
		if p.Description != "" {
			line += "  - " + p.Description
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

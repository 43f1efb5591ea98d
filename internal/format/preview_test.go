package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewTextWraps(t *testing.T) {
	preview := formatter.Preview{
		Subject: "Hello Ada",
		Body:    "one two three four five six",
	}

	got := PreviewText(preview, 10)
	assert.True(t, strings.HasPrefix(got, "Subject: Hello Ada\n\n"))
	for _, line := range strings.Split(strings.TrimPrefix(got, "Subject: Hello Ada\n\n"), "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}

	assert.Equal(t, "Subject: s\n\n"+preview.Body, PreviewText(formatter.Preview{Subject: "s", Body: preview.Body}, 0))
}

func TestFormatPreviewMissing(t *testing.T) {
	var buf bytes.Buffer
	err := FormatPreview(&buf, formatter.Preview{Subject: "Hi", Body: "Body {{signature}}"}, []string{"signature"}, 0)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Body {{signature}}")
	assert.Contains(t, buf.String(), "Unbound placeholders: signature")
}

func TestFormatPreviewNoMissing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatPreview(&buf, formatter.Preview{Subject: "Hi", Body: "Body"}, nil, 0))
	assert.Equal(t, "Subject: Hi\n\nBody\n", buf.String())
}

func TestFormatPresets(t *testing.T) {
	var buf bytes.Buffer
	err := FormatPresets(&buf, []formatter.Preset{
		{Name: "intro", Description: "First touch"},
		{Name: "bare"},
	})
	require.NoError(t, err)
	assert.Equal(t, "intro  - First touch\nbare\n", buf.String())
}

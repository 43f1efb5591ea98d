// Package formatter provides template parsing, token binding and preset management
// for rendering email previews from lead records.
package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound indicates no preset is registered under a name.
var ErrPresetNotFound = errors.New("preset not found")

// Preset is a named email template.
type Preset struct {
	Name        string `yaml:"name" json:"name"`
	Subject     string `yaml:"subject" json:"subject"`
	Body        string `yaml:"body" json:"body"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Preview is a rendered email.
type Preview struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RenderPreset renders the subject and body of a preset.
func RenderPreset(engine TemplateEngine, preset Preset, bindings map[string]string) Preview {
	return Preview{
		Subject: engine.Render(preset.Subject, bindings),
		Body:    engine.Render(preset.Body, bindings),
	}
}

// PresetRegistry manages email template presets.
type PresetRegistry interface {
	// Get returns a preset by name.
	Get(name string) (*Preset, error)

	// List returns all available presets.
	List() []Preset

	// Register adds a new preset or replaces one with the same name.
	Register(preset Preset) error
}

// presetRegistry implements PresetRegistry interface.
type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with the built-in templates.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{
		presets: make(map[string]Preset),
		order:   []string{},
	}
	registry.registerDefaults()
	return registry
}

func (pr *presetRegistry) registerDefaults() {
	presets := []Preset{
		{
			Name:    "intro",
			Subject: "Quick introduction, {{name}}",
			Body: "Hi {{name}},\n\n" +
				"I came across {{company}} and your work as {{job_title}} in {{location}}.\n" +
				"Would you be open to a short call next week?\n\n" +
				"Best regards",
			Description: "First-touch introduction email",
		},
		{
			Name:    "follow-up",
			Subject: "Following up, {{name}}",
			Body: "Hi {{name}},\n\n" +
				"Just following up on my previous note to {{company}}.\n" +
				"Happy to share more details whenever suits you.\n\n" +
				"Thanks",
			Description: "Polite follow-up after no reply",
		},
		{
			Name:    "meeting",
			Subject: "Meeting request: {{company}}",
			Body: "Hello {{full_name}},\n\n" +
				"As {{job_title}} at {{company}}, you may be interested in what we are building.\n" +
				"Could we schedule 20 minutes? I will send the invite to {{email}}.\n\n" +
				"Kind regards",
			Description: "Meeting request addressed by full name",
		},
	}
	for _, preset := range presets {
		pr.presets[preset.Name] = preset
		pr.order = append(pr.order, preset.Name)
	}
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return &preset, nil
}

// List returns all available presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		if preset, ok := pr.presets[name]; ok {
			result = append(result, preset)
		}
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	preset.Name = strings.TrimSpace(preset.Name)
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Body == "" {
		return fmt.Errorf("preset body cannot be empty")
	}

	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}

// presetFile is the YAML layout accepted by LoadPresetsYAML.
type presetFile struct {
	Templates []Preset `yaml:"templates"`
}

// ParsePresetsYAML decodes the templates of a YAML document. An empty
// document yields no templates.
func ParsePresetsYAML(r io.Reader) ([]Preset, error) {
	var file presetFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return file.Templates, nil
}

// LoadPresetsYAML registers every template of a YAML document and returns
// the number registered.
func LoadPresetsYAML(r io.Reader, registry PresetRegistry) (int, error) {
	presets, err := ParsePresetsYAML(r)
	if err != nil {
		return 0, err
	}
	for i, preset := range presets {
		if err := registry.Register(preset); err != nil {
			return i, fmt.Errorf("template %d: %w", i+1, err)
		}
	}
	return len(presets), nil
}

// MarshalPresetsYAML encodes presets in the layout read by LoadPresetsYAML.
func MarshalPresetsYAML(presets []Preset) ([]byte, error) {
	return yaml.Marshal(presetFile{Templates: presets})
}

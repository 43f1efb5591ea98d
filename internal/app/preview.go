package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
)

// ErrTemplateNotFound indicates the requested template is not registered.
var ErrTemplateNotFound = formatter.ErrPresetNotFound

// PreviewResult is a rendered email plus the placeholders left unbound.
type PreviewResult struct {
	Template string            `json:"template"`
	Preview  formatter.Preview `json:"preview"`
	Missing  []string          `json:"missing,omitempty"`
}

// PreviewUseCase renders email templates for a lead.
type PreviewUseCase struct {
	engine   formatter.TemplateEngine
	registry formatter.PresetRegistry
}

// NewPreviewUseCase creates a new preview use-case.
func NewPreviewUseCase(engine formatter.TemplateEngine, registry formatter.PresetRegistry) *PreviewUseCase {
	if engine == nil {
		panic("NewPreviewUseCase: engine dependency cannot be nil")
	}
	if registry == nil {
		panic("NewPreviewUseCase: registry dependency cannot be nil")
	}
	return &PreviewUseCase{engine: engine, registry: registry}
}

// Execute renders the named template with the lead's bindings.
func (u *PreviewUseCase) Execute(templateName string, lead domain.Record) (PreviewResult, error) {
	preset, err := u.registry.Get(templateName)
	if err != nil {
		if errors.Is(err, formatter.ErrPresetNotFound) {
			return PreviewResult{}, fmt.Errorf("preview: %w", err)
		}
		return PreviewResult{}, err
	}
	bindings := formatter.LeadBindings(lead)
	missing := formatter.Missing(u.engine, preset.Subject+"\n"+preset.Body, bindings)
	return PreviewResult{
		Template: preset.Name,
		Preview:  formatter.RenderPreset(u.engine, *preset, bindings),
		Missing:  missing,
	}, nil
}

// FindLead returns the first record whose id equals id, or whose email
// matches id case-insensitively.
func FindLead(records []domain.Record, id string) (domain.Record, bool) {
	for _, r := range records {
		if r.Field(domain.FieldID) == id {
			return r, true
		}
	}
	for _, r := range records {
		if email := r.Field(domain.FieldEmail); email != "" && strings.EqualFold(email, id) {
			return r, true
		}
	}
	return nil, false
}

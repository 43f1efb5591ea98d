package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/leadnexus/internal/format"
	"github.com/cristianoliveira/leadnexus/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(render.Header(render.HeaderState{
		Source:  m.source,
		Query:   m.parser.Format(m.criteria),
		Sort:    m.criteria.SortKey,
		Grouped: m.criteria.GroupByCompany,
		Matched: m.result.Matched,
		Total:   len(m.records),
		Loading: m.loading,
		Width:   m.width,
	}))
	s.WriteString("\n")

	body := m.table.View()
	if len(m.rowLeads) == 0 {
		body = render.EmptyState(m.loading)
	}
	if m.previewMode {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.previewView())
	}
	if toasts := render.Toasts(m.toasts, m.width); toasts != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", toasts)
	}
	s.WriteString(body)
	s.WriteString("\n")

	s.WriteString(render.Footer(render.FooterState{
		SearchMode:  m.searchMode,
		PreviewMode: m.previewMode,
		Input:       m.input.View(),
		Page:        m.result.Page.Number,
		PageCount:   m.result.Page.PageCount(),
		Width:       m.width,
	}))

	return s.String()
}

func (m *Model) previewView() string {
	width := min(previewWrapWidth, m.width/2)
	if m.lastPreview.Template == "" {
		return render.Preview("-", "Select a lead to preview a message.", nil, width)
	}
	return render.Preview(
		m.lastPreview.Template,
		format.PreviewText(m.lastPreview.Preview, 0),
		m.lastPreview.Missing,
		width,
	)
}

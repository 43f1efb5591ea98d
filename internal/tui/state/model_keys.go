package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/format"
)

// handleKeyMsg routes a key press by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.previewMode {
			m.previewMode = false
			return m, nil
		}
		return m, tea.Quit
	case "/":
		m.searchMode = true
		m.input.SetValue(m.parser.Format(m.criteria))
		m.input.CursorEnd()
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case "s":
		m.cycleSort()
	case "g":
		m.criteria.GroupByCompany = !m.criteria.GroupByCompany
		m.page = 1
		m.refresh(true)
	case "n", "right":
		m.nextPage()
	case "p", "left":
		m.prevPage()
	case "e", "enter":
		m.previewMode = !m.previewMode
		if m.previewMode {
			m.updatePreview()
		}
	case "t":
		if m.previewMode {
			m.templateIdx++
			m.updatePreview()
		}
	case "c":
		if m.previewMode && m.lastPreview.Template != "" {
			return m, copyCmd(format.PreviewText(m.lastPreview.Preview, 0))
		}
	case "x":
		m.queue.ClearAll()
		m.toasts = nil
	case "r":
		m.loading = true
		return m, m.loadCmd(true)
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		if m.previewMode {
			m.updatePreview()
		}
		return m, cmd
	}
	return m, nil
}

// handleSearchKey edits the query; Enter applies it and ESC cancels.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitSearch()
		return m, nil
	case tea.KeyEnter:
		criteria, err := m.parser.Parse(m.input.Value(), m.criteria)
		if err != nil {
			m.handler.Warning("Invalid query: " + err.Error())
			m.toasts = m.queue.List()
			return m, nil
		}
		m.criteria = criteria
		m.page = 1
		m.exitSearch()
		m.refresh(true)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) exitSearch() {
	m.searchMode = false
	m.input.Blur()
}

// cycleSort advances to the next sort key, wrapping to none.
func (m *Model) cycleSort() {
	keys := domain.SortKeys()
	next := keys[0]
	for i, k := range keys {
		if k == m.criteria.SortKey {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	m.criteria.SortKey = next
	m.page = 1
	m.refresh(true)
}

func (m *Model) nextPage() {
	if !m.result.Page.HasNext() {
		return
	}
	m.page++
	m.refresh(true)
}

func (m *Model) prevPage() {
	if m.page <= 1 {
		return
	}
	m.page--
	m.refresh(true)
}

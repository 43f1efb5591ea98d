// Package state holds the bubbletea model of the interactive lead browser.
package state

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/errors"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/cristianoliveira/leadnexus/internal/search"
	"github.com/cristianoliveira/leadnexus/internal/tui/render"
)

const (
	headerLines           = 2
	footerLines           = 2
	defaultViewportWidth  = 100
	defaultViewportHeight = 24
	previewWrapWidth      = 72
)

// Deps are the collaborators the model drives.
type Deps struct {
	Search   *app.SearchUseCase
	Preview  *app.PreviewUseCase
	Registry formatter.PresetRegistry
	Queue    *notification.Queue
	Parser   search.Provider
	Watcher  *leads.Watcher // optional, triggers reloads
	Source   string         // shown in the header
	Criteria domain.FilterCriteria
	PageSize int
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx      context.Context
	search   *app.SearchUseCase
	preview  *app.PreviewUseCase
	registry formatter.PresetRegistry
	queue    *notification.Queue
	parser   search.Provider
	watcher  *leads.Watcher
	handler  errors.ErrorHandler
	source   string

	// Search state
	records  []domain.Record
	criteria domain.FilterCriteria
	page     int
	pageSize int
	result   domain.Result
	loading  bool

	// UI state
	table       table.Model
	input       textinput.Model
	rowLeads    []domain.Record // parallel to table rows, nil for group headings
	searchMode  bool
	previewMode bool
	templateIdx int
	lastPreview app.PreviewResult
	toasts      []notification.Notification
	width       int
	height      int
}

// NewModel creates a new TUI model. ctx bounds source loads and the
// file watcher.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Search == nil {
		panic("NewModel: search dependency cannot be nil")
	}
	if deps.Preview == nil {
		panic("NewModel: preview dependency cannot be nil")
	}
	if deps.Registry == nil {
		panic("NewModel: registry dependency cannot be nil")
	}
	if deps.Queue == nil {
		panic("NewModel: queue dependency cannot be nil")
	}
	if deps.Parser == nil {
		deps.Parser = search.NewTokenProvider()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = app.DefaultPageSize
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "company:acme title:cto sort:score"

	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("4"))

	m := &Model{
		ctx:      contextOrBackground(ctx),
		search:   deps.Search,
		preview:  deps.Preview,
		registry: deps.Registry,
		queue:    deps.Queue,
		parser:   deps.Parser,
		watcher:  deps.Watcher,
		handler:  errors.NewQueueHandler(deps.Queue, ""),
		source:   deps.Source,
		criteria: deps.Criteria,
		page:     1,
		pageSize: deps.PageSize,
		loading:  true,
		input:    input,
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
	}
	m.table = table.New(
		table.WithColumns(render.LeadColumns(m.width)),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
	m.resize()
	return m
}

// Init starts the first load, the toast ticker and the file watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(false), toastTick(), m.watchCmd())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case leadsLoadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case sourceChangedMsg:
		logging.Debug("lead source changed, reloading", "source", m.source)
		m.loading = true
		return m, tea.Batch(m.loadCmd(true), m.watchCmd())
	case toastTickMsg:
		m.toasts = m.queue.List()
		return m, toastTick()
	case copiedMsg:
		if msg.err != nil {
			m.handler.Error("Copy failed: " + msg.err.Error())
		} else {
			m.handler.Success("Preview copied to clipboard")
		}
		m.toasts = m.queue.List()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLoaded(msg leadsLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		// SearchUseCase.Load already queued the error notification.
		colors.Debug("lead load failed: " + msg.err.Error())
		m.toasts = m.queue.List()
		return
	}
	m.records = msg.records
	if msg.reload {
		_, _ = m.queue.Enqueue(notification.Info("Leads reloaded", fmt.Sprintf("%d leads", len(msg.records))))
		m.toasts = m.queue.List()
	}
	m.refresh(false)
}

// refresh reruns the search pipeline and rebuilds the table rows.
func (m *Model) refresh(resetCursor bool) {
	m.result = app.Run(m.records, app.SearchInput{
		Criteria: m.criteria,
		Page:     m.page,
		PageSize: m.pageSize,
	})
	if m.page > 1 && m.page > m.result.Page.PageCount() {
		m.page = max(m.result.Page.PageCount(), 1)
		m.result = app.Run(m.records, app.SearchInput{Criteria: m.criteria, Page: m.page, PageSize: m.pageSize})
	}

	var rows []table.Row
	m.rowLeads = m.rowLeads[:0]
	if m.criteria.GroupByCompany {
		for _, group := range m.result.Groups {
			rows = append(rows, render.GroupRow(group))
			m.rowLeads = append(m.rowLeads, nil)
			for _, r := range group.Records {
				rows = append(rows, render.LeadRow(r))
				m.rowLeads = append(m.rowLeads, r)
			}
		}
	} else {
		for _, r := range m.result.Page.Items {
			rows = append(rows, render.LeadRow(r))
			m.rowLeads = append(m.rowLeads, r)
		}
	}
	m.table.SetRows(rows)
	if resetCursor {
		m.table.SetCursor(0)
	}
	if m.previewMode {
		m.updatePreview()
	}
}

func (m *Model) resize() {
	m.table.SetColumns(render.LeadColumns(m.width))
	m.table.SetWidth(m.width)
	height := m.height - headerLines - footerLines - 1
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
	m.input.Width = m.width - len(m.input.Prompt) - 1
}

// selectedLead returns the record under the cursor, if any.
func (m *Model) selectedLead() (domain.Record, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowLeads) || m.rowLeads[idx] == nil {
		return nil, false
	}
	return m.rowLeads[idx], true
}

func (m *Model) updatePreview() {
	lead, ok := m.selectedLead()
	if !ok {
		m.lastPreview = app.PreviewResult{}
		return
	}
	presets := m.registry.List()
	if len(presets) == 0 {
		m.lastPreview = app.PreviewResult{}
		return
	}
	m.templateIdx %= len(presets)
	result, err := m.preview.Execute(presets[m.templateIdx].Name, lead)
	if err != nil {
		m.handler.Error("Preview failed: " + err.Error())
		return
	}
	m.lastPreview = result
}

// Criteria returns the criteria currently applied.
func (m *Model) Criteria() domain.FilterCriteria {
	return m.criteria
}

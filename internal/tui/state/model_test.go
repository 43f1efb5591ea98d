package state

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []domain.Record
	err     error
}

func (f *fakeSource) Load(ctx context.Context) ([]domain.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func score(v float64) *float64 { return &v }

func sampleLeads() []domain.Record {
	return []domain.Record{
		domain.Lead{ID: "1", FullName: "Sam Carter", Email: "sam@acme.io", JobTitle: "CEO", CompanyName: "Acme", Location: "Berlin", LeadScore: score(72)}.ToRecord(),
		domain.Lead{ID: "2", FullName: "Ana Souza", Email: "ana@globex.com", JobTitle: "Head of Sales", CompanyName: "Globex", Location: "Lisbon", LeadScore: score(90.5)}.ToRecord(),
		domain.Lead{ID: "3", FullName: "Li Wei", Email: "li@acme.io", JobTitle: "CTO", CompanyName: "Acme"}.ToRecord(),
		domain.Lead{ID: "4", FullName: "Maria Rossi", Email: "maria@initech.com", JobTitle: "Sales Manager", CompanyName: "Initech", Location: "Berlin"}.ToRecord(),
	}
}

func newTestModel(t *testing.T, source *fakeSource, pageSize int) (*Model, *notification.Queue) {
	t.Helper()
	queue := notification.NewQueue(notification.Options{DefaultLifetime: time.Hour})
	t.Cleanup(queue.Close)

	registry := formatter.NewPresetRegistry()
	m := NewModel(context.Background(), Deps{
		Search:   app.NewSearchUseCase(source, queue),
		Preview:  app.NewPreviewUseCase(formatter.NewTemplateEngine(), registry),
		Registry: registry,
		Queue:    queue,
		Source:   "leads.csv",
		PageSize: pageSize,
	})
	return m, queue
}

func loaded(t *testing.T, pageSize int) (*Model, *notification.Queue) {
	t.Helper()
	m, queue := newTestModel(t, &fakeSource{records: sampleLeads()}, pageSize)
	m.Update(m.loadCmd(false)())
	return m, queue
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNewModelPanicsOnMissingDeps(t *testing.T) {
	assert.Panics(t, func() { NewModel(context.Background(), Deps{}) })
}

func TestModelLoadsLeads(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{records: sampleLeads()}, 0)
	assert.True(t, m.loading)

	m.Update(m.loadCmd(false)())

	assert.False(t, m.loading)
	assert.Len(t, m.records, 4)
	assert.Len(t, m.rowLeads, 4)
	assert.Equal(t, app.DefaultPageSize, m.pageSize)

	lead, ok := m.selectedLead()
	require.True(t, ok)
	assert.Equal(t, "Sam Carter", lead.Field(domain.FieldFullName))
}

func TestModelLoadErrorShowsToast(t *testing.T) {
	m, queue := newTestModel(t, &fakeSource{err: stderrors.New("connection refused")}, 0)

	m.Update(m.loadCmd(false)())

	assert.False(t, m.loading)
	assert.Empty(t, m.records)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, notification.KindError, m.toasts[0].Kind)
	assert.Equal(t, 1, queue.Len())
}

func TestModelReloadNotifies(t *testing.T) {
	m, queue := loaded(t, 0)

	m.Update(m.loadCmd(true)())

	list := queue.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Leads reloaded", list[0].Title)
	assert.Equal(t, "4 leads", list[0].Message)
}

func TestModelSearchQuery(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, keyRunes("/"))
	require.True(t, m.searchMode)

	press(m, keyRunes("company:acme"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.searchMode)
	assert.Equal(t, map[string]string{domain.FieldCompanyName: "acme"}, m.Criteria().Fields)
	assert.Equal(t, 2, m.result.Matched)
	assert.Len(t, m.rowLeads, 2)
}

func TestModelSearchPrefillsCurrentQuery(t *testing.T) {
	m, _ := loaded(t, 0)
	m.criteria = domain.FilterCriteria{}.With(domain.FieldLocation, "berlin")

	press(m, keyRunes("/"))

	assert.Equal(t, "location:berlin", m.input.Value())
}

func TestModelInvalidQueryStaysInSearch(t *testing.T) {
	m, queue := loaded(t, 0)

	press(m, keyRunes("/"), keyRunes("sort:salary"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.searchMode)
	assert.Equal(t, domain.SortNone, m.criteria.SortKey)
	list := queue.List()
	require.Len(t, list, 1)
	assert.Equal(t, notification.KindWarning, list[0].Kind)
}

func TestModelSearchEscCancels(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, keyRunes("/"), keyRunes("acme"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.searchMode)
	assert.True(t, m.criteria.IsEmpty())
}

func TestModelCycleSort(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, keyRunes("s"))
	assert.Equal(t, domain.SortName, m.criteria.SortKey)
	assert.Equal(t, "Ana Souza", m.rowLeads[0].Field(domain.FieldFullName))

	for i := 0; i < len(domain.SortKeys())-1; i++ {
		press(m, keyRunes("s"))
	}
	assert.Equal(t, domain.SortNone, m.criteria.SortKey)
}

func TestModelGroupByCompany(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, keyRunes("g"))

	require.True(t, m.criteria.GroupByCompany)
	// Acme heading, 2 leads, Globex heading, 1 lead, Initech heading, 1 lead.
	assert.Len(t, m.rowLeads, 7)
	_, ok := m.selectedLead()
	assert.False(t, ok)

	press(m, keyRunes("j"))
	lead, ok := m.selectedLead()
	require.True(t, ok)
	assert.Equal(t, "Sam Carter", lead.Field(domain.FieldFullName))
}

func TestModelPagination(t *testing.T) {
	m, _ := loaded(t, 3)

	press(m, keyRunes("n"))
	assert.Equal(t, 2, m.page)
	assert.Len(t, m.rowLeads, 1)

	press(m, keyRunes("n"))
	assert.Equal(t, 2, m.page)

	press(m, keyRunes("p"), keyRunes("p"))
	assert.Equal(t, 1, m.page)
}

func TestModelPageClampsAfterReload(t *testing.T) {
	source := &fakeSource{records: sampleLeads()}
	m, _ := newTestModel(t, source, 2)
	m.Update(m.loadCmd(false)())
	press(m, keyRunes("n"))
	require.Equal(t, 2, m.page)

	source.records = sampleLeads()[:1]
	m.Update(m.loadCmd(true)())

	assert.Equal(t, 1, m.page)
	assert.Len(t, m.rowLeads, 1)
}

func TestModelPreviewAndTemplates(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, keyRunes("e"))
	require.True(t, m.previewMode)
	assert.Equal(t, "intro", m.lastPreview.Template)
	assert.Equal(t, "Quick introduction, Sam", m.lastPreview.Preview.Subject)

	press(m, keyRunes("t"))
	assert.Equal(t, "follow-up", m.lastPreview.Template)

	press(m, keyRunes("j"))
	assert.Equal(t, "Following up, Ana", m.lastPreview.Preview.Subject)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.previewMode)
}

func TestModelCopyPreview(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m, queue := loaded(t, 0)
	press(m, keyRunes("e"))
	cmd := press(m, keyRunes("c"))
	require.NotNil(t, cmd)

	m.Update(cmd())

	assert.True(t, strings.HasPrefix(copied, "Subject: Quick introduction, Sam\n\nHi Sam,"))
	list := queue.List()
	require.Len(t, list, 1)
	assert.Equal(t, notification.KindSuccess, list[0].Kind)
}

func TestModelCopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return stderrors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m, queue := loaded(t, 0)
	press(m, keyRunes("e"))
	m.Update(press(m, keyRunes("c"))())

	list := queue.List()
	require.Len(t, list, 1)
	assert.Equal(t, notification.KindError, list[0].Kind)
	assert.Contains(t, list[0].Title, "no clipboard")
}

func TestModelCopyIgnoredOutsidePreview(t *testing.T) {
	m, _ := loaded(t, 0)
	assert.Nil(t, press(m, keyRunes("c")))
}

func TestModelDismissToasts(t *testing.T) {
	m, queue := loaded(t, 0)
	_, err := queue.Enqueue(notification.Info("one", ""))
	require.NoError(t, err)
	m.Update(toastTickMsg(time.Now()))
	require.Len(t, m.toasts, 1)

	press(m, keyRunes("x"))

	assert.Empty(t, m.toasts)
	assert.Equal(t, 0, queue.Len())
}

func TestModelQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, _ := loaded(t, 0)
		cmd := press(m, msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModelSourceChangedReloads(t *testing.T) {
	m, _ := loaded(t, 0)

	cmd := press(m, sourceChangedMsg{})

	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestModelWindowResize(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, tea.WindowSizeMsg{Width: 140, Height: 40})

	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40-headerLines-footerLines-1, m.table.Height()+1)
}

func TestModelView(t *testing.T) {
	m, _ := loaded(t, 0)
	press(m, keyRunes("e"))

	view := m.View()

	assert.Contains(t, view, "leadnexus")
	assert.Contains(t, view, "4 of 4 leads")
	assert.Contains(t, view, "Sam Carter")
	assert.Contains(t, view, "Template: intro")
}

func TestModelViewEmpty(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{}, 0)
	assert.Contains(t, m.View(), "Loading leads...")

	m.Update(m.loadCmd(false)())
	assert.Contains(t, m.View(), "No leads match the current filters")
}

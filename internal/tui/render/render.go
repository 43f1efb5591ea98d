// Package render draws the pieces of the lead browser: header, lead table
// layout, preview pane, toasts and footer.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/muesli/reflow/wordwrap"
)

const (
	scoreWidth         = 5
	minColumnWidth     = 8
	columnPadding      = 2
	groupExpandedGlyph = "▾"
	toastMaxWidth      = 48
	mutedColor         = "241"
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Source  string
	Query   string
	Sort    domain.SortKey
	Grouped bool
	Matched int
	Total   int
	Loading bool
	Width   int
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	SearchMode  bool
	PreviewMode bool
	Input       string
	Page        int
	PageCount   int
	Width       int
}

// Header renders the title line and the active search summary.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	title := titleStyle.Render("leadnexus")
	if state.Source != "" {
		title += mutedStyle.Render("  " + state.Source)
	}

	var summary []string
	if state.Loading {
		summary = append(summary, "loading...")
	} else {
		summary = append(summary, fmt.Sprintf("%d of %d leads", state.Matched, state.Total))
	}
	if state.Query != "" {
		summary = append(summary, "query: "+state.Query)
	}
	sort := state.Sort.String()
	if sort == "" {
		sort = "none"
	}
	summary = append(summary, "sort: "+sort)
	if state.Grouped {
		summary = append(summary, "grouped by company")
	}

	return title + "\n" + mutedStyle.Render(strings.Join(summary, "  |  "))
}

// Footer renders the prompt in search mode, otherwise the key help.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	if state.SearchMode {
		return state.Input + "\n" + helpStyle.Render("Enter: apply  |  ESC: cancel  |  field:value, sort:<key>, group:company")
	}

	pageCount := state.PageCount
	if pageCount < 1 {
		pageCount = 1
	}
	help := []string{
		fmt.Sprintf("page %d/%d", state.Page, pageCount),
		"/: search",
		"s: sort",
		"g: group",
		"n/p: page",
	}
	if state.PreviewMode {
		help = append(help, "t: template", "c: copy", "ESC: close")
	} else {
		help = append(help, "e: preview")
	}
	help = append(help, "x: dismiss", "r: reload", "q: quit")

	return helpStyle.Render(strings.Join(help, "  |  "))
}

// LeadColumns sizes the lead table columns to the terminal width.
func LeadColumns(width int) []table.Column {
	flexible := []string{"Name", "Email", "Title", "Company", "Location"}
	weights := []int{4, 5, 4, 4, 3}
	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	available := width - scoreWidth - columnPadding*(len(flexible)+1)
	columns := make([]table.Column, 0, len(flexible)+1)
	for i, name := range flexible {
		w := available * weights[i] / totalWeight
		if w < minColumnWidth {
			w = minColumnWidth
		}
		columns = append(columns, table.Column{Title: name, Width: w})
	}
	return append(columns, table.Column{Title: "Score", Width: scoreWidth})
}

// LeadRow renders a record into table cells in LeadColumns order.
func LeadRow(r domain.Record) table.Row {
	score := ""
	if v, ok := r.Number(domain.FieldLeadScore); ok {
		score = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return table.Row{
		r.Field(domain.FieldFullName),
		r.Field(domain.FieldEmail),
		r.Field(domain.FieldJobTitle),
		r.Field(domain.FieldCompanyName),
		r.Field(domain.FieldLocation),
		score,
	}
}

// GroupRow renders a company heading row.
func GroupRow(group domain.CompanyGroup) table.Row {
	return table.Row{fmt.Sprintf("%s %s (%d)", groupExpandedGlyph, group.DisplayName(), group.Count()), "", "", "", "", ""}
}

// Preview renders the message preview pane.
func Preview(templateName, text string, missing []string, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Cyan))).
		Padding(0, 1)
	inner := width - 4
	if inner < minColumnWidth {
		inner = minColumnWidth
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Template: " + templateName))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(text, inner))
	if len(missing) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow))).
			Render("Unbound: " + strings.Join(missing, ", ")))
	}
	return box.Width(inner).Render(b.String())
}

// Toasts renders visible notifications stacked oldest first.
func Toasts(notifications []notification.Notification, width int) string {
	if len(notifications) == 0 {
		return ""
	}
	w := toastMaxWidth
	if width > 0 && width-4 < w {
		w = width - 4
	}

	rendered := make([]string, 0, len(notifications))
	for _, n := range notifications {
		style := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ansiColorNumber(kindColor(n.Kind)))).
			Padding(0, 1).
			Width(w)
		text := lipgloss.NewStyle().Bold(true).Render(toastIcon(n.Kind) + " " + n.Title)
		if n.Message != "" {
			text += "\n" + n.Message
		}
		if n.Action != nil && n.Action.Label != "" {
			text += "\n[" + n.Action.Label + "]"
		}
		rendered = append(rendered, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// EmptyState renders the placeholder shown when nothing matches.
func EmptyState(loading bool) string {
	msg := "No leads match the current filters"
	if loading {
		msg = "Loading leads..."
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(msg)
}

func kindColor(kind notification.Kind) string {
	switch kind {
	case notification.KindError:
		return colors.Red
	case notification.KindWarning:
		return colors.Yellow
	case notification.KindSuccess:
		return colors.Green
	default:
		return colors.Blue
	}
}

func toastIcon(kind notification.Kind) string {
	switch kind {
	case notification.KindError:
		return "✗"
	case notification.KindWarning:
		return "!"
	case notification.KindSuccess:
		return "✓"
	default:
		return "i"
	}
}

// ansiColorNumber maps a "\033[x;3Nm" escape to the basic palette index N.
func ansiColorNumber(ansi string) string {
	end := strings.LastIndex(ansi, "m")
	start := strings.LastIndex(ansi, ";")
	if end == -1 || start == -1 || start+1 >= end {
		return ""
	}
	code, err := strconv.Atoi(ansi[start+1 : end])
	if err != nil || code < 30 || code > 37 {
		return ""
	}
	return strconv.Itoa(code - 30)
}

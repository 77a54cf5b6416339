package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/view"
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	if m.screen == ScreenDetail {
		body = m.detailView()
	} else {
		body = m.listView()
	}

	if m.modal != nil {
		return m.center(m.modalView())
	}
	return body
}

func (m Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

// listView renders the filter bar and project rows.
func (m Model) listView() string {
	var b strings.Builder

	title := "Projects"
	if m.snap.Refreshing {
		title += DimStyle.Render("  refreshing…")
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.snap.Loading:
		b.WriteString(DimStyle.Render("Loading projects…"))
		b.WriteString("\n")
		return b.String()
	case m.snap.Error != nil:
		b.WriteString(ErrorStyle.Render("Something went wrong"))
		b.WriteString("\n")
		b.WriteString(m.snap.ErrorMessage())
		b.WriteString("\n\n")
		b.WriteString(helpLine([]key.Binding{m.keys.Retry, m.keys.Quit}))
		return b.String()
	}

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterBar())

	items := m.visible()
	filter := m.filter
	filter.Query = m.search.Value()
	if filter.Active() {
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %d of %d", len(items), len(m.snap.Projects))))
	}
	b.WriteString("\n\n")
	if len(items) == 0 {
		total := len(m.snap.Projects)
		b.WriteString(NameStyle.Render(view.EmptyMessage(total)))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(view.EmptyHint(total)))
		b.WriteString("\n\n")
	}
	for i, p := range items {
		b.WriteString(m.row(p, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(helpLine(m.keys.ListHelp()))
	return b.String()
}

func (m Model) filterBar() string {
	chips := make([]string, 0, len(view.FilterOptions()))
	for _, opt := range view.FilterOptions() {
		label := view.FilterLabel(opt)
		if opt == m.filter.Status {
			chips = append(chips, ActiveChipStyle.Render(label))
		} else {
			chips = append(chips, ChipStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) row(p project.Project, selected bool) string {
	style := RowStyle
	if selected {
		style = SelectedRowStyle
	}
	text := lipgloss.JoinVertical(lipgloss.Left,
		NameStyle.Render(p.Name),
		ClientStyle.Render(p.ClientName),
	)
	if m.snap.Updating(p.ID) {
		text += DimStyle.Render("  updating…")
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Center, text, "  ", StatusPill(p.Status)))
}

// detailView renders one project, its status actions or the edit form.
func (m Model) detailView() string {
	var b strings.Builder

	p, found := m.snap.Find(m.selectedID)
	if !found {
		if m.snap.Loading {
			b.WriteString(DimStyle.Render("Loading projects…"))
			b.WriteString("\n")
			return b.String()
		}
		b.WriteString(ErrorStyle.Render("Project not found or failed to load."))
		b.WriteString("\n\n")
		b.WriteString(helpLine([]key.Binding{m.keys.Retry, m.keys.Back}))
		return b.String()
	}

	busy := m.snap.Updating(p.ID)
	b.WriteString(HeaderStyle.Render(p.Name))
	b.WriteString("  ")
	b.WriteString(StatusPill(p.Status))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.formView())
		b.WriteString("\n")
		b.WriteString(helpLine(m.keys.FormHelp()))
		return b.String()
	}

	b.WriteString(field("Client", p.ClientName))
	b.WriteString(field("Start", p.StartDate))
	b.WriteString(field("End", orDash(p.EndDate)))
	b.WriteString(field("Description", orDash(p.Description)))
	b.WriteString("\n")

	bindings := []key.Binding{m.keys.Active, m.keys.OnHold, m.keys.Completed}
	for i, s := range project.Statuses() {
		label := HelpKeyStyle.Render(bindings[i].Help().Key) + " " + view.StatusActionLabel(s, busy)
		if !view.CanSetStatus(p, s, busy, m.editing) {
			label = DisabledStyle.Render(bindings[i].Help().Key + " " + view.StatusActionLabel(s, busy))
		}
		b.WriteString(label)
		b.WriteString("   ")
	}
	b.WriteString("\n")

	if busy {
		b.WriteString(DisabledStyle.Render("e Edit"))
		b.WriteString("\n\n")
	}
	b.WriteString(helpLine(m.keys.DetailHelp()))
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	for i := range m.inputs {
		style := InputStyle
		if i == m.focus {
			style = FocusedInputStyle
		}
		b.WriteString(LabelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(style.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}
	if m.saving {
		b.WriteString(DimStyle.Render("Saving…"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) modalView() string {
	content := ModalTitleStyle.Render(m.modal.title) + "\n\n" +
		m.modal.message + "\n\n" +
		HelpDescStyle.Render("Press Enter or Esc to close")
	return ModalStyle.Render(content)
}

func field(label, value string) string {
	return LabelStyle.Render(label+": ") + value + "\n"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

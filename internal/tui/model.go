// Package tui is the terminal list/detail front end over the state controller.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/rpggio/projectboard/internal/view"
)

// Controller defines the state operations the UI issues.
type Controller interface {
	FetchAll(ctx context.Context, refreshing bool) error
	UpdateStatus(ctx context.Context, id string, status project.Status) error
	UpdateFields(ctx context.Context, id string, patch project.Patch) error
	GetByID(id string) (project.Project, bool)
	Snapshot() state.Snapshot
}

// Screen identifies the visible screen.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// Form field order.
const (
	fieldName = iota
	fieldClient
	fieldStart
	fieldEnd
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Project Name",
	"Client Name",
	"Start Date (YYYY-MM-DD)",
	"End Date (YYYY-MM-DD, optional)",
	"Description (optional)",
}

// Messages
type snapshotMsg struct {
	snap state.Snapshot
}

type noticeMsg struct {
	notice state.Notice
}

type fetchDoneMsg struct {
	err error
}

type mutationDoneMsg struct {
	cmd state.Command
	id  string
	err error
}

// alert is a dismissible modal.
type alert struct {
	title   string
	message string
}

// Model is the root bubbletea model.
type Model struct {
	controller Controller
	keys       KeyMap

	snap   state.Snapshot
	screen Screen
	width  int
	height int

	// list
	filter    view.Filter
	search    textinput.Model
	searching bool
	cursor    int

	// detail
	selectedID string
	editing    bool
	saving     bool
	inputs     [fieldCount]textinput.Model
	focus      int

	modal *alert
}

// NewModel creates the root model. Init issues the first load.
func NewModel(c Controller) Model {
	search := textinput.New()
	search.Placeholder = "Search by project or client…"
	search.Prompt = "/ "
	search.PromptStyle = HelpKeyStyle
	search.Width = 60

	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldName].Placeholder = "Enter project name"
	inputs[fieldClient].Placeholder = "Enter client name"
	inputs[fieldDescription].Placeholder = "Write a short description"

	return Model{
		controller: c,
		keys:       DefaultKeyMap(),
		snap:       c.Snapshot(),
		filter:     view.Filter{Status: view.StatusAll},
		search:     search,
		inputs:     inputs,
	}
}

// Init issues the first load.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd(false)
}

func (m Model) fetchCmd(refreshing bool) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return fetchDoneMsg{err: c.FetchAll(context.Background(), refreshing)}
	}
}

func (m Model) statusCmd(id string, s project.Status) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return mutationDoneMsg{cmd: state.CommandStatus, id: id, err: c.UpdateStatus(context.Background(), id, s)}
	}
}

func (m Model) saveCmd(id string, patch project.Patch) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return mutationDoneMsg{cmd: state.CommandFields, id: id, err: c.UpdateFields(context.Background(), id, patch)}
	}
}

// SnapshotMsg wraps a controller snapshot for Program.Send.
func SnapshotMsg(s state.Snapshot) tea.Msg { return snapshotMsg{snap: s} }

// NoticeMsg wraps a controller notice for Program.Send.
func NoticeMsg(n state.Notice) tea.Msg { return noticeMsg{notice: n} }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case snapshotMsg:
		m.setSnapshot(msg.snap)
		return m, nil
	case fetchDoneMsg:
		m.setSnapshot(m.controller.Snapshot())
		return m, nil
	case mutationDoneMsg:
		m.setSnapshot(m.controller.Snapshot())
		if msg.cmd == state.CommandFields && msg.id == m.selectedID {
			m.saving = false
			m.stopEditing()
		}
		return m, nil
	case noticeMsg:
		m.modal = &alert{title: msg.notice.Title, message: msg.notice.Message}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.forwardToInputs(msg)
}

func (m *Model) setSnapshot(s state.Snapshot) {
	m.snap = s
	m.clampCursor()
}

func (m Model) visible() []project.Project {
	filter := m.filter
	filter.Query = m.search.Value()
	return filter.Apply(m.snap.Projects)
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modal != nil {
		if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Back) {
			m.modal = nil
		}
		return m, nil
	}
	if m.screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.clampCursor()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Retry):
		if m.snap.Error != nil {
			return m, m.fetchCmd(false)
		}
	case m.snap.Loading || m.snap.Error != nil:
		// Only retry and quit act while the list is replaced by a status view.
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.NextStatus()
		m.clampCursor()
	case key.Matches(msg, m.keys.Refresh):
		if !m.snap.Refreshing {
			return m, m.fetchCmd(true)
		}
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Enter):
		items := m.visible()
		if m.cursor < len(items) {
			m.selectedID = items[m.cursor].ID
			m.screen = ScreenDetail
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current, found := m.snap.Find(m.selectedID)
	busy := m.snap.Updating(m.selectedID)

	if m.editing {
		return m.handleFormKey(msg, busy)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenList
		m.selectedID = ""
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case !found:
		if key.Matches(msg, m.keys.Retry) {
			return m, m.fetchCmd(false)
		}
	case key.Matches(msg, m.keys.Edit):
		if !busy {
			m.startEditing(current)
			cmd := m.inputs[m.focus].Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Active):
		return m.setStatus(current, project.StatusActive, busy)
	case key.Matches(msg, m.keys.OnHold):
		return m.setStatus(current, project.StatusOnHold, busy)
	case key.Matches(msg, m.keys.Completed):
		return m.setStatus(current, project.StatusCompleted, busy)
	}
	return m, nil
}

func (m Model) setStatus(p project.Project, s project.Status, busy bool) (tea.Model, tea.Cmd) {
	if !view.CanSetStatus(p, s, busy, m.editing) {
		return m, nil
	}
	return m, m.statusCmd(p.ID, s)
}

func (m Model) handleFormKey(msg tea.KeyMsg, busy bool) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if !m.saving {
			m.stopEditing()
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if busy || m.saving {
			return m, nil
		}
		patch, err := m.draft().Validate()
		if err != nil {
			m.modal = &alert{title: "Validation", message: err.Error()}
			return m, nil
		}
		m.saving = true
		return m, m.saveCmd(m.selectedID, patch)
	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField((m.focus + 1) % fieldCount)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.focusField((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *Model) startEditing(p project.Project) {
	d := view.DraftFrom(p)
	m.inputs[fieldName].SetValue(d.Name)
	m.inputs[fieldClient].SetValue(d.ClientName)
	m.inputs[fieldStart].SetValue(d.StartDate)
	m.inputs[fieldEnd].SetValue(d.EndDate)
	m.inputs[fieldDescription].SetValue(d.Description)
	m.editing = true
	m.focus = fieldName
}

func (m *Model) stopEditing() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) draft() view.Draft {
	return view.Draft{
		Name:        m.inputs[fieldName].Value(),
		ClientName:  m.inputs[fieldClient].Value(),
		StartDate:   m.inputs[fieldStart].Value(),
		EndDate:     m.inputs[fieldEnd].Value(),
		Description: m.inputs[fieldDescription].Value(),
	}
}

// forwardToInputs passes non-key messages such as cursor blinks to the
// focused input.
func (m Model) forwardToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	case m.editing:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

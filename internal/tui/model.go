// ABOUTME: Bubbletea model for the interactive clinic
// ABOUTME: Routes keys by router mode and session phase; the router holds all game state
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
)

// Options tunes the display
type Options struct {
	ShowVisibility bool
}

// Model is the bubbletea model. It only tracks cursors and transient UI state.
type Model struct {
	router *core.Router
	opts   Options
	keys   keyMap
	help   help.Model
	meter  progress.Model

	dashCursor   int
	cursor       int // question row, or option row within the focused group
	group        int // focused group in diagnosis and prescription
	confirmReset bool
	status       string
	width        int
}

// New builds a model over a router
func New(router *core.Router, opts Options) Model {
	return Model{
		router: router,
		opts:   opts,
		keys:   defaultKeys(),
		help:   help.New(),
		meter:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		m.status = ""

		switch m.router.Mode() {
		case core.ModeWelcome:
			return m.updateWelcome(msg)
		case core.ModeDashboard:
			return m.updateDashboard(msg)
		case core.ModeGame:
			return m.updateGame(msg)
		}
	}
	return m, nil
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.router.Begin()
		m.dashCursor = 0
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.router.Reset()
			m.confirmReset = false
			m.dashCursor = 0
			m.status = "Progress cleared."
		case key.Matches(msg, m.keys.No):
			m.confirmReset = false
		}
		return m, nil
	}

	entries := m.router.Dashboard()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.dashCursor > 0 {
			m.dashCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.dashCursor < len(entries)-1 {
			m.dashCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(entries) == 0 {
			return m, nil
		}
		if _, err := m.router.Start(entries[m.dashCursor].CaseID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.cursor, m.group = 0, 0
	case key.Matches(msg, m.keys.Reset):
		m.confirmReset = true
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.router.Session()
	if s == nil {
		m.router.Exit()
		return m, nil
	}
	if key.Matches(msg, m.keys.Abandon) {
		m.router.Exit()
		return m, nil
	}

	switch s.Phase().(type) {
	case core.Consultation:
		return m.updateConsultation(msg, s)
	case core.Diagnosis, core.Prescription:
		return m.updateChoices(msg, s)
	case core.Feedback:
		if key.Matches(msg, m.keys.Enter) {
			m.router.Exit()
		}
	}
	return m, nil
}

func (m Model) updateConsultation(msg tea.KeyMsg, s *core.Session) (tea.Model, tea.Cmd) {
	questions := s.Case().Questions

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(questions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.ask(s, m.cursor)
	case key.Matches(msg, m.keys.Number):
		idx := int(msg.String()[0] - '1')
		if idx < len(questions) {
			m.cursor = idx
			m.ask(s, idx)
		}
	case key.Matches(msg, m.keys.Submit):
		m.submit(s)
	}
	return m, nil
}

func (m *Model) ask(s *core.Session, idx int) {
	questions := s.Case().Questions
	if idx < 0 || idx >= len(questions) {
		return
	}
	if _, err := s.Ask(questions[idx].ID); err != nil {
		m.status = err.Error()
	}
}

func (m Model) updateChoices(msg tea.KeyMsg, s *core.Session) (tea.Model, tea.Cmd) {
	groups := choiceGroups(s)
	if len(groups) == 0 {
		return m, nil
	}
	g := groups[m.group]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(g.labels)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Next):
		m.focusGroup(groups, (m.group+1)%len(groups))
	case key.Matches(msg, m.keys.Prev):
		m.focusGroup(groups, (m.group+len(groups)-1)%len(groups))
	case key.Matches(msg, m.keys.Select):
		if err := applyChoice(s, m.group, m.cursor); err != nil {
			m.status = err.Error()
			return m, nil
		}
		// Move focus along once a group is answered.
		if m.group < len(groups)-1 {
			m.focusGroup(groups, m.group+1)
		}
	case key.Matches(msg, m.keys.Submit):
		m.submit(s)
	}
	return m, nil
}

// focusGroup moves to a group, placing the cursor on its current selection
func (m *Model) focusGroup(groups []choiceGroup, idx int) {
	m.group = idx
	m.cursor = 0
	if sel := groups[idx].selected; sel >= 0 {
		m.cursor = sel
	}
}

func (m *Model) submit(s *core.Session) {
	if !s.CanSubmit() {
		m.status = submitHint(s.PhaseName())
		return
	}
	if _, err := m.router.Submit(); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor, m.group = 0, 0
}

func submitHint(p core.PhaseName) string {
	switch p {
	case core.PhaseConsultation:
		return "Ask at least one question before moving on."
	case core.PhaseDiagnosis:
		return "Choose an orientation, a risk level and a stakeholder first."
	case core.PhasePrescription:
		return "Pick one option in each of the three categories first."
	}
	return ""
}

// choiceGroup is one single-choice list on the diagnosis or prescription screen
type choiceGroup struct {
	title    string
	labels   []string
	details  []string // optional line under each label
	selected int
}

func choiceGroups(s *core.Session) []choiceGroup {
	switch p := s.Phase().(type) {
	case core.Diagnosis:
		diag := choiceGroup{title: "Orientation", selected: -1}
		for i, d := range models.DiagnosisTypes {
			diag.labels = append(diag.labels, d.Label())
			diag.details = append(diag.details, d.Description())
			if d == p.Diagnosis {
				diag.selected = i
			}
		}
		risk := choiceGroup{title: "Risk level", selected: -1}
		for i, r := range models.RiskLevels {
			risk.labels = append(risk.labels, r.Label())
			if r == p.Risk {
				risk.selected = i
			}
		}
		who := choiceGroup{title: "Consult first", selected: -1}
		for i, st := range models.Stakeholders {
			who.labels = append(who.labels, st.Label())
			if st == p.Stakeholder {
				who.selected = i
			}
		}
		return []choiceGroup{diag, risk, who}

	case core.Prescription:
		c := s.Case()
		groups := make([]choiceGroup, 0, len(models.PrescriptionCategories))
		for _, cat := range models.PrescriptionCategories {
			g := choiceGroup{title: cat.Label(), selected: p.Selection(cat)}
			for _, o := range c.PrescriptionOptions.For(cat) {
				g.labels = append(g.labels, o.Text)
			}
			groups = append(groups, g)
		}
		return groups
	}
	return nil
}

func applyChoice(s *core.Session, group, idx int) error {
	switch s.Phase().(type) {
	case core.Diagnosis:
		switch group {
		case 0:
			return s.SelectDiagnosis(models.DiagnosisTypes[idx])
		case 1:
			return s.SelectRisk(models.RiskLevels[idx])
		case 2:
			return s.SelectStakeholder(models.Stakeholders[idx])
		}
	case core.Prescription:
		return s.SelectPrescription(models.PrescriptionCategories[group], idx)
	}
	return nil
}

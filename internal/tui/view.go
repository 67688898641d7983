// ABOUTME: Renderers for each screen and session phase
// ABOUTME: Every screen starts with the header showing the title and aggregate score
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	var help []key.Binding
	switch m.router.Mode() {
	case core.ModeWelcome:
		b.WriteString(m.viewWelcome())
		help = []key.Binding{m.keys.Enter, m.keys.Quit}
	case core.ModeDashboard:
		b.WriteString(m.viewDashboard())
		if m.confirmReset {
			help = []key.Binding{m.keys.Yes, m.keys.No}
		} else {
			help = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Reset, m.keys.Quit}
		}
	case core.ModeGame:
		body, keys := m.viewGame()
		b.WriteString(body)
		help = keys
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(bindings(help)))
	return b.String()
}

func (m Model) viewHeader() string {
	h := m.router.Header()
	return styleHeader.Render(h.Title) + "  " + styleScore.Render(fmt.Sprintf("Score: %d", h.Score))
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Welcome aboard."))
	b.WriteString("\n\n")
	b.WriteString("Colleagues bring you requests to \"put AI\" into their work.\n")
	b.WriteString("For each case: question the agent, diagnose the request,\n")
	b.WriteString("then prescribe what to do next. Scores add up across cases.\n\n")
	for _, d := range []models.Difficulty{models.DifficultyCalm, models.DifficultyHigh, models.DifficultyStorm} {
		b.WriteString(fmt.Sprintf("  %-11s %s\n", d.Label(), styleSubtle.Render(d.Description())))
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("Press enter to open the case board."))
	return b.String()
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Case board"))
	b.WriteString("\n\n")

	entries := m.router.Dashboard()
	if len(entries) == 0 {
		b.WriteString("No cases in the catalog.\n")
	}
	for i, e := range entries {
		cursor := " "
		if i == m.dashCursor {
			cursor = styleCursor.Render(">")
		}
		check := "[ ]"
		score := styleSubtle.Render("   -")
		if e.Completed {
			check = styleDone.Render("[✓]")
			score = fmt.Sprintf("%4d", e.Score.Total)
		}
		line := fmt.Sprintf("%s %s %-11s %-40s %s", cursor, check, e.DifficultyLabel, e.Title, score)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.confirmReset {
		b.WriteString("\n")
		b.WriteString(styleError.Render("Reset all progress? Scores cannot be recovered. (y/n)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSteps(current core.PhaseName) string {
	steps := []core.PhaseName{core.PhaseConsultation, core.PhaseDiagnosis, core.PhasePrescription}
	parts := make([]string, 0, len(steps))
	for _, p := range steps {
		label := fmt.Sprintf("%d %s", p.Step(), p.Label())
		if p.Step() <= current.Step() {
			parts = append(parts, styleStepOn.Render(label))
		} else {
			parts = append(parts, styleStepOff.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewGame() (string, []key.Binding) {
	s := m.router.Session()
	if s == nil {
		return "", nil
	}
	c := s.Case()

	var b strings.Builder
	b.WriteString(styleTitle.Render(c.Title))
	b.WriteString("  ")
	b.WriteString(styleSubtle.Render(c.Difficulty.Label()))
	b.WriteString("\n")
	if !s.Finished() {
		b.WriteString(m.viewSteps(s.PhaseName()))
		b.WriteString("\n\n")
	}

	switch p := s.Phase().(type) {
	case core.Consultation:
		b.WriteString(m.viewConsultation(c, p))
		return b.String(), []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Number, m.keys.Submit, m.keys.Abandon}
	case core.Diagnosis, core.Prescription:
		b.WriteString(m.viewChoices(s))
		return b.String(), []key.Binding{m.keys.Up, m.keys.Down, m.keys.Next, m.keys.Select, m.keys.Submit, m.keys.Abandon}
	case core.Feedback:
		b.WriteString(m.viewFeedback(c, p))
		return b.String(), []key.Binding{m.keys.Enter}
	}
	return b.String(), nil
}

func (m Model) viewConsultation(c models.Case, p core.Consultation) string {
	var b strings.Builder

	card := fmt.Sprintf("%s, %s\n\n%s", styleTitle.Render(c.AgentName), c.AgentRole, c.Context)
	if m.width > 8 {
		b.WriteString(styleCard.Width(m.width - 4).Render(card))
	} else {
		b.WriteString(styleCard.Render(card))
	}
	b.WriteString("\n\n")

	if m.opts.ShowVisibility {
		b.WriteString("Visibility ")
		b.WriteString(m.meter.ViewAs(p.Visibility / core.MaxVisibility))
		b.WriteString("\n\n")
	}

	for i, q := range c.Questions {
		cursor := " "
		if i == m.cursor {
			cursor = styleCursor.Render(">")
		}
		text := q.Text
		if p.HasAsked(q.ID) {
			text = styleSubtle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", cursor, i+1, text))
		if p.HasAsked(q.ID) {
			b.WriteString(styleAnswer.Render("» " + q.Answer))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewChoices(s *core.Session) string {
	var b strings.Builder
	for gi, g := range choiceGroups(s) {
		title := g.title
		if gi == m.group {
			title = styleCursor.Render(title)
		}
		b.WriteString(title)
		b.WriteString("\n")
		for oi, label := range g.labels {
			cursor := " "
			if gi == m.group && oi == m.cursor {
				cursor = styleCursor.Render(">")
			}
			mark := "( )"
			if oi == g.selected {
				mark = styleSelected.Render("(•)")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", cursor, mark, label))
			if oi < len(g.details) && g.details[oi] != "" {
				b.WriteString("        ")
				b.WriteString(styleSubtle.Render(g.details[oi]))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewFeedback(c models.Case, p core.Feedback) string {
	var b strings.Builder
	style := tierStyle(p.Tier)

	b.WriteString(style.Render(fmt.Sprintf("%d / 100  %s", p.Score.Total, p.Tier.Headline())))
	b.WriteString("\n\n")
	b.WriteString(c.Feedback.ForTier(p.Tier))
	b.WriteString("\n\n")
	note := styleTitle.Render("Expert note") + "\n" + c.Feedback.ExpertNote
	if m.width > 8 {
		b.WriteString(styleCard.Width(m.width - 4).Render(note))
	} else {
		b.WriteString(styleCard.Render(note))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Exploration  %3d\n", p.Score.Exploration))
	b.WriteString(fmt.Sprintf("  Diagnosis    %3d\n", p.Score.Diagnosis))
	b.WriteString(fmt.Sprintf("  Prescription %3d\n", p.Score.Prescription))
	return b.String()
}

// ABOUTME: Lipgloss styles for the terminal UI
// ABOUTME: Colors use the 16-color palette so the clinic reads on any terminal
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/usecase-clinic/internal/models"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1)
	styleScore    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleDone     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleAnswer   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).PaddingLeft(4)
	styleCard     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("6")).Padding(0, 1)
	styleStepOn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")).Padding(0, 1)
	styleStepOff  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

// tierStyle colors a feedback tier
func tierStyle(t models.Tier) lipgloss.Style {
	switch t {
	case models.TierSuccess:
		return styleSelected
	case models.TierPartial:
		return styleWarn
	}
	return styleError
}

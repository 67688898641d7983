// ABOUTME: Response shapes returned by the MCP tools
// ABOUTME: Briefings never expose which prescription option is correct
package mcp

import (
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
)

type questionView struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Asked bool   `json:"asked"`
}

type choiceView struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type briefing struct {
	CaseID         string              `json:"case_id"`
	Title          string              `json:"title"`
	Difficulty     string              `json:"difficulty"`
	AgentName      string              `json:"agent_name"`
	AgentRole      string              `json:"agent_role"`
	Context        string              `json:"context"`
	Questions      []questionView      `json:"questions"`
	DiagnosisTypes []choiceView        `json:"diagnosis_choices"`
	RiskLevels     []choiceView        `json:"risk_choices"`
	Stakeholders   []choiceView        `json:"stakeholder_choices"`
	Prescription   map[string][]string `json:"prescription_options"`
}

func newBriefing(s *core.Session) briefing {
	c := s.Case()
	snap := s.Snapshot()

	asked := make(map[string]bool, len(snap.Revealed))
	for _, q := range snap.Revealed {
		asked[q.ID] = true
	}

	b := briefing{
		CaseID:       c.ID,
		Title:        c.Title,
		Difficulty:   c.Difficulty.Label(),
		AgentName:    c.AgentName,
		AgentRole:    c.AgentRole,
		Context:      c.Context,
		Prescription: make(map[string][]string, len(models.PrescriptionCategories)),
	}
	for _, q := range c.Questions {
		b.Questions = append(b.Questions, questionView{ID: q.ID, Text: q.Text, Asked: asked[q.ID]})
	}
	for _, d := range models.DiagnosisTypes {
		b.DiagnosisTypes = append(b.DiagnosisTypes, choiceView{Value: string(d), Label: d.Label(), Description: d.Description()})
	}
	for _, r := range models.RiskLevels {
		b.RiskLevels = append(b.RiskLevels, choiceView{Value: string(r), Label: r.Label()})
	}
	for _, st := range models.Stakeholders {
		b.Stakeholders = append(b.Stakeholders, choiceView{Value: string(st), Label: st.Label()})
	}
	for _, cat := range models.PrescriptionCategories {
		opts := c.PrescriptionOptions.For(cat)
		texts := make([]string, len(opts))
		for i, o := range opts {
			texts[i] = o.Text
		}
		b.Prescription[string(cat)] = texts
	}
	return b
}

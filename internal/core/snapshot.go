// ABOUTME: JSON-serializable snapshots of session state for renderers and tool responses
// ABOUTME: Snapshots are copies; mutating one never affects the session it came from
package core

import (
	"time"

	"github.com/harper/usecase-clinic/internal/models"
)

// PhaseScores records the scores earned so far; unset phases are nil
type PhaseScores struct {
	Exploration  *int `json:"exploration,omitempty"`
	Diagnosis    *int `json:"diagnosis,omitempty"`
	Prescription *int `json:"prescription,omitempty"`
}

// DiagnosisSelection mirrors the diagnosis phase choices
type DiagnosisSelection struct {
	Diagnosis   models.DiagnosisType `json:"diagnosis,omitempty"`
	Risk        models.RiskLevel     `json:"risk,omitempty"`
	Stakeholder models.Stakeholder   `json:"stakeholder,omitempty"`
}

// SessionSnapshot is everything a renderer needs to draw a session
type SessionSnapshot struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	CaseTitle string    `json:"case_title"`
	StartedAt time.Time `json:"started_at"`
	Phase     PhaseName `json:"phase"`
	Step      int       `json:"step"`
	CanSubmit bool      `json:"can_submit"`

	Scores PhaseScores `json:"scores"`

	// Consultation
	Revealed   []models.Question `json:"revealed,omitempty"`
	Visibility float64           `json:"visibility"`

	// Diagnosis
	DiagnosisSelection *DiagnosisSelection `json:"diagnosis_selection,omitempty"`

	// Prescription, option indexes keyed by category, -1 when unchosen
	PrescriptionSelection map[models.PrescriptionCategory]int `json:"prescription_selection,omitempty"`

	// Feedback
	Result   *models.CaseScore `json:"result,omitempty"`
	Tier     models.Tier       `json:"tier,omitempty"`
	Headline string            `json:"headline,omitempty"`
	Verdict  string            `json:"verdict,omitempty"`
	Expert   string            `json:"expert_note,omitempty"`
}

func intPtr(v int) *int { return &v }

// Snapshot copies the session into a renderer-friendly value
func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		ID:        s.id,
		CaseID:    s.c.ID,
		CaseTitle: s.c.Title,
		StartedAt: s.startedAt,
		Phase:     s.phase.Name(),
		Step:      s.phase.Name().Step(),
		CanSubmit: s.CanSubmit(),
	}

	switch p := s.phase.(type) {
	case Consultation:
		for _, id := range p.Asked {
			if q, ok := s.c.Question(id); ok {
				snap.Revealed = append(snap.Revealed, q)
			}
		}
		snap.Visibility = p.Visibility
	case Diagnosis:
		snap.Scores.Exploration = intPtr(p.Exploration)
		snap.DiagnosisSelection = &DiagnosisSelection{
			Diagnosis:   p.Diagnosis,
			Risk:        p.Risk,
			Stakeholder: p.Stakeholder,
		}
	case Prescription:
		snap.Scores.Exploration = intPtr(p.Exploration)
		snap.Scores.Diagnosis = intPtr(p.Diagnosis)
		snap.PrescriptionSelection = p.Selections()
	case Feedback:
		score := p.Score
		snap.Scores = PhaseScores{
			Exploration:  intPtr(score.Exploration),
			Diagnosis:    intPtr(score.Diagnosis),
			Prescription: intPtr(score.Prescription),
		}
		snap.Result = &score
		snap.Tier = p.Tier
		snap.Headline = p.Tier.Headline()
		snap.Verdict = s.c.Feedback.ForTier(p.Tier)
		snap.Expert = s.c.Feedback.ExpertNote
	}
	return snap
}

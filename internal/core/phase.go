// ABOUTME: The four session phases as a closed set of variant types
// ABOUTME: Each variant carries only the data that phase needs plus scores already earned
package core

import "github.com/harper/usecase-clinic/internal/models"

// PhaseName identifies a phase on the wire and in logs
type PhaseName string

const (
	PhaseConsultation PhaseName = "consultation"
	PhaseDiagnosis    PhaseName = "diagnosis"
	PhasePrescription PhaseName = "prescription"
	PhaseFeedback     PhaseName = "feedback"
)

// Step returns the 1-based position of the phase
func (p PhaseName) Step() int {
	switch p {
	case PhaseConsultation:
		return 1
	case PhaseDiagnosis:
		return 2
	case PhasePrescription:
		return 3
	case PhaseFeedback:
		return 4
	}
	return 0
}

// Label returns the display title of the phase
func (p PhaseName) Label() string {
	switch p {
	case PhaseConsultation:
		return "Consultation"
	case PhaseDiagnosis:
		return "Diagnosis"
	case PhasePrescription:
		return "Prescription"
	case PhaseFeedback:
		return "Feedback"
	}
	return string(p)
}

// Phase is implemented only by Consultation, Diagnosis, Prescription and Feedback
type Phase interface {
	Name() PhaseName
	clone() Phase
}

// Consultation is phase 1: the user asks questions to reveal answers
type Consultation struct {
	Asked      []string // question IDs in the order they were asked
	Visibility float64  // display-only meter, 0-100
}

// Name implements Phase
func (Consultation) Name() PhaseName { return PhaseConsultation }

func (c Consultation) clone() Phase {
	c.Asked = append([]string(nil), c.Asked...)
	return c
}

// HasAsked reports whether a question was already revealed
func (c Consultation) HasAsked(id string) bool {
	for _, a := range c.Asked {
		if a == id {
			return true
		}
	}
	return false
}

func (c Consultation) askedSet() map[string]bool {
	set := make(map[string]bool, len(c.Asked))
	for _, a := range c.Asked {
		set[a] = true
	}
	return set
}

// Diagnosis is phase 2: three single-choice selections
type Diagnosis struct {
	Exploration int

	Diagnosis   models.DiagnosisType
	Risk        models.RiskLevel
	Stakeholder models.Stakeholder
}

// Name implements Phase
func (Diagnosis) Name() PhaseName { return PhaseDiagnosis }

func (d Diagnosis) clone() Phase { return d }

// Complete reports whether all three selections are set
func (d Diagnosis) Complete() bool {
	return d.Diagnosis != "" && d.Risk != "" && d.Stakeholder != ""
}

// Prescription is phase 3: one option index per category, NoSelection until chosen
type Prescription struct {
	Exploration int
	Diagnosis   int

	Reformulation int
	Vigilance     int
	NextSteps     int
}

// Name implements Phase
func (Prescription) Name() PhaseName { return PhasePrescription }

func (p Prescription) clone() Phase { return p }

func newPrescription(exploration, diagnosis int) Prescription {
	return Prescription{
		Exploration:   exploration,
		Diagnosis:     diagnosis,
		Reformulation: NoSelection,
		Vigilance:     NoSelection,
		NextSteps:     NoSelection,
	}
}

// Selection returns the chosen index for a category
func (p Prescription) Selection(c models.PrescriptionCategory) int {
	switch c {
	case models.CategoryReformulation:
		return p.Reformulation
	case models.CategoryVigilance:
		return p.Vigilance
	case models.CategoryNextSteps:
		return p.NextSteps
	}
	return NoSelection
}

func (p Prescription) with(c models.PrescriptionCategory, idx int) Prescription {
	switch c {
	case models.CategoryReformulation:
		p.Reformulation = idx
	case models.CategoryVigilance:
		p.Vigilance = idx
	case models.CategoryNextSteps:
		p.NextSteps = idx
	}
	return p
}

// Selections returns the chosen indexes keyed by category
func (p Prescription) Selections() map[models.PrescriptionCategory]int {
	return map[models.PrescriptionCategory]int{
		models.CategoryReformulation: p.Reformulation,
		models.CategoryVigilance:     p.Vigilance,
		models.CategoryNextSteps:     p.NextSteps,
	}
}

// Complete reports whether every category has a selection
func (p Prescription) Complete() bool {
	return p.Reformulation != NoSelection && p.Vigilance != NoSelection && p.NextSteps != NoSelection
}

// Feedback is phase 4, terminal: the committed score and its tier
type Feedback struct {
	Score models.CaseScore
	Tier  models.Tier
}

// Name implements Phase
func (Feedback) Name() PhaseName { return PhaseFeedback }

func (f Feedback) clone() Phase { return f }

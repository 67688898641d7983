// ABOUTME: Session state machine driving one case through its four phases
// ABOUTME: Failed actions leave the session untouched; a successful Submit advances one phase
package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/usecase-clinic/internal/models"
)

// Session is a single playthrough of one case
type Session struct {
	id        string
	c         models.Case
	phase     Phase
	startedAt time.Time
}

// NewSession starts a case at the consultation phase
func NewSession(c models.Case) *Session {
	return &Session{
		id:        uuid.New().String(),
		c:         c.Clone(),
		phase:     Consultation{},
		startedAt: time.Now(),
	}
}

// ID returns the session identity
func (s *Session) ID() string { return s.id }

// Case returns a copy of the case being played
func (s *Session) Case() models.Case { return s.c.Clone() }

// CaseID returns the ID of the case being played
func (s *Session) CaseID() string { return s.c.ID }

// StartedAt returns when the session was created
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Phase returns a copy of the current phase
func (s *Session) Phase() Phase { return s.phase.clone() }

// PhaseName returns the name of the current phase
func (s *Session) PhaseName() PhaseName { return s.phase.Name() }

// Finished reports whether the session reached feedback
func (s *Session) Finished() bool {
	_, ok := s.phase.(Feedback)
	return ok
}

// Ask reveals a question's answer. Asking the same question twice changes nothing.
func (s *Session) Ask(questionID string) (models.Question, error) {
	p, ok := s.phase.(Consultation)
	if !ok {
		return models.Question{}, fmt.Errorf("%w: cannot ask questions during %s", ErrWrongPhase, s.phase.Name())
	}
	q, ok := s.c.Question(questionID)
	if !ok {
		return models.Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if p.HasAsked(questionID) {
		return q, nil
	}

	next := p.clone().(Consultation)
	next.Asked = append(next.Asked, questionID)
	next.Visibility = VisibilityAfter(p.Visibility, q.Relevance)
	s.phase = next
	return q, nil
}

func (s *Session) diagnosis() (Diagnosis, error) {
	p, ok := s.phase.(Diagnosis)
	if !ok {
		return Diagnosis{}, fmt.Errorf("%w: diagnosis selections are not open during %s", ErrWrongPhase, s.phase.Name())
	}
	return p, nil
}

// SelectDiagnosis sets the diagnosis type
func (s *Session) SelectDiagnosis(d models.DiagnosisType) error {
	p, err := s.diagnosis()
	if err != nil {
		return err
	}
	if !d.IsValid() {
		return fmt.Errorf("%w: diagnosis %q", ErrInvalidChoice, d)
	}
	p.Diagnosis = d
	s.phase = p
	return nil
}

// SelectRisk sets the risk level
func (s *Session) SelectRisk(r models.RiskLevel) error {
	p, err := s.diagnosis()
	if err != nil {
		return err
	}
	if !r.IsValid() {
		return fmt.Errorf("%w: risk %q", ErrInvalidChoice, r)
	}
	p.Risk = r
	s.phase = p
	return nil
}

// SelectStakeholder sets the stakeholder to consult
func (s *Session) SelectStakeholder(st models.Stakeholder) error {
	p, err := s.diagnosis()
	if err != nil {
		return err
	}
	if !st.IsValid() {
		return fmt.Errorf("%w: stakeholder %q", ErrInvalidChoice, st)
	}
	p.Stakeholder = st
	s.phase = p
	return nil
}

// SelectPrescription chooses an option index within one category
func (s *Session) SelectPrescription(cat models.PrescriptionCategory, index int) error {
	p, ok := s.phase.(Prescription)
	if !ok {
		return fmt.Errorf("%w: prescription selections are not open during %s", ErrWrongPhase, s.phase.Name())
	}
	if !cat.IsValid() {
		return fmt.Errorf("%w: category %q", ErrInvalidChoice, cat)
	}
	opts := s.c.PrescriptionOptions.For(cat)
	if index < 0 || index >= len(opts) {
		return fmt.Errorf("%w: %s option %d out of range [0,%d)", ErrInvalidChoice, cat, index, len(opts))
	}
	s.phase = p.with(cat, index)
	return nil
}

// CanSubmit reports whether the current phase's guards hold
func (s *Session) CanSubmit() bool {
	_, err := s.phaseScore()
	return err == nil
}

// phaseScore checks the guards of the current phase and scores it
func (s *Session) phaseScore() (int, error) {
	switch p := s.phase.(type) {
	case Consultation:
		if len(p.Asked) == 0 {
			return 0, ErrNothingAsked
		}
		return ExplorationScore(&s.c, p.askedSet()), nil
	case Diagnosis:
		if !p.Complete() {
			return 0, fmt.Errorf("%w: diagnosis, risk and stakeholder are all required", ErrIncompleteSelection)
		}
		return DiagnosisScore(&s.c, p.Diagnosis, p.Risk, p.Stakeholder), nil
	case Prescription:
		if !p.Complete() {
			return 0, fmt.Errorf("%w: choose one option in every category", ErrIncompleteSelection)
		}
		return PrescriptionScore(&s.c, p.Selections()), nil
	case Feedback:
		return 0, ErrSessionFinished
	}
	return 0, fmt.Errorf("unknown phase %T", s.phase)
}

// advance moves from one phase to the next, carrying the score just earned
func advance(from Phase, score int) (Phase, error) {
	switch p := from.(type) {
	case Consultation:
		return Diagnosis{Exploration: score}, nil
	case Diagnosis:
		return newPrescription(p.Exploration, score), nil
	case Prescription:
		final := FinalScore(p.Exploration, p.Diagnosis, score)
		return Feedback{Score: final, Tier: models.TierFor(final.Total)}, nil
	case Feedback:
		return nil, ErrSessionFinished
	}
	return nil, fmt.Errorf("unknown phase %T", from)
}

// Submit scores the current phase and advances. It returns the phase score.
func (s *Session) Submit() (int, error) {
	score, err := s.phaseScore()
	if err != nil {
		return 0, fmt.Errorf("submit %s: %w", s.phase.Name(), err)
	}
	next, err := advance(s.phase, score)
	if err != nil {
		return 0, fmt.Errorf("submit %s: %w", s.phase.Name(), err)
	}
	s.phase = next
	return score, nil
}

// Result returns the final score once the session is in feedback
func (s *Session) Result() (models.CaseScore, bool) {
	f, ok := s.phase.(Feedback)
	if !ok {
		return models.CaseScore{}, false
	}
	return f.Score, true
}

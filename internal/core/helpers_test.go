// ABOUTME: Shared fixtures for core tests
// ABOUTME: A small in-memory case table with a known answer key

package core

import "github.com/harper/usecase-clinic/internal/models"

func testCase(id string) models.Case {
	return models.Case{
		ID:         id,
		Title:      "Case " + id,
		Difficulty: models.DifficultyStorm,
		AgentName:  "Ana",
		AgentRole:  "HR",
		Context:    "We want to screen every CV with AI.",
		Questions: []models.Question{
			{ID: "q1", Text: "Which data?", Answer: "Candidate CVs.", IsKey: true, Relevance: 10},
			{ID: "q2", Text: "Who decides?", Answer: "The model.", IsKey: true, Relevance: 8},
			{ID: "q3", Text: "Volume?", Answer: "Thousands.", IsKey: true, Relevance: 6},
			{ID: "q4", Text: "Deadline?", Answer: "Yesterday.", IsKey: false, Relevance: 2},
		},
		ExpectedDiagnosis:      models.DiagnosisAIProject,
		ExpectedRisk:           models.RiskHigh,
		RecommendedStakeholder: models.StakeholderDPO,
		PrescriptionOptions: models.PrescriptionOptions{
			Reformulation: []models.PrescriptionOption{{Text: "wrong"}, {Text: "right", Correct: true}},
			Vigilance:     []models.PrescriptionOption{{Text: "right", Correct: true}, {Text: "wrong"}},
			NextSteps:     []models.PrescriptionOption{{Text: "wrong"}, {Text: "also wrong"}, {Text: "right", Correct: true}},
		},
		Feedback: models.Feedback{
			Success:    "great",
			Partial:    "okay",
			Failure:    "bad",
			ExpertNote: "note",
		},
	}
}

type caseTable []models.Case

func (t caseTable) Get(id string) (models.Case, bool) {
	for _, c := range t {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Case{}, false
}

func (t caseTable) Cases() []models.Case {
	out := make([]models.Case, len(t))
	for i, c := range t {
		out[i] = c.Clone()
	}
	return out
}

// perfectRun plays a session of testCase with every right answer
func perfectRun(s *Session) error {
	for _, q := range []string{"q1", "q2", "q3"} {
		if _, err := s.Ask(q); err != nil {
			return err
		}
	}
	if _, err := s.Submit(); err != nil {
		return err
	}
	if err := s.SelectDiagnosis(models.DiagnosisAIProject); err != nil {
		return err
	}
	if err := s.SelectRisk(models.RiskHigh); err != nil {
		return err
	}
	if err := s.SelectStakeholder(models.StakeholderDPO); err != nil {
		return err
	}
	if _, err := s.Submit(); err != nil {
		return err
	}
	for cat, idx := range map[models.PrescriptionCategory]int{
		models.CategoryReformulation: 1,
		models.CategoryVigilance:     0,
		models.CategoryNextSteps:     2,
	} {
		if err := s.SelectPrescription(cat, idx); err != nil {
			return err
		}
	}
	_, err := s.Submit()
	return err
}

// ABOUTME: Drives answer sheet attempts through the router like a user would
// ABOUTME: An attempt that cannot finish is abandoned so progress never records it
package script

import (
	"context"
	"fmt"

	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
)

// AttemptResult is the outcome of one attempt
type AttemptResult struct {
	Index  int               `json:"index"`
	CaseID string            `json:"case_id"`
	Score  *models.CaseScore `json:"score,omitempty"`
	Tier   models.Tier       `json:"tier,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Report summarizes a whole sheet
type Report struct {
	Attempts  []AttemptResult `json:"attempts"`
	Completed []string        `json:"completed"`
	Aggregate int             `json:"aggregate"`
	Failed    int             `json:"failed"`
}

// Observer is notified after each attempt
type Observer func(AttemptResult)

// Play runs every attempt in order. Per-attempt failures are recorded in the report;
// only context cancellation stops the run early.
func Play(ctx context.Context, r *core.Router, sheet *Sheet, observe Observer) (*Report, error) {
	r.Begin()
	report := &Report{}

	for i, a := range sheet.Attempts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := AttemptResult{Index: i + 1, CaseID: a.Case}
		score, err := playOne(r, a)
		if err != nil {
			res.Error = err.Error()
			report.Failed++
		} else {
			res.Score = &score
			res.Tier = models.TierFor(score.Total)
		}
		r.Exit()

		report.Attempts = append(report.Attempts, res)
		if observe != nil {
			observe(res)
		}
	}

	snap := r.Progress().Snapshot()
	report.Completed = snap.Completed
	report.Aggregate = snap.Aggregate
	return report, nil
}

func playOne(r *core.Router, a Attempt) (models.CaseScore, error) {
	s, err := r.Start(a.Case)
	if err != nil {
		return models.CaseScore{}, err
	}

	for _, q := range a.Ask {
		if _, err := s.Ask(q); err != nil {
			return models.CaseScore{}, err
		}
	}
	if _, err := r.Submit(); err != nil {
		return models.CaseScore{}, err
	}

	if a.Diagnosis != "" {
		if err := s.SelectDiagnosis(a.Diagnosis); err != nil {
			return models.CaseScore{}, err
		}
	}
	if a.Risk != "" {
		if err := s.SelectRisk(a.Risk); err != nil {
			return models.CaseScore{}, err
		}
	}
	if a.Stakeholder != "" {
		if err := s.SelectStakeholder(a.Stakeholder); err != nil {
			return models.CaseScore{}, err
		}
	}
	if _, err := r.Submit(); err != nil {
		return models.CaseScore{}, err
	}

	for _, cat := range models.PrescriptionCategories {
		idx := a.Prescription.For(cat)
		if idx == nil {
			continue
		}
		if err := s.SelectPrescription(cat, *idx); err != nil {
			return models.CaseScore{}, err
		}
	}
	if _, err := r.Submit(); err != nil {
		return models.CaseScore{}, err
	}

	result, ok := s.Result()
	if !ok {
		return models.CaseScore{}, fmt.Errorf("case %s did not reach feedback", a.Case)
	}
	return result, nil
}

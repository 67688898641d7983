// ABOUTME: Tests for scripted playthroughs against the bundled catalog
// ABOUTME: Verifies scores match manual sessions and that failed attempts are not recorded

package script

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
)

func newRouter(t *testing.T) *core.Router {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return core.NewRouter("Clinic", cat, core.WithLogger(log.New(io.Discard)))
}

func idx(i int) *int { return &i }

func firstOptions() Prescription {
	return Prescription{Reformulation: idx(0), Vigilance: idx(0), NextSteps: idx(0)}
}

func TestPlay_PerfectRun(t *testing.T) {
	r := newRouter(t)
	sheet := &Sheet{Attempts: []Attempt{{
		Case:         "c1",
		Ask:          []string{"q1", "q2", "q3"},
		Diagnosis:    models.DiagnosisAIStandard,
		Risk:         models.RiskLow,
		Stakeholder:  models.StakeholderAILab,
		Prescription: firstOptions(),
	}}}

	var seen []AttemptResult
	report, err := Play(context.Background(), r, sheet, func(res AttemptResult) {
		seen = append(seen, res)
	})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(seen) != 1 {
		t.Errorf("observer called %d times, want 1", len(seen))
	}
	got := report.Attempts[0]
	want := models.CaseScore{Exploration: 100, Diagnosis: 100, Prescription: 100, Total: 100}
	if got.Score == nil || *got.Score != want {
		t.Errorf("Score = %+v, want %+v", got.Score, want)
	}
	if got.Tier != models.TierSuccess {
		t.Errorf("Tier = %q, want success", got.Tier)
	}
	if report.Aggregate != 100 || report.Failed != 0 {
		t.Errorf("Aggregate/Failed = %d/%d, want 100/0", report.Aggregate, report.Failed)
	}
	if r.Mode() != core.ModeDashboard {
		t.Errorf("router Mode() = %q, want dashboard", r.Mode())
	}
}

func TestPlay_MatchesManualSession(t *testing.T) {
	attempt := Attempt{
		Case:         "c5",
		Ask:          []string{"q1"},
		Diagnosis:    models.DiagnosisAIProject,
		Risk:         models.RiskLow,
		Stakeholder:  models.StakeholderDPO,
		Prescription: Prescription{Reformulation: idx(0), Vigilance: idx(1), NextSteps: idx(0)},
	}

	report, err := Play(context.Background(), newRouter(t), &Sheet{Attempts: []Attempt{attempt}}, nil)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	cat, _ := catalog.Default()
	c, _ := cat.Get("c5")
	s := core.NewSession(c)
	_, _ = s.Ask("q1")
	_, _ = s.Submit()
	_ = s.SelectDiagnosis(models.DiagnosisAIProject)
	_ = s.SelectRisk(models.RiskLow)
	_ = s.SelectStakeholder(models.StakeholderDPO)
	_, _ = s.Submit()
	_ = s.SelectPrescription(models.CategoryReformulation, 0)
	_ = s.SelectPrescription(models.CategoryVigilance, 1)
	_ = s.SelectPrescription(models.CategoryNextSteps, 0)
	_, _ = s.Submit()
	manual, ok := s.Result()
	if !ok {
		t.Fatal("manual session did not finish")
	}

	if got := report.Attempts[0].Score; got == nil || *got != manual {
		t.Errorf("scripted score = %+v, manual = %+v", got, manual)
	}
	// 50*0.2 + 20*0.4 + 67*0.4 = 44.8
	if manual.Diagnosis != 20 || manual.Total != 45 {
		t.Errorf("manual = %+v, want diagnosis 20 total 45", manual)
	}
}

func TestPlay_IncompleteAttemptNotRecorded(t *testing.T) {
	r := newRouter(t)
	sheet := &Sheet{Attempts: []Attempt{
		{Case: "c2", Ask: []string{"q1"}, Diagnosis: models.DiagnosisAIStandard},
		{Case: "nope"},
		{Case: "c3", Ask: []string{"zz"}},
		{
			Case:         "c3",
			Ask:          []string{"q1", "q2"},
			Diagnosis:    models.DiagnosisNoAI,
			Risk:         models.RiskLow,
			Stakeholder:  models.StakeholderManager,
			Prescription: firstOptions(),
		},
	}}

	report, err := Play(context.Background(), r, sheet, nil)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if report.Failed != 3 {
		t.Errorf("Failed = %d, want 3", report.Failed)
	}
	for i := 0; i < 3; i++ {
		if report.Attempts[i].Error == "" || report.Attempts[i].Score != nil {
			t.Errorf("attempt %d = %+v, want an error and no score", i+1, report.Attempts[i])
		}
	}
	if len(report.Completed) != 1 || report.Completed[0] != "c3" {
		t.Errorf("Completed = %v, want [c3]", report.Completed)
	}
	if report.Aggregate != 100 {
		t.Errorf("Aggregate = %d, want 100", report.Aggregate)
	}
}

func TestPlay_ReplayOverwrites(t *testing.T) {
	weak := Attempt{
		Case:         "c1",
		Ask:          []string{"q4"},
		Diagnosis:    models.DiagnosisNoAI,
		Risk:         models.RiskHigh,
		Stakeholder:  models.StakeholderManager,
		Prescription: Prescription{Reformulation: idx(1), Vigilance: idx(1), NextSteps: idx(1)},
	}
	strong := Attempt{
		Case:         "c1",
		Ask:          []string{"q1", "q2", "q3"},
		Diagnosis:    models.DiagnosisAIStandard,
		Risk:         models.RiskLow,
		Stakeholder:  models.StakeholderAILab,
		Prescription: firstOptions(),
	}

	report, err := Play(context.Background(), newRouter(t), &Sheet{Attempts: []Attempt{weak, strong}}, nil)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if report.Attempts[0].Score.Total != 0 {
		t.Errorf("weak total = %d, want 0", report.Attempts[0].Score.Total)
	}
	if len(report.Completed) != 1 || report.Aggregate != 100 {
		t.Errorf("Completed/Aggregate = %v/%d, want [c1]/100", report.Completed, report.Aggregate)
	}
}

func TestPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sheet := &Sheet{Attempts: []Attempt{{Case: "c1"}}}
	report, err := Play(ctx, newRouter(t), sheet, nil)
	if err == nil {
		t.Fatal("Play() should stop on a cancelled context")
	}
	if len(report.Attempts) != 0 {
		t.Errorf("Attempts = %d, want 0", len(report.Attempts))
	}
}

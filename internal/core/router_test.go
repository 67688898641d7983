// ABOUTME: Tests for the view router
// ABOUTME: Verifies mode transitions, one-time commits on feedback, abandon, and reset

package core

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/models"
)

func newTestRouter() *Router {
	return NewRouter("Clinic", caseTable{testCase("c1"), testCase("c2")}, WithLogger(log.New(io.Discard)))
}

func TestRouter_Begin(t *testing.T) {
	r := newTestRouter()

	if r.Mode() != ModeWelcome {
		t.Errorf("Mode() = %q, want welcome", r.Mode())
	}
	r.Begin()
	if r.Mode() != ModeDashboard {
		t.Errorf("Mode() = %q, want dashboard", r.Mode())
	}
}

func TestRouter_StartUnknownCase(t *testing.T) {
	r := newTestRouter()
	r.Begin()

	_, err := r.Start("zzz")
	if !errors.Is(err, ErrUnknownCase) {
		t.Errorf("Start(zzz) error = %v, want ErrUnknownCase", err)
	}
	if r.Mode() != ModeDashboard || r.Session() != nil {
		t.Error("failed Start should leave the router unchanged")
	}
}

func TestRouter_SubmitWithoutSession(t *testing.T) {
	r := newTestRouter()
	if _, err := r.Submit(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Submit() error = %v, want ErrNoSession", err)
	}
}

func TestRouter_CompleteCaseCommitsOnce(t *testing.T) {
	r := newTestRouter()
	r.Begin()

	s, err := r.Start("c1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.Mode() != ModeGame {
		t.Errorf("Mode() = %q, want game", r.Mode())
	}

	if _, err := s.Ask("q1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Submit(); err != nil {
		t.Fatal(err)
	}
	if r.Progress().IsCompleted("c1") {
		t.Error("c1 should not be committed before feedback")
	}
	_ = s.SelectDiagnosis(models.DiagnosisAIProject)
	_ = s.SelectRisk(models.RiskHigh)
	_ = s.SelectStakeholder(models.StakeholderDPO)
	if _, err := r.Submit(); err != nil {
		t.Fatal(err)
	}
	_ = s.SelectPrescription(models.CategoryReformulation, 1)
	_ = s.SelectPrescription(models.CategoryVigilance, 0)
	_ = s.SelectPrescription(models.CategoryNextSteps, 2)
	if _, err := r.Submit(); err != nil {
		t.Fatal(err)
	}

	score, ok := r.Progress().Score("c1")
	if !ok {
		t.Fatal("c1 should be committed on entering feedback")
	}
	// 33*0.2 + 100*0.4 + 100*0.4 = 86.6
	if score.Total != 87 {
		t.Errorf("Total = %d, want 87", score.Total)
	}
	if r.Header().Score != 87 {
		t.Errorf("Header().Score = %d, want 87", r.Header().Score)
	}

	if _, err := r.Submit(); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Submit() in feedback error = %v, want ErrSessionFinished", err)
	}
	if r.Header().Score != 87 {
		t.Error("a rejected submit should not commit again")
	}

	r.Exit()
	if r.Mode() != ModeDashboard || r.Session() != nil {
		t.Error("Exit() should return to the dashboard without a session")
	}
	if !r.Progress().IsCompleted("c1") {
		t.Error("Exit() from feedback should keep the committed score")
	}
}

func TestRouter_AbandonDoesNotCommit(t *testing.T) {
	r := newTestRouter()
	r.Begin()

	s, err := r.Start("c2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask("q1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Submit(); err != nil {
		t.Fatal(err)
	}
	before := r.Progress().Snapshot()

	r.Exit()

	after := r.Progress().Snapshot()
	if len(after.Completed) != len(before.Completed) || after.Aggregate != before.Aggregate {
		t.Errorf("abandon changed progress: before %+v after %+v", before, after)
	}
	if r.Progress().IsCompleted("c2") {
		t.Error("abandoned case should not be completed")
	}
}

func TestRouter_ReplayOverwrites(t *testing.T) {
	r := newTestRouter()
	r.Begin()

	for i := 0; i < 2; i++ {
		s, err := r.Start("c1")
		if err != nil {
			t.Fatal(err)
		}
		if err := perfectRunVia(r, s); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		r.Exit()
	}

	if got := r.Progress().Completed(); len(got) != 1 {
		t.Errorf("Completed() = %v, want one entry", got)
	}
	if r.Header().Score != 100 {
		t.Errorf("Header().Score = %d, want 100", r.Header().Score)
	}
}

func TestRouter_Reset(t *testing.T) {
	r := newTestRouter()
	r.Begin()
	s, _ := r.Start("c1")
	if err := perfectRunVia(r, s); err != nil {
		t.Fatal(err)
	}
	r.Exit()
	_, _ = r.Start("c2")

	r.Reset()

	if r.Mode() != ModeWelcome {
		t.Errorf("Mode() = %q, want welcome", r.Mode())
	}
	if r.Session() != nil {
		t.Error("Reset() should discard the session")
	}
	if r.Header().Score != 0 {
		t.Errorf("Header().Score = %d, want 0", r.Header().Score)
	}
	for _, e := range r.Dashboard() {
		if e.Completed {
			t.Errorf("%s still completed after reset", e.CaseID)
		}
	}
}

func TestRouter_WithProgress(t *testing.T) {
	progress := NewProgress()
	progress.Commit("c2", models.CaseScore{Total: 40})

	r := NewRouter("Clinic", caseTable{testCase("c1"), testCase("c2")},
		WithLogger(log.New(io.Discard)), WithProgress(progress))
	if r.Progress() != progress {
		t.Fatal("Progress() should return the supplied record")
	}
	if r.Header().Score != 40 {
		t.Errorf("Header().Score = %d, want 40 from the supplied record", r.Header().Score)
	}

	r.Begin()
	s, _ := r.Start("c1")
	if err := perfectRunVia(r, s); err != nil {
		t.Fatal(err)
	}
	if got := progress.Aggregate(); got != 140 {
		t.Errorf("shared Aggregate() = %d, want 140", got)
	}

	r.Reset()
	if len(progress.Completed()) != 0 {
		t.Error("Reset() should clear the supplied record")
	}

	// nil keeps the router's own record
	own := NewRouter("Clinic", caseTable{testCase("c1")}, WithProgress(nil))
	if own.Progress() == nil {
		t.Error("WithProgress(nil) should keep a default record")
	}
}

func TestRouter_Dashboard(t *testing.T) {
	r := newTestRouter()
	r.Begin()
	s, _ := r.Start("c2")
	if err := perfectRunVia(r, s); err != nil {
		t.Fatal(err)
	}

	entries := r.Dashboard()
	if len(entries) != 2 {
		t.Fatalf("Dashboard() returned %d entries, want 2", len(entries))
	}
	if entries[0].CaseID != "c1" || entries[0].Completed || entries[0].Score != nil {
		t.Errorf("entry 0 = %+v, want c1 not completed", entries[0])
	}
	if entries[1].CaseID != "c2" || !entries[1].Completed || entries[1].Score.Total != 100 {
		t.Errorf("entry 1 = %+v, want c2 completed with 100", entries[1])
	}
	if entries[0].DifficultyLabel != models.DifficultyStorm.Label() {
		t.Errorf("DifficultyLabel = %q, want %q", entries[0].DifficultyLabel, models.DifficultyStorm.Label())
	}
	if r.Header().Title != "Clinic" {
		t.Errorf("Header().Title = %q, want Clinic", r.Header().Title)
	}
}

// perfectRunVia plays the perfect answers submitting through the router
func perfectRunVia(r *Router, s *Session) error {
	for _, q := range []string{"q1", "q2", "q3"} {
		if _, err := s.Ask(q); err != nil {
			return err
		}
	}
	if _, err := r.Submit(); err != nil {
		return err
	}
	_ = s.SelectDiagnosis(models.DiagnosisAIProject)
	_ = s.SelectRisk(models.RiskHigh)
	_ = s.SelectStakeholder(models.StakeholderDPO)
	if _, err := r.Submit(); err != nil {
		return err
	}
	_ = s.SelectPrescription(models.CategoryReformulation, 1)
	_ = s.SelectPrescription(models.CategoryVigilance, 0)
	_ = s.SelectPrescription(models.CategoryNextSteps, 2)
	_, err := r.Submit()
	return err
}

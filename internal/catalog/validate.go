// ABOUTME: Schema validation for authored case content
// ABOUTME: Collects every problem in one pass instead of stopping at the first
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/usecase-clinic/internal/models"
)

// ErrInvalidCatalog is matched by every validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

// MaxRelevance is the upper bound of a question's relevance weight
const MaxRelevance = 10

// Problem is a single schema violation
type Problem struct {
	CaseID  string `json:"case_id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) Error() string {
	if p.CaseID == "" {
		return fmt.Sprintf("%s: %s", p.Field, p.Message)
	}
	return fmt.Sprintf("case %q: %s: %s", p.CaseID, p.Field, p.Message)
}

// ValidationError lists every problem found in a catalog
type ValidationError struct {
	Problems []Problem
	joined   error
}

func newValidationError(problems []Problem) *ValidationError {
	errs := make([]error, 0, len(problems)+1)
	errs = append(errs, ErrInvalidCatalog)
	for _, p := range problems {
		errs = append(errs, p)
	}
	return &ValidationError{Problems: problems, joined: errors.Join(errs...)}
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = "  - " + p.Error()
	}
	return fmt.Sprintf("%s: %d problem(s)\n%s", ErrInvalidCatalog, len(e.Problems), strings.Join(lines, "\n"))
}

// Unwrap exposes ErrInvalidCatalog and each problem to errors.Is / errors.As
func (e *ValidationError) Unwrap() error {
	return e.joined
}

// Validate checks every case against the schema rules
func Validate(cases []models.Case) error {
	var problems []Problem
	add := func(caseID, field, format string, args ...interface{}) {
		problems = append(problems, Problem{CaseID: caseID, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(cases) == 0 {
		add("", "cases", "catalog has no cases")
	}

	seen := make(map[string]bool, len(cases))
	for i, c := range cases {
		id := c.ID
		if id == "" {
			add("", fmt.Sprintf("cases[%d].id", i), "must not be empty")
		} else if seen[id] {
			add(id, "id", "duplicate case id")
		}
		seen[id] = true

		if strings.TrimSpace(c.Title) == "" {
			add(id, "title", "must not be empty")
		}
		if !c.Difficulty.IsValid() {
			add(id, "difficulty", "must be 1, 2 or 3, got %d", c.Difficulty)
		}

		validateQuestions(c, add)

		if !c.ExpectedDiagnosis.IsValid() {
			add(id, "expected_diagnosis", "unknown value %q", c.ExpectedDiagnosis)
		}
		if !c.ExpectedRisk.IsValid() {
			add(id, "expected_risk", "unknown value %q", c.ExpectedRisk)
		}
		if !c.RecommendedStakeholder.IsValid() {
			add(id, "recommended_stakeholder", "unknown value %q", c.RecommendedStakeholder)
		}

		for _, cat := range models.PrescriptionCategories {
			validateOptions(id, cat, c.PrescriptionOptions.For(cat), add)
		}

		fb := map[string]string{
			"feedback.success":     c.Feedback.Success,
			"feedback.partial":     c.Feedback.Partial,
			"feedback.failure":     c.Feedback.Failure,
			"feedback.expert_note": c.Feedback.ExpertNote,
		}
		for _, field := range []string{"feedback.success", "feedback.partial", "feedback.failure", "feedback.expert_note"} {
			if strings.TrimSpace(fb[field]) == "" {
				add(id, field, "must not be empty")
			}
		}
	}

	if len(problems) > 0 {
		return newValidationError(problems)
	}
	return nil
}

func validateQuestions(c models.Case, add func(caseID, field, format string, args ...interface{})) {
	if len(c.Questions) == 0 {
		add(c.ID, "questions", "at least one question is required")
		return
	}

	seen := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			add(c.ID, field+".id", "must not be empty")
		} else if seen[q.ID] {
			add(c.ID, field+".id", "duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			add(c.ID, field+".text", "must not be empty")
		}
		if q.Relevance < 0 || q.Relevance > MaxRelevance {
			add(c.ID, field+".relevance", "must be between 0 and %d, got %d", MaxRelevance, q.Relevance)
		}
	}

	// Exploration scoring divides by this count.
	if c.KeyQuestionCount() == 0 {
		add(c.ID, "questions", "at least one question must be flagged is_key")
	}
}

func validateOptions(caseID string, cat models.PrescriptionCategory, opts []models.PrescriptionOption, add func(caseID, field, format string, args ...interface{})) {
	field := "prescription_options." + string(cat)
	if len(opts) == 0 {
		add(caseID, field, "at least one option is required")
		return
	}

	correct := 0
	for i, o := range opts {
		if strings.TrimSpace(o.Text) == "" {
			add(caseID, fmt.Sprintf("%s[%d].text", field, i), "must not be empty")
		}
		if o.Correct {
			correct++
		}
	}
	if correct != 1 {
		add(caseID, field, "exactly one option must be flagged correct, got %d", correct)
	}
}

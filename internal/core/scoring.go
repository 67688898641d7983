// ABOUTME: Scoring rules for each consultation phase and the weighted total
// ABOUTME: Pure functions over a case and the user's choices
package core

import (
	"math"

	"github.com/harper/usecase-clinic/internal/models"
)

// Diagnosis points
const (
	DiagnosisMatchPoints   = 40
	RiskMatchPoints        = 30
	StakeholderMatchPoints = 30
	// UnderestimatePenalty applies when a HIGH risk case is rated LOW
	UnderestimatePenalty = 50
)

// Prescription points per category when the correct option is chosen
var prescriptionPoints = map[models.PrescriptionCategory]int{
	models.CategoryReformulation: 33,
	models.CategoryVigilance:     33,
	models.CategoryNextSteps:     34,
}

// Total weights, in tenths
const (
	explorationWeight  = 2
	diagnosisWeight    = 4
	prescriptionWeight = 4
)

// MaxVisibility caps the consultation visibility meter
const MaxVisibility = 100.0

// visibilityPerRelevance converts a relevance point into meter percent
const visibilityPerRelevance = 2.5

// NoSelection marks a prescription category the user has not chosen yet
const NoSelection = -1

// ExplorationScore is the share of key questions that were asked, as 0-100.
// The case must have at least one key question; catalog validation guarantees it.
func ExplorationScore(c *models.Case, asked map[string]bool) int {
	keys, askedKeys := 0, 0
	for _, q := range c.Questions {
		if !q.IsKey {
			continue
		}
		keys++
		if asked[q.ID] {
			askedKeys++
		}
	}
	return int(math.Round(100 * float64(askedKeys) / float64(keys)))
}

// VisibilityAfter returns the meter value after asking a question of the given relevance
func VisibilityAfter(current float64, relevance int) float64 {
	return math.Min(MaxVisibility, current+float64(relevance)*visibilityPerRelevance)
}

// DiagnosisScore grades the three diagnosis choices against the case expectations
func DiagnosisScore(c *models.Case, d models.DiagnosisType, r models.RiskLevel, s models.Stakeholder) int {
	score := 0
	if d == c.ExpectedDiagnosis {
		score += DiagnosisMatchPoints
	}
	if r == c.ExpectedRisk {
		score += RiskMatchPoints
	}
	if s == c.RecommendedStakeholder {
		score += StakeholderMatchPoints
	}

	// Rating a high-risk case as low risk is disqualifying.
	if c.ExpectedRisk == models.RiskHigh && r == models.RiskLow {
		score -= UnderestimatePenalty
		if score < 0 {
			score = 0
		}
	}
	return score
}

// PrescriptionScore grades the chosen option index in each category
func PrescriptionScore(c *models.Case, selections map[models.PrescriptionCategory]int) int {
	score := 0
	for _, cat := range models.PrescriptionCategories {
		opts := c.PrescriptionOptions.For(cat)
		idx, ok := selections[cat]
		if !ok || idx < 0 || idx >= len(opts) {
			continue
		}
		if opts[idx].Correct {
			score += prescriptionPoints[cat]
		}
	}
	return score
}

// TotalScore is round(exploration*0.2 + diagnosis*0.4 + prescription*0.4), computed in
// tenths so the result is exact
func TotalScore(exploration, diagnosis, prescription int) int {
	weighted := exploration*explorationWeight + diagnosis*diagnosisWeight + prescription*prescriptionWeight
	return (weighted + 5) / 10
}

// FinalScore assembles the CaseScore for three phase scores
func FinalScore(exploration, diagnosis, prescription int) models.CaseScore {
	return models.CaseScore{
		Exploration:  exploration,
		Diagnosis:    diagnosis,
		Prescription: prescription,
		Total:        TotalScore(exploration, diagnosis, prescription),
	}
}

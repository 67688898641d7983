// ABOUTME: CaseScore and feedback tiers for finished consultations
// ABOUTME: Tier thresholds decide which narrative a case shows
package models

// CaseScore is the per-phase and weighted total score of one finished case
type CaseScore struct {
	Exploration  int `json:"exploration"`
	Diagnosis    int `json:"diagnosis"`
	Prescription int `json:"prescription"`
	Total        int `json:"total"`
}

// Tier is the outcome band of a total score
type Tier string

const (
	TierSuccess Tier = "success"
	TierPartial Tier = "partial"
	TierFailure Tier = "failure"
)

const (
	// SuccessThreshold is the minimum total for the success narrative
	SuccessThreshold = 80
	// PartialThreshold is the minimum total for the partial narrative
	PartialThreshold = 50
)

// TierFor maps a total score to its feedback tier
func TierFor(total int) Tier {
	switch {
	case total >= SuccessThreshold:
		return TierSuccess
	case total >= PartialThreshold:
		return TierPartial
	default:
		return TierFailure
	}
}

// Headline is the title shown above the tier narrative
func (t Tier) Headline() string {
	switch t {
	case TierSuccess:
		return "Excellent work, Captain!"
	case TierPartial:
		return "Acceptable navigation"
	default:
		return "Shipwreck narrowly avoided"
	}
}

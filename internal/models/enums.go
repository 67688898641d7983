// ABOUTME: Enumerations used by cases and sessions (difficulty, diagnosis, risk, stakeholder)
// ABOUTME: Each enum knows its valid values and a display label
package models

// Difficulty is the ordinal tier of a case (1 = simple, 3 = complex or trap)
type Difficulty int

const (
	DifficultyCalm  Difficulty = 1
	DifficultyHigh  Difficulty = 2
	DifficultyStorm Difficulty = 3
)

// IsValid checks the difficulty is one of the three tiers
func (d Difficulty) IsValid() bool {
	return d >= DifficultyCalm && d <= DifficultyStorm
}

// Label returns the display name of the tier
func (d Difficulty) Label() string {
	switch d {
	case DifficultyCalm:
		return "Calm Waters"
	case DifficultyHigh:
		return "High Seas"
	case DifficultyStorm:
		return "Storm"
	}
	return "Unknown"
}

// Description summarizes what kind of case lives in the tier
func (d Difficulty) Description() string {
	switch d {
	case DifficultyCalm:
		return "Simple cases, often no AI or standard tools."
	case DifficultyHigh:
		return "Mixed cases, AI possible with precautions."
	case DifficultyStorm:
		return "Sensitive cases, high ethical or technical risk."
	}
	return ""
}

// DiagnosisType is the orientation the referent recommends
type DiagnosisType string

const (
	DiagnosisNoAI       DiagnosisType = "NO_AI"
	DiagnosisAIStandard DiagnosisType = "AI_STANDARD"
	DiagnosisAIProject  DiagnosisType = "AI_PROJECT"
)

// DiagnosisTypes lists every diagnosis in display order
var DiagnosisTypes = []DiagnosisType{DiagnosisNoAI, DiagnosisAIStandard, DiagnosisAIProject}

// IsValid checks if the diagnosis is a known value
func (d DiagnosisType) IsValid() bool {
	switch d {
	case DiagnosisNoAI, DiagnosisAIStandard, DiagnosisAIProject:
		return true
	}
	return false
}

// Label returns the display name
func (d DiagnosisType) Label() string {
	switch d {
	case DiagnosisNoAI:
		return "No AI"
	case DiagnosisAIStandard:
		return "Standard AI"
	case DiagnosisAIProject:
		return "AI Project"
	}
	return string(d)
}

// Description explains the orientation in one line
func (d DiagnosisType) Description() string {
	switch d {
	case DiagnosisNoAI:
		return "Conventional or organisational solution"
	case DiagnosisAIStandard:
		return "Existing, mature tool, little development"
	case DiagnosisAIProject:
		return "Specific, complex development"
	}
	return ""
}

// RiskLevel is the estimated risk of the use case
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// RiskLevels lists every risk level in display order
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh}

// IsValid checks if the risk level is a known value
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

// Label returns the display name
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	}
	return string(r)
}

// Stakeholder is who should be brought on board first
type Stakeholder string

const (
	StakeholderManager      Stakeholder = "MANAGER"
	StakeholderDPO          Stakeholder = "DPO_SECURITY_OFFICER"
	StakeholderAILab        Stakeholder = "AI_LAB"
	StakeholderBusinessUnit Stakeholder = "BUSINESS_UNIT"
)

// Stakeholders lists every stakeholder in display order
var Stakeholders = []Stakeholder{StakeholderManager, StakeholderDPO, StakeholderAILab, StakeholderBusinessUnit}

// IsValid checks if the stakeholder is a known value
func (s Stakeholder) IsValid() bool {
	switch s {
	case StakeholderManager, StakeholderDPO, StakeholderAILab, StakeholderBusinessUnit:
		return true
	}
	return false
}

// Label returns the display name
func (s Stakeholder) Label() string {
	switch s {
	case StakeholderManager:
		return "Manager / IT support"
	case StakeholderDPO:
		return "DPO / Security officer"
	case StakeholderAILab:
		return "AI lab / Data scientist"
	case StakeholderBusinessUnit:
		return "Business unit (to clean the data)"
	}
	return string(s)
}

// PrescriptionCategory names one of the three prescription option lists
type PrescriptionCategory string

const (
	CategoryReformulation PrescriptionCategory = "reformulation"
	CategoryVigilance     PrescriptionCategory = "vigilance"
	CategoryNextSteps     PrescriptionCategory = "next_steps"
)

// PrescriptionCategories lists the categories in display order
var PrescriptionCategories = []PrescriptionCategory{CategoryReformulation, CategoryVigilance, CategoryNextSteps}

// IsValid checks if the category is a known value
func (c PrescriptionCategory) IsValid() bool {
	switch c {
	case CategoryReformulation, CategoryVigilance, CategoryNextSteps:
		return true
	}
	return false
}

// Label returns the display name
func (c PrescriptionCategory) Label() string {
	switch c {
	case CategoryReformulation:
		return "Restating the need"
	case CategoryVigilance:
		return "Main point of vigilance"
	case CategoryNextSteps:
		return "Concrete next step"
	}
	return string(c)
}

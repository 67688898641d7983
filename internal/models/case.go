// ABOUTME: Case and Question types for the use-case clinic catalog
// ABOUTME: A Case is authored ahead of time and never mutated at runtime
package models

// Question is one line of inquiry the user can put to the agent during consultation
type Question struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Answer    string `json:"answer" yaml:"answer" toml:"answer"`
	IsKey     bool   `json:"is_key" yaml:"is_key" toml:"is_key"`
	Relevance int    `json:"relevance" yaml:"relevance" toml:"relevance"` // 0-10
}

// PrescriptionOption is a candidate response string for one prescription category
type PrescriptionOption struct {
	Text    string `json:"text" yaml:"text" toml:"text"`
	Correct bool   `json:"correct" yaml:"correct" toml:"correct"`
}

// PrescriptionOptions holds the three option lists offered in the prescription phase
type PrescriptionOptions struct {
	Reformulation []PrescriptionOption `json:"reformulation" yaml:"reformulation" toml:"reformulation"`
	Vigilance     []PrescriptionOption `json:"vigilance" yaml:"vigilance" toml:"vigilance"`
	NextSteps     []PrescriptionOption `json:"next_steps" yaml:"next_steps" toml:"next_steps"`
}

// For returns the option list for a category, or nil for an unknown category
func (p PrescriptionOptions) For(c PrescriptionCategory) []PrescriptionOption {
	switch c {
	case CategoryReformulation:
		return p.Reformulation
	case CategoryVigilance:
		return p.Vigilance
	case CategoryNextSteps:
		return p.NextSteps
	}
	return nil
}

// Feedback holds the narrative shown once a case is scored
type Feedback struct {
	Success    string `json:"success" yaml:"success" toml:"success"`
	Partial    string `json:"partial" yaml:"partial" toml:"partial"`
	Failure    string `json:"failure" yaml:"failure" toml:"failure"`
	ExpertNote string `json:"expert_note" yaml:"expert_note" toml:"expert_note"`
}

// ForTier returns the narrative matching a feedback tier
func (f Feedback) ForTier(t Tier) string {
	switch t {
	case TierSuccess:
		return f.Success
	case TierPartial:
		return f.Partial
	default:
		return f.Failure
	}
}

// Case is one self-contained consultation scenario
type Case struct {
	ID         string     `json:"id" yaml:"id" toml:"id"`
	Title      string     `json:"title" yaml:"title" toml:"title"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" toml:"difficulty"`
	AgentName  string     `json:"agent_name" yaml:"agent_name" toml:"agent_name"`
	AgentRole  string     `json:"agent_role" yaml:"agent_role" toml:"agent_role"`
	Context    string     `json:"context" yaml:"context" toml:"context"`

	Questions []Question `json:"questions" yaml:"questions" toml:"questions"`

	ExpectedDiagnosis      DiagnosisType `json:"expected_diagnosis" yaml:"expected_diagnosis" toml:"expected_diagnosis"`
	ExpectedRisk           RiskLevel     `json:"expected_risk" yaml:"expected_risk" toml:"expected_risk"`
	RecommendedStakeholder Stakeholder   `json:"recommended_stakeholder" yaml:"recommended_stakeholder" toml:"recommended_stakeholder"`

	PrescriptionOptions PrescriptionOptions `json:"prescription_options" yaml:"prescription_options" toml:"prescription_options"`
	Feedback            Feedback            `json:"feedback" yaml:"feedback" toml:"feedback"`
}

// Question looks up a question by ID
func (c *Case) Question(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// KeyQuestionCount returns how many questions are flagged as key
func (c *Case) KeyQuestionCount() int {
	n := 0
	for _, q := range c.Questions {
		if q.IsKey {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers cannot mutate catalog data
func (c Case) Clone() Case {
	out := c
	out.Questions = append([]Question(nil), c.Questions...)
	out.PrescriptionOptions = PrescriptionOptions{
		Reformulation: append([]PrescriptionOption(nil), c.PrescriptionOptions.Reformulation...),
		Vigilance:     append([]PrescriptionOption(nil), c.PrescriptionOptions.Vigilance...),
		NextSteps:     append([]PrescriptionOption(nil), c.PrescriptionOptions.NextSteps...),
	}
	return out
}

// ABOUTME: In-memory record of completed cases and their scores
// ABOUTME: Replaying a case overwrites its score without duplicating the entry
package core

import (
	"sync"

	"github.com/harper/usecase-clinic/internal/models"
)

// Progress tracks which cases were completed and what they scored.
// It is safe for concurrent use, so one record can be shared via WithProgress
// and read while a router is still running.
type Progress struct {
	mu        sync.RWMutex
	completed []string
	scores    map[string]models.CaseScore
}

// NewProgress returns empty progress
func NewProgress() *Progress {
	return &Progress{scores: make(map[string]models.CaseScore)}
}

// Commit records a finished case
func (p *Progress) Commit(caseID string, score models.CaseScore) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, seen := p.scores[caseID]; !seen {
		p.completed = append(p.completed, caseID)
	}
	p.scores[caseID] = score
}

// IsCompleted reports whether a case has a recorded score
func (p *Progress) IsCompleted(caseID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.scores[caseID]
	return ok
}

// Score returns the recorded score for a case
func (p *Progress) Score(caseID string) (models.CaseScore, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.scores[caseID]
	return s, ok
}

// Completed returns completed case IDs in first-completion order
func (p *Progress) Completed() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.completed...)
}

// Aggregate is the sum of total scores over completed cases
func (p *Progress) Aggregate() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.aggregate()
}

func (p *Progress) aggregate() int {
	sum := 0
	for _, s := range p.scores {
		sum += s.Total
	}
	return sum
}

// Reset clears all progress
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = nil
	p.scores = make(map[string]models.CaseScore)
}

// ProgressSnapshot is a serializable copy of progress
type ProgressSnapshot struct {
	Completed []string                    `json:"completed"`
	Scores    map[string]models.CaseScore `json:"scores"`
	Aggregate int                         `json:"aggregate"`
}

// Snapshot copies the progress
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	scores := make(map[string]models.CaseScore, len(p.scores))
	for k, v := range p.scores {
		scores[k] = v
	}
	completed := append([]string{}, p.completed...)
	return ProgressSnapshot{
		Completed: completed,
		Scores:    scores,
		Aggregate: p.aggregate(),
	}
}

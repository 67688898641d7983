// ABOUTME: View router tying the catalog, the active session and progress together
// ABOUTME: Owns the welcome/dashboard/game mode and commits finished sessions exactly once
package core

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/models"
)

// Mode is the top-level view
type Mode string

const (
	ModeWelcome   Mode = "welcome"
	ModeDashboard Mode = "dashboard"
	ModeGame      Mode = "game"
)

// CaseSource provides the cases a router can start
type CaseSource interface {
	Get(id string) (models.Case, bool)
	Cases() []models.Case
}

// Header is the persistent title bar content
type Header struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

// DashboardEntry is one case card on the dashboard
type DashboardEntry struct {
	CaseID          string            `json:"case_id"`
	Title           string            `json:"title"`
	Difficulty      models.Difficulty `json:"difficulty"`
	DifficultyLabel string            `json:"difficulty_label"`
	AgentName       string            `json:"agent_name"`
	AgentRole       string            `json:"agent_role"`
	Completed       bool              `json:"completed"`
	Score           *models.CaseScore `json:"score,omitempty"`
}

// Router is the application state machine above individual sessions.
// It is not safe for concurrent use; callers serialize access.
type Router struct {
	title    string
	cases    CaseSource
	progress *Progress
	mode     Mode
	session  *Session
	logger   *log.Logger
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithLogger sets the logger used for transitions
func WithLogger(l *log.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProgress shares an existing progress record
func WithProgress(p *Progress) RouterOption {
	return func(r *Router) {
		if p != nil {
			r.progress = p
		}
	}
}

// NewRouter creates a router on the welcome view
func NewRouter(title string, cases CaseSource, opts ...RouterOption) *Router {
	r := &Router{
		title:    title,
		cases:    cases,
		progress: NewProgress(),
		mode:     ModeWelcome,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("router")
	return r
}

// Mode returns the current view
func (r *Router) Mode() Mode { return r.mode }

// Session returns the active session, or nil outside the game view
func (r *Router) Session() *Session { return r.session }

// Progress returns the progress record
func (r *Router) Progress() *Progress { return r.progress }

// Begin leaves the welcome view for the dashboard
func (r *Router) Begin() {
	r.mode = ModeDashboard
}

// Start opens a fresh session on a case
func (r *Router) Start(caseID string) (*Session, error) {
	c, ok := r.cases.Get(caseID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCase, caseID)
	}
	if r.session != nil {
		r.logger.Debug("discarding session", "session", r.session.ID(), "case", r.session.CaseID())
	}
	r.session = NewSession(c)
	r.mode = ModeGame
	r.logger.Info("case started", "case", caseID, "session", r.session.ID())
	return r.session, nil
}

// Submit submits the active session's phase. Entering feedback commits the result.
func (r *Router) Submit() (int, error) {
	if r.session == nil {
		return 0, ErrNoSession
	}
	from := r.session.PhaseName()
	score, err := r.session.Submit()
	if err != nil {
		return 0, err
	}
	r.logger.Debug("phase submitted", "case", r.session.CaseID(), "phase", from, "score", score)

	if result, done := r.session.Result(); done {
		r.progress.Commit(r.session.CaseID(), result)
		r.logger.Info("case completed",
			"case", r.session.CaseID(),
			"total", result.Total,
			"tier", models.TierFor(result.Total),
			"aggregate", r.progress.Aggregate())
	}
	return score, nil
}

// Exit returns to the dashboard and drops the session. Unfinished work is not recorded.
func (r *Router) Exit() {
	if r.session != nil && !r.session.Finished() {
		r.logger.Info("case abandoned", "case", r.session.CaseID(), "phase", r.session.PhaseName())
	}
	r.session = nil
	r.mode = ModeDashboard
}

// Reset clears progress and returns to the welcome view
func (r *Router) Reset() {
	r.progress.Reset()
	r.session = nil
	r.mode = ModeWelcome
	r.logger.Info("progress reset")
}

// Header returns the title and aggregate score
func (r *Router) Header() Header {
	return Header{Title: r.title, Score: r.progress.Aggregate()}
}

// Dashboard lists every case with its completion state
func (r *Router) Dashboard() []DashboardEntry {
	cases := r.cases.Cases()
	entries := make([]DashboardEntry, 0, len(cases))
	for _, c := range cases {
		e := DashboardEntry{
			CaseID:          c.ID,
			Title:           c.Title,
			Difficulty:      c.Difficulty,
			DifficultyLabel: c.Difficulty.Label(),
			AgentName:       c.AgentName,
			AgentRole:       c.AgentRole,
		}
		if s, ok := r.progress.Score(c.ID); ok {
			e.Completed = true
			e.Score = &s
		}
		entries = append(entries, e)
	}
	return entries
}

// ABOUTME: MCP tool handler implementations for the clinic server
// ABOUTME: Handlers serialize router access; guard violations come back as tool errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	mu     sync.Mutex // one tool call at a time sees and mutates the router
	router *core.Router
	logger *log.Logger
}

// NewHandlers wraps a router for tool access
func NewHandlers(router *core.Router, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{router: router, logger: logger.WithPrefix("mcp")}
}

type sessionResponse struct {
	Briefing *briefing             `json:"briefing,omitempty"`
	Session  *core.SessionSnapshot `json:"session,omitempty"`
	Header   core.Header           `json:"header"`
}

// jsonResult marshals a response into a text result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

func (h *Handlers) sessionView(withBriefing bool) sessionResponse {
	resp := sessionResponse{Header: h.router.Header()}
	if s := h.router.Session(); s != nil {
		snap := s.Snapshot()
		resp.Session = &snap
		if withBriefing {
			b := newBriefing(s)
			resp.Briefing = &b
		}
	}
	return resp
}

// ListCases handles the list_cases tool
func (h *Handlers) ListCases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.router.Mode() == core.ModeWelcome {
		h.router.Begin()
	}

	response := map[string]interface{}{
		"header": h.router.Header(),
		"cases":  h.router.Dashboard(),
	}
	return jsonResult(response)
}

// StartCase handles the start_case tool
func (h *Handlers) StartCase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	caseID, err := request.RequireString("case_id")
	if err != nil {
		return mcp.NewToolResultError("case_id argument is required and must be a string"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.router.Start(caseID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(h.sessionView(true))
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionID, err := request.RequireString("question_id")
	if err != nil {
		return mcp.NewToolResultError("question_id argument is required and must be a string"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.router.Session()
	if s == nil {
		return mcp.NewToolResultError(core.ErrNoSession.Error()), nil
	}
	q, err := s.Ask(questionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.Snapshot()
	response := map[string]interface{}{
		"question_id": q.ID,
		"question":    q.Text,
		"answer":      q.Answer,
		"visibility":  snap.Visibility,
		"can_submit":  snap.CanSubmit,
	}
	return jsonResult(response)
}

// SelectDiagnosis handles the select_diagnosis tool. All given values are checked
// before any is applied.
func (h *Handlers) SelectDiagnosis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := models.DiagnosisType(request.GetString("diagnosis", ""))
	r := models.RiskLevel(request.GetString("risk", ""))
	st := models.Stakeholder(request.GetString("stakeholder", ""))
	if d == "" && r == "" && st == "" {
		return mcp.NewToolResultError("provide at least one of diagnosis, risk or stakeholder"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.router.Session()
	if s == nil {
		return mcp.NewToolResultError(core.ErrNoSession.Error()), nil
	}
	if s.PhaseName() != core.PhaseDiagnosis {
		return mcp.NewToolResultError(fmt.Sprintf("%v: current phase is %s", core.ErrWrongPhase, s.PhaseName())), nil
	}
	switch {
	case d != "" && !d.IsValid():
		return mcp.NewToolResultError(fmt.Sprintf("%v: diagnosis %q", core.ErrInvalidChoice, d)), nil
	case r != "" && !r.IsValid():
		return mcp.NewToolResultError(fmt.Sprintf("%v: risk %q", core.ErrInvalidChoice, r)), nil
	case st != "" && !st.IsValid():
		return mcp.NewToolResultError(fmt.Sprintf("%v: stakeholder %q", core.ErrInvalidChoice, st)), nil
	}

	// Checked above, so these cannot fail.
	if d != "" {
		_ = s.SelectDiagnosis(d)
	}
	if r != "" {
		_ = s.SelectRisk(r)
	}
	if st != "" {
		_ = s.SelectStakeholder(st)
	}

	return jsonResult(h.sessionView(false))
}

// SelectPrescription handles the select_prescription tool
func (h *Handlers) SelectPrescription(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := request.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category argument is required and must be a string"), nil
	}
	index := request.GetInt("index", core.NoSelection)

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.router.Session()
	if s == nil {
		return mcp.NewToolResultError(core.ErrNoSession.Error()), nil
	}
	if err := s.SelectPrescription(models.PrescriptionCategory(category), index); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(h.sessionView(false))
}

// SubmitPhase handles the submit_phase tool
func (h *Handlers) SubmitPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.router.Session()
	if s == nil {
		return mcp.NewToolResultError(core.ErrNoSession.Error()), nil
	}
	from := s.PhaseName()
	score, err := h.router.Submit()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := map[string]interface{}{
		"submitted":   from,
		"phase_score": score,
		"session":     s.Snapshot(),
		"header":      h.router.Header(),
	}
	return jsonResult(response)
}

// GetSession handles the get_session tool
func (h *Handlers) GetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.router.Session() == nil {
		return mcp.NewToolResultError(core.ErrNoSession.Error()), nil
	}
	return jsonResult(h.sessionView(true))
}

// GetProgress handles the get_progress tool
func (h *Handlers) GetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	response := map[string]interface{}{
		"header":   h.router.Header(),
		"progress": h.router.Progress().Snapshot(),
		"mode":     h.router.Mode(),
	}
	return jsonResult(response)
}

// ExitSession handles the exit_session tool
func (h *Handlers) ExitSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	recorded := false
	if s := h.router.Session(); s != nil {
		recorded = s.Finished()
	}
	h.router.Exit()

	response := map[string]interface{}{
		"mode":     h.router.Mode(),
		"recorded": recorded,
		"header":   h.router.Header(),
	}
	return jsonResult(response)
}

// ResetProgress handles the reset_progress tool
func (h *Handlers) ResetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError("reset_progress requires confirm=true; all scores would be lost"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.router.Reset()
	h.logger.Warn("progress reset over MCP")

	response := map[string]interface{}{
		"success": true,
		"header":  h.router.Header(),
		"mode":    h.router.Mode(),
	}
	return jsonResult(response)
}

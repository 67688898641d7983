// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Plays a full case through the tools and checks guard errors surface as tool errors

package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type handlerFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	logger := log.New(io.Discard)
	return NewHandlers(core.NewRouter("Clinic", cat, core.WithLogger(logger)), logger)
}

func call(t *testing.T, fn handlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
	result, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("handler returned no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text, result.IsError
}

func decode(t *testing.T, text string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, text)
	}
	return out
}

func TestTools_Registered(t *testing.T) {
	h := newTestHandlers(t)
	want := []string{
		"list_cases", "start_case", "ask_question", "select_diagnosis", "select_prescription",
		"submit_phase", "get_session", "get_progress", "exit_session", "reset_progress",
	}

	tools := h.Tools()
	if len(tools) != len(want) {
		t.Fatalf("Tools() returned %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Tool.Name != name {
			t.Errorf("tool %d = %q, want %q", i, tools[i].Tool.Name, name)
		}
		if tools[i].Handler == nil {
			t.Errorf("tool %q has no handler", name)
		}
	}

	// Must not panic
	RegisterTools(mcpserver.NewMCPServer("test", "0.0.0"), h.router, log.New(io.Discard))
}

func TestListCases(t *testing.T) {
	h := newTestHandlers(t)

	text, isErr := call(t, h.ListCases, nil)
	if isErr {
		t.Fatalf("list_cases error: %s", text)
	}
	out := decode(t, text)
	cases, ok := out["cases"].([]any)
	if !ok || len(cases) != 9 {
		t.Errorf("cases = %v, want 9 entries", out["cases"])
	}
	if h.router.Mode() != core.ModeDashboard {
		t.Errorf("Mode() = %q, want dashboard", h.router.Mode())
	}
}

func TestStartCase_HidesAnswers(t *testing.T) {
	h := newTestHandlers(t)

	text, isErr := call(t, h.StartCase, map[string]any{"case_id": "c1"})
	if isErr {
		t.Fatalf("start_case error: %s", text)
	}
	if strings.Contains(text, `"correct"`) || strings.Contains(text, `"answer"`) {
		t.Errorf("briefing leaks answers: %s", text)
	}

	out := decode(t, text)
	b := out["briefing"].(map[string]any)
	if b["case_id"] != "c1" {
		t.Errorf("briefing case_id = %v, want c1", b["case_id"])
	}
	if qs := b["questions"].([]any); len(qs) != 4 {
		t.Errorf("questions = %d, want 4", len(qs))
	}
}

func TestStartCase_DiagnosisDescriptions(t *testing.T) {
	h := newTestHandlers(t)

	text, isErr := call(t, h.StartCase, map[string]any{"case_id": "c1"})
	if isErr {
		t.Fatalf("start_case error: %s", text)
	}

	b := decode(t, text)["briefing"].(map[string]any)
	choices := b["diagnosis_choices"].([]any)
	if len(choices) != len(models.DiagnosisTypes) {
		t.Fatalf("diagnosis_choices = %d, want %d", len(choices), len(models.DiagnosisTypes))
	}
	for i, d := range models.DiagnosisTypes {
		c := choices[i].(map[string]any)
		if c["value"] != string(d) {
			t.Errorf("choice %d value = %v, want %s", i, c["value"], d)
		}
		if c["description"] != d.Description() {
			t.Errorf("choice %s description = %v, want %q", d, c["description"], d.Description())
		}
	}
}

func TestStartCase_Errors(t *testing.T) {
	h := newTestHandlers(t)

	if _, isErr := call(t, h.StartCase, map[string]any{}); !isErr {
		t.Error("start_case without case_id should be a tool error")
	}
	text, isErr := call(t, h.StartCase, map[string]any{"case_id": "zzz"})
	if !isErr || !strings.Contains(text, "unknown case") {
		t.Errorf("start_case(zzz) = %q, %v, want unknown case error", text, isErr)
	}
}

func TestFullCaseOverTools(t *testing.T) {
	h := newTestHandlers(t)
	call(t, h.StartCase, map[string]any{"case_id": "c1"})

	// Submitting before asking is rejected and changes nothing.
	if text, isErr := call(t, h.SubmitPhase, nil); !isErr || !strings.Contains(text, "ask at least one question") {
		t.Errorf("early submit = %q, %v, want guard error", text, isErr)
	}

	for _, q := range []string{"q1", "q2", "q3"} {
		text, isErr := call(t, h.AskQuestion, map[string]any{"question_id": q})
		if isErr {
			t.Fatalf("ask_question(%s) error: %s", q, text)
		}
		if decode(t, text)["answer"] == "" {
			t.Errorf("ask_question(%s) returned no answer", q)
		}
	}
	text, _ := call(t, h.SubmitPhase, nil)
	if got := decode(t, text)["phase_score"]; got != float64(100) {
		t.Errorf("exploration phase_score = %v, want 100", got)
	}

	if _, isErr := call(t, h.AskQuestion, map[string]any{"question_id": "q4"}); !isErr {
		t.Error("ask_question during diagnosis should be a tool error")
	}

	text, isErr := call(t, h.SelectDiagnosis, map[string]any{"diagnosis": "AI_STANDARD", "risk": "BOGUS"})
	if !isErr || !strings.Contains(text, "invalid choice") {
		t.Errorf("select_diagnosis with bad risk = %q, %v", text, isErr)
	}
	snap := h.router.Session().Snapshot()
	if snap.DiagnosisSelection.Diagnosis != "" {
		t.Error("a rejected select_diagnosis should apply nothing")
	}

	if text, isErr := call(t, h.SelectDiagnosis, map[string]any{
		"diagnosis": "AI_STANDARD", "risk": "LOW", "stakeholder": "AI_LAB",
	}); isErr {
		t.Fatalf("select_diagnosis error: %s", text)
	}
	call(t, h.SubmitPhase, nil)

	if _, isErr := call(t, h.SelectPrescription, map[string]any{"category": "vigilance", "index": 7}); !isErr {
		t.Error("out of range index should be a tool error")
	}
	for _, cat := range []string{"reformulation", "vigilance", "next_steps"} {
		if text, isErr := call(t, h.SelectPrescription, map[string]any{"category": cat, "index": float64(0)}); isErr {
			t.Fatalf("select_prescription(%s) error: %s", cat, text)
		}
	}

	text, isErr = call(t, h.SubmitPhase, nil)
	if isErr {
		t.Fatalf("final submit error: %s", text)
	}
	out := decode(t, text)
	session := out["session"].(map[string]any)
	if session["phase"] != "feedback" || session["tier"] != "success" {
		t.Errorf("session = %v, want feedback/success", session)
	}
	if header := out["header"].(map[string]any); header["score"] != float64(100) {
		t.Errorf("header score = %v, want 100", header["score"])
	}

	text, _ = call(t, h.ExitSession, nil)
	if decode(t, text)["recorded"] != true {
		t.Errorf("exit_session after feedback should report recorded: %s", text)
	}
	if _, isErr := call(t, h.GetSession, nil); !isErr {
		t.Error("get_session with no session should be a tool error")
	}
}

func TestExitSession_Abandon(t *testing.T) {
	h := newTestHandlers(t)
	call(t, h.StartCase, map[string]any{"case_id": "c2"})
	call(t, h.AskQuestion, map[string]any{"question_id": "q1"})

	text, _ := call(t, h.ExitSession, nil)
	if decode(t, text)["recorded"] != false {
		t.Errorf("abandoned session should not be recorded: %s", text)
	}

	text, _ = call(t, h.GetProgress, nil)
	progress := decode(t, text)["progress"].(map[string]any)
	if progress["aggregate"] != float64(0) {
		t.Errorf("aggregate = %v, want 0", progress["aggregate"])
	}
}

func TestResetProgress_RequiresConfirm(t *testing.T) {
	h := newTestHandlers(t)
	h.router.Progress().Commit("c1", models.CaseScore{Total: 50})

	if _, isErr := call(t, h.ResetProgress, map[string]any{}); !isErr {
		t.Error("reset_progress without confirm should be a tool error")
	}
	if !h.router.Progress().IsCompleted("c1") {
		t.Error("unconfirmed reset should keep progress")
	}

	text, isErr := call(t, h.ResetProgress, map[string]any{"confirm": true})
	if isErr {
		t.Fatalf("reset_progress error: %s", text)
	}
	if h.router.Progress().IsCompleted("c1") {
		t.Error("confirmed reset should clear progress")
	}
	if h.router.Mode() != core.ModeWelcome {
		t.Errorf("Mode() = %q, want welcome", h.router.Mode())
	}
}

func TestHandlers_ConcurrentCalls(t *testing.T) {
	h := newTestHandlers(t)
	call(t, h.StartCase, map[string]any{"case_id": "c1"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]any{"question_id": "q1"}}}
			_, _ = h.AskQuestion(context.Background(), req)
		}()
		go func() {
			defer wg.Done()
			_, _ = h.GetSession(context.Background(), mcp.CallToolRequest{})
		}()
	}
	wg.Wait()

	snap := h.router.Session().Snapshot()
	if len(snap.Revealed) != 1 {
		t.Errorf("Revealed = %d, want 1", len(snap.Revealed))
	}
}

func TestNewServer(t *testing.T) {
	h := newTestHandlers(t)

	server, handlers := NewServer("Clinic", "0.1.0", h.router, log.New(io.Discard))
	if server == nil || handlers == nil {
		t.Fatal("NewServer() returned nil")
	}
	if handlers.router != h.router {
		t.Error("handlers should share the router")
	}
}

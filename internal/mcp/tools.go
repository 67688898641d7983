// ABOUTME: MCP tool definitions and registration for the clinic server
// ABOUTME: Defines JSON schemas for the ten tools an agent uses to play cases
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, router *core.Router, logger *log.Logger) *Handlers {
	handlers := NewHandlers(router, logger)
	server.AddTools(handlers.Tools()...)
	return handlers
}

// Tools pairs every tool definition with its handler
func (h *Handlers) Tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		// 1. list_cases - Dashboard view
		{Tool: mcp.Tool{
			Name:        "list_cases",
			Description: "List every case in the clinic with its difficulty, completion state and recorded score, plus the aggregate score.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, Handler: h.ListCases},

		// 2. start_case - Open a fresh session
		{Tool: mcp.Tool{
			Name:        "start_case",
			Description: "Start a consultation on a case. Discards any session in progress without recording it. Returns the case briefing and session state.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"case_id": map[string]interface{}{
						"type":        "string",
						"description": "Case ID from list_cases",
					},
				},
				Required: []string{"case_id"},
			},
		}, Handler: h.StartCase},

		// 3. ask_question - Consultation phase
		{Tool: mcp.Tool{
			Name:        "ask_question",
			Description: "Ask the agent one of the case's questions and reveal the answer. Only valid during consultation; asking twice changes nothing.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"question_id": map[string]interface{}{
						"type":        "string",
						"description": "Question ID from the case briefing",
					},
				},
				Required: []string{"question_id"},
			},
		}, Handler: h.AskQuestion},

		// 4. select_diagnosis - Diagnosis phase
		{Tool: mcp.Tool{
			Name:        "select_diagnosis",
			Description: "Set any of the diagnosis, risk and stakeholder choices. Only valid during diagnosis; choices can be changed until submit_phase.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"diagnosis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"NO_AI", "AI_STANDARD", "AI_PROJECT"},
						"description": "Orientation of the request",
					},
					"risk": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"LOW", "MODERATE", "HIGH"},
						"description": "Risk level of the request",
					},
					"stakeholder": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"MANAGER", "DPO_SECURITY_OFFICER", "AI_LAB", "BUSINESS_UNIT"},
						"description": "Who to consult first",
					},
				},
			},
		}, Handler: h.SelectDiagnosis},

		// 5. select_prescription - Prescription phase
		{Tool: mcp.Tool{
			Name:        "select_prescription",
			Description: "Choose one option in a prescription category. Only valid during prescription.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"reformulation", "vigilance", "next_steps"},
						"description": "Prescription category",
					},
					"index": map[string]interface{}{
						"type":        "number",
						"description": "Zero-based option index from the case briefing",
					},
				},
				Required: []string{"category", "index"},
			},
		}, Handler: h.SelectPrescription},

		// 6. submit_phase - Score the current phase and advance
		{Tool: mcp.Tool{
			Name:        "submit_phase",
			Description: "Score the current phase and move to the next. Finishing prescription records the case score.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, Handler: h.SubmitPhase},

		// 7. get_session - Current session state
		{Tool: mcp.Tool{
			Name:        "get_session",
			Description: "Get the case briefing and current state of the active session.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, Handler: h.GetSession},

		// 8. get_progress - Completed cases and aggregate
		{Tool: mcp.Tool{
			Name:        "get_progress",
			Description: "Get completed cases, their scores and the aggregate score.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, Handler: h.GetProgress},

		// 9. exit_session - Back to the dashboard
		{Tool: mcp.Tool{
			Name:        "exit_session",
			Description: "Leave the active session and return to the dashboard. An unfinished case is not recorded.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, Handler: h.ExitSession},

		// 10. reset_progress - Clear everything
		{Tool: mcp.Tool{
			Name:        "reset_progress",
			Description: "Clear all recorded scores and any active session. Requires confirm=true.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"confirm": map[string]interface{}{
						"type":        "boolean",
						"description": "Must be true to reset",
					},
				},
				Required: []string{"confirm"},
			},
		}, Handler: h.ResetProgress},
	}
}

// ABOUTME: CLI command to list the case catalog
// ABOUTME: Shows difficulty, agent and question counts per case
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type caseSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Difficulty   string `json:"difficulty"`
	AgentName    string `json:"agent_name"`
	AgentRole    string `json:"agent_role"`
	Questions    int    `json:"questions"`
	KeyQuestions int    `json:"key_questions"`
}

// NewCasesCmd creates the cases command
func NewCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the cases in the catalog",
		Long: `List the cases in the active catalog.

The catalog is the file given by --catalog, then $CLINIC_CATALOG,
then catalog.yaml in the clinic config directory, and finally the
bundled cases.

Examples:
  clinic cases
  clinic cases --format json
  clinic cases --catalog ./my-cases.toml`,
		RunE: runCases,
	}

	return cmd
}

func runCases(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cases := a.catalog.Cases()
	summaries := make([]caseSummary, 0, len(cases))
	for _, c := range cases {
		summaries = append(summaries, caseSummary{
			ID:           c.ID,
			Title:        c.Title,
			Difficulty:   c.Difficulty.Label(),
			AgentName:    c.AgentName,
			AgentRole:    c.AgentRole,
			Questions:    len(c.Questions),
			KeyQuestions: c.KeyQuestionCount(),
		})
	}

	if isJSON() {
		return writeJSON(cmd.OutOrStdout(), summaries)
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tDIFFICULTY\tTITLE\tAGENT\tQUESTIONS\n")
	fmt.Fprintf(w, "--\t----------\t-----\t-----\t---------\n")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d (%d key)\n",
			s.ID,
			s.Difficulty,
			truncate(s.Title, 40),
			truncate(s.AgentName+", "+s.AgentRole, 30),
			s.Questions,
			s.KeyQuestions)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d case(s) from %s\n", len(summaries), a.source)
	}
	return nil
}

// ABOUTME: Root command and global flags for the clinic CLI
// ABOUTME: Wires every subcommand and rejects conflicting output flags
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	catalogPath  string
)

const banner = `
 ██████╗██╗     ██╗███╗   ██╗██╗ ██████╗
██╔════╝██║     ██║████╗  ██║██║██╔════╝
██║     ██║     ██║██╔██╗ ██║██║██║
██║     ██║     ██║██║╚██╗██║██║██║
╚██████╗███████╗██║██║ ╚████║██║╚██████╗
 ╚═════╝╚══════╝╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinic",
		Short: "Practice triaging AI use-case requests",
		Long: banner + `

AI Use-Case Clinic is a training game. Colleagues bring requests to
"put AI" into their work; you question them, diagnose the request,
and prescribe what to do next. Each case is scored and scores add up.

Play interactively in the terminal, script whole runs from an answer
sheet, or let an LLM agent play over MCP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "json", "table":
				return nil
			}
			return fmt.Errorf("--format must be auto, json or table, got %q", outputFormat)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors and skip summaries")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, or table")
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Case catalog file (.yaml, .toml or .json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewPlayCmd(),
		NewCasesCmd(),
		NewValidateCmd(),
		NewRunCmd(),
		NewMCPCmd(),
		NewInstallSkillCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// ABOUTME: CLI command to play the clinic in the terminal
// ABOUTME: Runs the bubbletea UI; logs go to a file because the UI owns the screen
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/logging"
	"github.com/harper/usecase-clinic/internal/tui"
	"github.com/spf13/cobra"
)

var (
	playLogFile string
)

// NewPlayCmd creates the play command
func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the clinic interactively",
		Long: `Play the clinic interactively in the terminal.

Pick a case from the board, question the agent, diagnose the request
and prescribe next steps. Scores last until you quit or reset.

Examples:
  clinic play
  clinic play --log-file clinic.log --verbose`,
		RunE: runPlay,
	}

	cmd.Flags().StringVar(&playLogFile, "log-file", "", "Append logs to this file")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if playLogFile != "" {
		fileLogger, closer, err := logging.OpenFile(playLogFile, logOptions(a.cfg))
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = fileLogger
	}

	router := core.NewRouter(a.cfg.Title, a.catalog, core.WithLogger(logger))
	model := tui.New(router, tui.Options{ShowVisibility: a.cfg.ShowVisibility})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}

	logger.Info("session ended", "aggregate", router.Header().Score)
	return nil
}

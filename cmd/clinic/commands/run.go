// ABOUTME: CLI command to play scripted answer sheets without the terminal UI
// ABOUTME: Reports per-phase scores, tiers and the aggregate as a table or JSON
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/script"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <answers-file>",
		Short: "Play cases from a scripted answer sheet",
		Long: `Play cases from a scripted answer sheet.

An answer sheet (.yaml, .toml or .json) lists attempts in order. Each
attempt names a case, the questions to ask, the diagnosis, risk and
stakeholder choices, and one option index per prescription category.
Replaying a case overwrites its earlier score.

An attempt that cannot finish is reported and not scored; the command
then exits non-zero.

Examples:
  clinic run answers.yaml
  clinic run answers.toml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	sheet, err := script.Load(args[0])
	if err != nil {
		return err
	}

	router := core.NewRouter(a.cfg.Title, a.catalog, core.WithLogger(a.logger))

	var bar *progressbar.ProgressBar
	if quiet || isJSON() {
		bar = progressbar.DefaultSilent(int64(len(sheet.Attempts)))
	} else {
		bar = progressbar.NewOptions(len(sheet.Attempts),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Playing cases"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := script.Play(ctx, router, sheet, func(res script.AttemptResult) {
		if res.Error != "" {
			a.logger.Warn("attempt failed", "attempt", res.Index, "case", res.CaseID, "err", res.Error)
		}
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	if isJSON() {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else if err := printReport(cmd, report); err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d attempt(s) could not finish", report.Failed, len(report.Attempts))
	}
	return nil
}

func printReport(cmd *cobra.Command, report *script.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tCASE\tEXPLORATION\tDIAGNOSIS\tPRESCRIPTION\tTOTAL\tTIER\n")
	fmt.Fprintf(w, "-\t----\t-----------\t---------\t------------\t-----\t----\n")
	for _, res := range report.Attempts {
		if res.Score == nil {
			fmt.Fprintf(w, "%d\t%s\t-\t-\t-\t-\t%s\n", res.Index, res.CaseID, truncate("error: "+res.Error, 60))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			res.Index,
			res.CaseID,
			formatScore(&res.Score.Exploration),
			formatScore(&res.Score.Diagnosis),
			formatScore(&res.Score.Prescription),
			formatScore(&res.Score.Total),
			res.Tier)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nCompleted: %d case(s)  Aggregate score: %d\n", len(report.Completed), report.Aggregate)
	}
	return nil
}

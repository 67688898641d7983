// ABOUTME: CLI command to validate a case catalog file
// ABOUTME: Prints every problem found, not just the first
package commands

import (
	"errors"
	"fmt"

	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a case catalog for authoring mistakes",
		Long: `Check a case catalog for authoring mistakes.

Every case needs a unique id, at least one key question, valid expected
answers, exactly one correct option per prescription category, and all
four feedback texts. All problems are reported at once.

Without a file, the catalog that other commands would use is checked.

Examples:
  clinic validate cases.yaml
  clinic validate --catalog cases.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		cat    *catalog.Catalog
		source string
		err    error
	)
	if len(args) == 1 {
		source = args[0]
		cat, err = catalog.LoadFile(source)
	} else {
		var a *app
		a, err = loadApp(cmd.ErrOrStderr())
		if a != nil {
			cat, source = a.catalog, a.source
		}
	}

	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			if isJSON() {
				_ = writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"valid":    false,
					"problems": verr.Problems,
				})
			} else {
				for _, p := range verr.Problems {
					fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", p.Error())
				}
			}
			return fmt.Errorf("catalog has %d problem(s)", len(verr.Problems))
		}
		return err
	}

	if isJSON() {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"valid":    true,
			"source":   source,
			"cases":    cat.Len(),
			"case_ids": cat.IDs(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d case(s) valid\n", source, cat.Len())
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tanfmt/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Verify that formatting round-trips and is idempotent",
	Long: `check formats every file in memory, parses the result again and verifies
that the expressions are unchanged and that a second pass is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addFormatFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	results, err := driver.CheckPaths(cmd.Context(), args, st.format)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.OK {
			if !quiet {
				fmt.Fprintf(os.Stdout, "ok   %s\n", res.Path)
			}
			continue
		}
		failed++
		fmt.Fprintf(os.Stdout, "FAIL %s: %s\n", res.Path, res.Message)
	}
	if failed > 0 {
		return fmt.Errorf("check: %d of %d files failed", failed, len(results))
	}
	return nil
}

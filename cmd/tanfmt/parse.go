package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tanfmt/internal/diagfmt"
	"tanfmt/internal/driver"
	"tanfmt/internal/expr"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.tan|->",
	Short: "Parse a Tan file and print each top-level expression in compact form",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "text", "diagnostics format (text|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	switch outputFormat {
	case "text":
		renderDiagnostics(cmd, result.Bag, result.FileSet)
		for _, e := range result.Exprs {
			if e.Kind == expr.TextSeparator {
				continue
			}
			fmt.Fprintln(os.Stdout, expr.Compact(e))
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: pathMode(cmd)}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("parse: %d diagnostics", result.Bag.Len())
	}
	return nil
}

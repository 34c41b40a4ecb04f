package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tanfmt/internal/arrange"
	"tanfmt/internal/driver"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] <file.tan|->",
	Short: "Dump the layout tree the formatter renders",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().String("dialect", "", "dialect override (auto|code|data|html|css)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	var configStart []string
	if args[0] != driver.StdinPath {
		configStart = args
	}
	st, err := loadSettings(cmd, configStart)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], st.format.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Bag.HasErrors() {
		renderDiagnostics(cmd, result.Bag, result.FileSet)
		return fmt.Errorf("layout: %s has syntax errors", args[0])
	}

	d := driver.ResolveDialect(args[0], result.Exprs, st.format.AutoDialect, st.format.Options.Dialect, st.format.DataSuffixes)
	l, err := arrange.Arrange(result.Exprs, d)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	fmt.Fprintf(os.Stdout, "; dialect %s\n", d)
	fmt.Fprint(os.Stdout, l.Dump())
	return nil
}

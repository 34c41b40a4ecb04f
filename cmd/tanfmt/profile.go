package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tanfmt/internal/prof"
)

// profiling is the session started for the current invocation, stopped by main.
var profiling *prof.Session

// startProfiling reads the persistent profiling flags and starts a session
// when any of them is set.
func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var paths prof.Paths
	var err error
	if paths.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !paths.Enabled() {
		return nil
	}
	profiling, err = prof.Start(paths)
	return err
}

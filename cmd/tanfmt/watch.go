package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tanfmt/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <dir> [dir...]",
	Short: "Reformat Tan files as they change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "wait this long after the last write before formatting")
	addFormatFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	st, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return driver.Watch(ctx, args, driver.WatchOptions{
		Format:   st.format,
		Debounce: debounce,
		OnResult: func(res driver.FormatResult) {
			if res.Bag != nil && res.FileSet != nil {
				renderDiagnostics(cmd, res.Bag, res.FileSet)
			}
		},
	})
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/rawline/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rawline:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "rawline",
		Short: "Raw-mode single line editor",
		Long: `rawline puts the terminal into raw mode and edits one line in place.

Keys:      CTRL-A back to start of line, CTRL-C exit, Enter submit, Backspace delete
Commands:  quit, jump, where`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(opts).Run()
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config.toml")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log every keystroke")
	return cmd
}

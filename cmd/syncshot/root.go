package main

import (
	"github.com/spf13/cobra"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
)

// NewRootCmd builds the syncshot command around app.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syncshot",
		Short: "Keep a git working copy continuously synced with its remote",
		Long: `syncshot is a background daemon that keeps a git working copy in sync
with its upstream branch. Every period it commits any local changes with a
UTC timestamp message, fetches, and then pushes when the branch is ahead or
rebases onto upstream when it is behind.

It runs until interrupted (SIGINT, SIGTERM or SIGHUP), always letting the
git command in progress finish before exiting.`,
		Example: `  syncshot                         # Sync the current directory every 10 seconds
  syncshot --period 60 --debug     # Sync every minute with debug logging
  syncshot --repo ~/notes          # Sync another repository`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Version must work even when the file or environment is broken
			if version, err := cmd.Flags().GetBool("version"); err == nil && version {
				app.ShowVersion()
				return nil
			}
			if err := app.Config.Load(cmd.Flags()); err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return syncErrors.NewConfigError("flags", nil, syncErrors.Wrap(syncErrors.ErrInvalidFlag, err.Error()))
	})
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)
	app.Config.SetupFlags(cmd.Flags())

	return cmd
}

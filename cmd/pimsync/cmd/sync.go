package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pimsync/pimsync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		engine, closer, err := buildEngine(pimsync.WithDryRun(dryRun))
		if err != nil {
			return err
		}
		defer closer()

		contactsOnly, _ := cmd.Flags().GetBool("contacts")
		eventsOnly, _ := cmd.Flags().GetBool("events")

		ctx := cmd.Context()
		var result interface {
			Summary() string
			Err() error
		}
		switch {
		case contactsOnly && !eventsOnly:
			res, err := engine.SyncContacts(ctx)
			if err != nil {
				return err
			}
			result = res
		case eventsOnly && !contactsOnly:
			res, err := engine.SyncEvents(ctx)
			if err != nil {
				return err
			}
			result = res
		default:
			res, err := engine.Sync(ctx)
			if err != nil {
				return err
			}
			result = res
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
		return result.Err()
	},
}

func init() {
	syncCmd.Flags().Bool("contacts", false, "sync contacts only")
	syncCmd.Flags().Bool("events", false, "sync events only")
	syncCmd.Flags().Bool("dry-run", false, "report what would change without writing")
}

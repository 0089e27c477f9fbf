package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pimsync/pimsync/internal/export"
	"github.com/pimsync/pimsync/pkg/stores/files"
)

// zeroTime is the unbounded end of a listing window.
var zeroTime time.Time

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the local store's events as iCalendar",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.LocalDir == "" {
			return cmd.Help()
		}

		store := files.New("local", cfg.LocalDir)
		events, err := store.ListEvents(cmd.Context(), zeroTime, zeroTime)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		return export.ICS(cmd.Context(), out, events)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

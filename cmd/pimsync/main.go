// Command pimsync reconciles contacts and calendar events between two
// stores, either as a one-shot pass or on a schedule.
package main

import (
	"os"

	"github.com/pimsync/pimsync/cmd/pimsync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

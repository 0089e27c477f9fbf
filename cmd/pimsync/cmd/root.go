// Package cmd implements the pimsync command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pimsync/pimsync"
	"github.com/pimsync/pimsync/internal/linkage"
	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/logging"
	"github.com/pimsync/pimsync/pkg/stores"
	"github.com/pimsync/pimsync/pkg/stores/files"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "pimsync",
	Short: "Reconcile contacts and calendar events between two stores",
	Long: `pimsync keeps two personal information stores in step. Each run pairs
contacts and events across the stores, merges changed fields in both
directions, and remembers the pairings for the next run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.LogLevel = "debug"
		}
		logging.SetLevel(cfg.LogLevel)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.pimsync.yaml)")
	pf.String("local", "", "local store directory")
	pf.String("remote", "", "remote store directory")
	pf.String("linkage", "", "linkage database path (default in-memory)")
	pf.String("policy", "", "conflict policy: automatic, prefer-local, prefer-remote")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("local_dir", pf.Lookup("local"))
	_ = viper.BindPFlag("remote_dir", pf.Lookup("remote"))
	_ = viper.BindPFlag("linkage_path", pf.Lookup("linkage"))
	_ = viper.BindPFlag("policy", pf.Lookup("policy"))

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		return err
	}
	return nil
}

// buildEngine assembles an engine from the loaded configuration. The
// returned closer releases the linkage database, if one was opened.
func buildEngine(extra ...pimsync.Option) (pimsync.Engine, func() error, error) {
	if cfg.LocalDir == "" || cfg.RemoteDir == "" {
		return nil, nil, errors.NewConfigError("stores", "local and remote store directories are required", nil)
	}

	local := files.New("local", cfg.LocalDir)
	remote := files.New("remote", cfg.RemoteDir)

	var links stores.Linkages
	closer := func() error { return nil }
	if cfg.LinkagePath != "" {
		db, err := linkage.Open(cfg.LinkagePath)
		if err != nil {
			return nil, nil, err
		}
		links = db
		closer = db.Close
	} else {
		links = linkage.NewMemory()
	}

	opts := []pimsync.Option{
		pimsync.WithStores(local, remote),
		pimsync.WithLinkages(links),
		pimsync.WithPolicy(conflict.ParsePolicy(cfg.Policy)),
		pimsync.WithLogger(logging.Default()),
		pimsync.WithContactsWithoutEmail(cfg.IncludeContactsWithoutEmail),
		pimsync.WithPhotoSync(cfg.SyncPhotos),
		pimsync.WithEventWindow(cfg.EventWindowPast, cfg.EventWindowFuture),
	}
	engine, err := pimsync.New(append(opts, extra...)...)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return engine, closer, nil
}

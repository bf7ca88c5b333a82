package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yigger/githd/app"
	"github.com/yigger/githd/log"
)

var logDir string

var rootCmd = &cobra.Command{
	Use:   "githd [path ...]",
	Short: "Interactive git history and diff browser",
	Long: `githd registers a set of history and diff commands and walks you
through resolving a repository, branch, commit or author into the view to
show. Paths given as arguments seed the repository list; with none, the
current directory is used.`,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := log.DefaultConfig()
		cfg.Dir = logDir
		log.Initialize(cfg)
		defer log.Close()
		return app.Run(args)
	},
}

func init() {
	rootCmd.Flags().StringVar(&logDir, "log-dir", "", "directory for log files (default ~/.githd/logs)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

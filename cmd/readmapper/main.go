// readmapper builds and queries a compressed FM-index over a reference
// genome for exact seed-and-extend short-read mapping.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "readmapper",
		Short: "Seed-and-extend short-read mapping over a compressed FM-index",
	}
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newMapCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("readmapper failed")
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "futurebench",
	Short: "Demos and benchmarks for the future library",
	Long:  `futurebench exercises the future library: a guided demo of spawning, chaining and joining futures, and a configurable throughput benchmark for the work-stealing pool.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

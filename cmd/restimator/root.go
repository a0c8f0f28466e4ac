package main

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "restimator",
	Short: "Daily R_t estimation from reported case counts",
	Long: "Restimator estimates the time-varying effective reproduction number\n" +
		"from the daily clinical case series, with 50% credible intervals and\n" +
		"the probability that R_t exceeds 1.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

package main

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an input series for integrity without estimating",
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadSeries(validateInput)
		if err != nil {
			return err
		}
		if err := timeseries.Validate(series); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"days":  len(series),
			"first": series[0].Date.Format("2006-01-02"),
			"last":  series[len(series)-1].Date.Format("2006-01-02"),
		}).Info("series is valid")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input series (.xlsx clinical export or .csv)")
	_ = validateCmd.MarkFlagRequired("input")
}

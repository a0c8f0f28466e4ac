package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/ResearchLuxembourg/restimator/src/config"
	"github.com/ResearchLuxembourg/restimator/src/loader"
	"github.com/ResearchLuxembourg/restimator/src/pipeline"
	"github.com/ResearchLuxembourg/restimator/src/report"
	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

var (
	estimateInput  string
	estimateConfig string
	estimateOut    string
	estimateSeries string
	estimatePlot   bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Run the R_t estimation and write CSV (and plot) output",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateInput, "input", "i", "", "input series (.xlsx clinical export or .csv)")
	estimateCmd.Flags().StringVarP(&estimateConfig, "config", "c", "", "YAML config file (defaults used if omitted)")
	estimateCmd.Flags().StringVarP(&estimateOut, "out", "o", ".", "output directory")
	estimateCmd.Flags().StringVar(&estimateSeries, "series", "both", "which series to estimate: total, resident or both")
	estimateCmd.Flags().BoolVar(&estimatePlot, "plot", true, "write the R_t plot next to the CSV")
	_ = estimateCmd.MarkFlagRequired("input")
}

func selectedColumns(s string) ([]timeseries.Column, error) {
	switch s {
	case "total":
		return []timeseries.Column{timeseries.ColumnTotal}, nil
	case "resident":
		return []timeseries.Column{timeseries.ColumnResident}, nil
	case "both":
		return []timeseries.Column{timeseries.ColumnTotal, timeseries.ColumnResident}, nil
	}
	return nil, fmt.Errorf("unknown series %q (want total, resident or both)", s)
}

func loadSeries(path string) (timeseries.Series, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loader.FromXLSX(path)
	}
	return loader.FromCSV(path)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(estimateConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cols, err := selectedColumns(estimateSeries)
	if err != nil {
		return err
	}

	series, err := loadSeries(estimateInput)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"input": estimateInput,
		"days":  len(series),
	}).Info("series loaded")

	suffix := map[timeseries.Column]string{
		timeseries.ColumnTotal:    "rt-estimate",
		timeseries.ColumnResident: "rt-estimate-residents",
	}
	for _, col := range cols {
		estimates, err := pipeline.Run(series, col, cfg)
		if err != nil {
			return err
		}
		csvPath := filepath.Join(estimateOut, suffix[col]+".csv")
		if err := report.WriteCSVFile(csvPath, estimates); err != nil {
			return err
		}
		log.WithField("path", csvPath).Info("estimates written")
		if estimatePlot {
			plotPath := filepath.Join(estimateOut, suffix[col]+".png")
			title := fmt.Sprintf("Real-time effective R_t (%s)", col)
			if err := report.PlotSeries(plotPath, title, estimates); err != nil {
				return err
			}
			log.WithField("path", plotPath).Info("plot written")
		}
	}
	return nil
}

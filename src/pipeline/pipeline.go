// Package pipeline wires the estimation stages into one synchronous
// pass: validate, correct the reporting tail, smooth, fold the daily
// posteriors, extract estimates. One input series in, one estimate
// series out; any stage error aborts the run with its date context.
package pipeline

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ResearchLuxembourg/restimator/src/config"
	"github.com/ResearchLuxembourg/restimator/src/interval"
	"github.com/ResearchLuxembourg/restimator/src/nowcast"
	"github.com/ResearchLuxembourg/restimator/src/posterior"
	"github.com/ResearchLuxembourg/restimator/src/timeseries"
)

// Run estimates the daily R_t series for one count column. The config
// must already have passed Validate; the grid is still re-checked here
// because it is constructed from it.
func Run(series timeseries.Series, col timeseries.Column, cfg config.Config) ([]interval.DailyEstimate, error) {
	if err := timeseries.Validate(series); err != nil {
		return nil, err
	}

	grid, err := posterior.NewGrid(cfg.Grid.Min, cfg.Grid.Max, cfg.Grid.Step)
	if err != nil {
		return nil, err
	}

	policy, err := nowcast.ParsePolicy(cfg.Nowcast.Policy)
	if err != nil {
		return nil, err
	}
	if policy == nowcast.PolicyInflate {
		series, err = nowcast.InflateTail(series, cfg.Nowcast.Factors)
		if err != nil {
			return nil, err
		}
	}

	smoothed := timeseries.Smooth(series, cfg.SmoothingWindow, col)
	log.WithFields(log.Fields{
		"column": col.String(),
		"days":   len(smoothed),
		"window": cfg.SmoothingWindow,
	}).Debug("series smoothed")

	posteriors, err := posterior.Fold(smoothed, posterior.Params{
		Grid:           grid,
		SerialInterval: cfg.SerialInterval,
		Sigma:          cfg.ProcessSigma,
	})
	if err != nil {
		return nil, fmt.Errorf("posterior fold (%s): %w", col, err)
	}

	estimates := make([]interval.DailyEstimate, 0, len(posteriors))
	for _, dp := range posteriors {
		est, err := interval.Extract(grid, dp)
		if err != nil {
			return nil, fmt.Errorf("extract (%s): %w", col, err)
		}
		estimates = append(estimates, est)
	}

	if policy == nowcast.PolicyFlag {
		estimates = nowcast.FlagTail(estimates, cfg.Nowcast.Window)
	}

	if n := len(estimates); n > 0 {
		last := estimates[n-1]
		log.WithFields(log.Fields{
			"column": col.String(),
			"date":   last.Date.Format("2006-01-02"),
			"r_map":  last.RMap,
			"p_gt1":  last.PGt1,
		}).Info("estimation complete")
	}
	return estimates, nil
}

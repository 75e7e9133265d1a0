// Support response chart entrypoint.
//
// Generates the synthetic first-response dataset (fixed seed, 400 samples per
// channel) and renders the per-channel distribution chart to chart.png in the
// working directory. Takes no flags, reads no environment, and exits non-zero
// on any failure.
//
// Dependency direction: main -> dataset for generation; render for drawing.
// The dataset package stays free of graphics so its statistics are testable
// in isolation.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rupak-vardhan/SupportResponseChart/src/dataset"
	"github.com/rupak-vardhan/SupportResponseChart/src/render"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("chart generation failed")
		os.Exit(1)
	}
}

func run() error {
	genOpts := dataset.DefaultOptions()
	logrus.WithFields(logrus.Fields{
		"seed":        genOpts.Seed,
		"per_channel": genOpts.PerChannel,
	}).Info("generating synthetic support response times")

	ds, err := dataset.Generate(genOpts)
	if err != nil {
		return err
	}
	summaries, err := ds.Summaries()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		logrus.WithFields(logrus.Fields{
			"channel":    s.Channel,
			"count":      s.Count,
			"mean_min":   s.Mean,
			"median_min": s.Median,
			"q1_min":     s.Q1,
			"q3_min":     s.Q3,
		}).Info("channel summary")
	}

	renderOpts := render.DefaultOptions()
	if err := render.Render(ds, renderOpts); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"path":   renderOpts.OutputPath,
		"width":  renderOpts.Width,
		"height": renderOpts.Height,
	}).Info("chart written")
	return nil
}

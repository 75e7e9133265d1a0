// Package render turns a dataset into a single PNG distribution chart: one
// violin glyph per channel with inner quartile markers, plus a dashed SLA
// reference line. Drawing happens against an in-memory buffer; the output
// file is only touched once rendering has fully succeeded, and the final
// write is atomic.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/rupak-vardhan/SupportResponseChart/src/dataset"
)

var (
	// ErrConfig reports invalid render options.
	ErrConfig = errors.New("invalid render configuration")
	// ErrData reports a dataset too degenerate to estimate distributions from.
	ErrData = errors.New("degenerate dataset")
)

// minChannelSamples is the smallest per-channel sample count for which a
// density estimate is defined.
const minChannelSamples = 2

// Category axis geometry: violins sit at x = 1..4 with half a slot of margin
// on each side of the axis.
const (
	categoryMargin  = 0.5
	violinHalfWidth = 0.42
)

// Options configure the renderer.
type Options struct {
	OutputPath string
	Width      int
	Height     int
	SLAMinutes float64
	YMax       float64
}

// DefaultOptions returns the fixed chart contract: a 512x512 PNG named
// chart.png in the working directory, a 30-minute SLA line, and the y-axis
// capped at 120 minutes.
func DefaultOptions() Options {
	return Options{
		OutputPath: "chart.png",
		Width:      512,
		Height:     512,
		SLAMinutes: 30,
		YMax:       120,
	}
}

func (o Options) validate() error {
	if o.OutputPath == "" {
		return errors.Wrap(ErrConfig, "output path must not be empty")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Wrapf(ErrConfig, "dimensions must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.SLAMinutes < 0 {
		return errors.Wrapf(ErrConfig, "SLA minutes must not be negative, got %v", o.SLAMinutes)
	}
	if o.YMax <= 0 {
		return errors.Wrapf(ErrConfig, "y-axis maximum must be positive, got %v", o.YMax)
	}
	return nil
}

// Render draws the per-channel distribution chart for ds and writes it to
// opts.OutputPath, replacing any existing file. On failure no partial output
// is left behind.
func Render(ds *dataset.Dataset, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if ds == nil || ds.Len() == 0 {
		return errors.Wrap(ErrData, "dataset is empty")
	}
	channels := dataset.Channels()
	values := make([][]float64, len(channels))
	for i, c := range channels {
		vals := ds.Values(c)
		if len(vals) < minChannelSamples {
			return errors.Wrapf(ErrData, "channel %q has %d samples, need at least %d", c, len(vals), minChannelSamples)
		}
		values[i] = vals
	}

	xMin := 1 - categoryMargin
	xMax := float64(len(channels)) + categoryMargin

	series := make([]chart.Series, 0, len(channels)+1)
	ticks := make([]chart.Tick, 0, len(channels))
	for i, c := range channels {
		q, err := stats.Quartile(values[i])
		if err != nil {
			return errors.Wrapf(ErrData, "quartiles for channel %q: %v", c, err)
		}
		x := float64(i + 1)
		col := chart.GetDefaultColor(i)
		series = append(series, violinSeries{
			Style: chart.Style{
				StrokeWidth: 1.2,
				StrokeColor: col,
				FillColor:   col.WithAlpha(110),
			},
			X:         x,
			HalfWidth: violinHalfWidth,
			Values:    values[i],
			Q1:        q.Q1,
			Median:    q.Q2,
			Q3:        q.Q3,
		})
		ticks = append(ticks, chart.Tick{Value: x, Label: string(c)})
	}
	series = append(series, chart.ContinuousSeries{
		Name:    fmt.Sprintf("SLA target: %.0f min", opts.SLAMinutes),
		XValues: []float64{xMin, xMax},
		YValues: []float64{opts.SLAMinutes, opts.SLAMinutes},
		Style: chart.Style{
			StrokeWidth:     2.0,
			StrokeColor:     chart.ColorRed.WithAlpha(180),
			StrokeDashArray: []float64{6, 4},
		},
	})

	ch := chart.Chart{
		Title:      "Distribution of Customer Support First-Response Times by Channel",
		TitleStyle: chart.Style{FontSize: 11},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 26, Left: 10, Right: 12, Bottom: 10}},
		XAxis: chart.XAxis{
			Name:  "Support Channel",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "First Response Time (minutes)",
			Range: &chart.ContinuousRange{Min: 0, Max: opts.YMax},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return writeFileAtomic(opts.OutputPath, buf.Bytes())
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so a failed write never leaves a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %q", dir)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "write %q", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "close %q", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "move %q to %q", tmpPath, path)
	}
	return nil
}

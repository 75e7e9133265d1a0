package render

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// kdePoints is the number of density evaluations across a violin's support.
const kdePoints = 64

// quartileColor is used for the inner quartile markers of every violin.
var quartileColor = drawing.Color{R: 64, G: 64, B: 64, A: 200}

// violinSeries renders one channel's distribution as a mirrored kernel
// density outline with inner quartile markers. The density is evaluated only
// across the observed [min, max] of the samples, so the glyph never extends
// past the data, while samples outside the visible y-range still shape it.
type violinSeries struct {
	// Name is left empty to keep the glyph out of the legend.
	Name  string
	Style chart.Style
	// X is the category position on the x-axis.
	X float64
	// HalfWidth is the maximum half-extent of the glyph, in x-axis units.
	HalfWidth float64
	Values    []float64
	// Q1, Median, Q3 are precomputed by the renderer; chart.Series.Render
	// cannot return an error, so a statistics failure has to surface before
	// the series is built.
	Q1     float64
	Median float64
	Q3     float64
}

func (vs violinSeries) GetName() string           { return vs.Name }
func (vs violinSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (vs violinSeries) GetStyle() chart.Style     { return vs.Style }

// Validate implements chart.Series. Fewer than two samples leave the density
// estimate undefined.
func (vs violinSeries) Validate() error {
	if len(vs.Values) < minChannelSamples {
		return errors.Errorf("violin at x=%v needs at least %d values, got %d", vs.X, minChannelSamples, len(vs.Values))
	}
	return nil
}

// Len and GetValues implement chart.ValuesProvider so the chart can derive
// axis ranges from the raw samples when no explicit range is configured.
func (vs violinSeries) Len() int { return len(vs.Values) }

func (vs violinSeries) GetValues(index int) (float64, float64) {
	return vs.X, vs.Values[index]
}

// Render implements chart.Series.
func (vs violinSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	if vs.Validate() != nil {
		return
	}
	style := vs.Style.InheritFrom(defaults)

	sorted := make([]float64, len(vs.Values))
	copy(sorted, vs.Values)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	px := func(x float64) int { return canvasBox.Left + xrange.Translate(x) }
	py := func(y float64) int {
		return canvasBox.Bottom - yrange.Translate(clampf(y, yrange.GetMin(), yrange.GetMax()))
	}

	if hi-lo < 1e-9 {
		// All samples tied: the glyph collapses to a bar at that value.
		r.SetStrokeColor(style.GetStrokeColor())
		r.SetStrokeWidth(style.GetStrokeWidth())
		r.SetStrokeDashArray(nil)
		r.MoveTo(px(vs.X-vs.HalfWidth), py(lo))
		r.LineTo(px(vs.X+vs.HalfWidth), py(lo))
		r.Stroke()
		return
	}

	k := newKDE(sorted)
	grid := make([]float64, kdePoints)
	dens := make([]float64, kdePoints)
	step := (hi - lo) / float64(kdePoints-1)
	maxDens := 0.0
	for i := range grid {
		grid[i] = lo + float64(i)*step
		dens[i] = k.estimate(grid[i])
		if dens[i] > maxDens {
			maxDens = dens[i]
		}
	}
	if maxDens <= 0 || math.IsNaN(maxDens) {
		return
	}
	scale := vs.HalfWidth / maxDens

	r.SetFillColor(style.GetFillColor())
	r.SetStrokeColor(style.GetStrokeColor())
	r.SetStrokeWidth(style.GetStrokeWidth())
	r.SetStrokeDashArray(nil)
	r.MoveTo(px(vs.X+dens[0]*scale), py(grid[0]))
	for i := 1; i < kdePoints; i++ {
		r.LineTo(px(vs.X+dens[i]*scale), py(grid[i]))
	}
	for i := kdePoints - 1; i >= 0; i-- {
		r.LineTo(px(vs.X-dens[i]*scale), py(grid[i]))
	}
	r.Close()
	r.FillStroke()

	vs.drawQuartile(r, px, py, k, scale, vs.Q1, 1.0, []float64{3, 3})
	vs.drawQuartile(r, px, py, k, scale, vs.Median, 1.75, []float64{5, 3})
	vs.drawQuartile(r, px, py, k, scale, vs.Q3, 1.0, []float64{3, 3})
}

// drawQuartile draws one inner marker, clipped to the violin's width at that
// value.
func (vs violinSeries) drawQuartile(r chart.Renderer, px, py func(float64) int, k kde, scale, v, strokeWidth float64, dash []float64) {
	half := k.estimate(v) * scale
	if half <= 0 {
		return
	}
	r.SetStrokeColor(quartileColor)
	r.SetStrokeWidth(strokeWidth)
	r.SetStrokeDashArray(dash)
	r.MoveTo(px(vs.X-half), py(v))
	r.LineTo(px(vs.X+half), py(v))
	r.Stroke()
	r.SetStrokeDashArray(nil)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

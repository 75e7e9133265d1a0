// Package dataset synthesizes customer-support first-response times across
// the four support channels. Generation is pure and seed-scoped: the same
// Options always yield the same Dataset bit for bit, and no global random
// state is consulted. Rendering lives in src/render so the statistical logic
// stays testable without a graphics stack.
package dataset

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrConfig reports invalid generation options.
var ErrConfig = errors.New("invalid dataset configuration")

// Channel is a customer-support contact medium.
type Channel string

// The closed channel set.
const (
	Email       Channel = "Email"
	LiveChat    Channel = "Live Chat"
	Phone       Channel = "Phone"
	SocialMedia Channel = "Social Media"
)

// Channels returns the channel set in display order.
func Channels() []Channel {
	return []Channel{Email, LiveChat, Phone, SocialMedia}
}

// MaxResponseMinutes is the business-plausible ceiling for a first response.
// Draws above it are clamped, not re-sampled, so the distribution keeps its
// raw shape below the cap.
const MaxResponseMinutes = 180.0

// profile holds the Gamma parameters (shape k, scale theta) encoding one
// channel's response profile; the distribution mean is k*theta.
type profile struct {
	channel Channel
	shape   float64
	scale   float64
}

// Email ~45 min right-skewed, Live Chat ~5 min tight, Phone ~20 min,
// Social Media ~60 min with high variance.
var profiles = []profile{
	{Email, 3.0, 15.0},
	{LiveChat, 2.0, 2.5},
	{Phone, 2.5, 8.0},
	{SocialMedia, 3.0, 20.0},
}

// Sample is one observed first-response time, in minutes.
type Sample struct {
	Channel         Channel
	ResponseTimeMin float64
}

// Dataset is the fully materialized sample set, ordered by channel block in
// display order. It is built once per run and handed to the renderer whole.
type Dataset struct {
	Samples []Sample
}

// Options configure generation.
type Options struct {
	Seed       int64
	PerChannel int
}

// DefaultOptions returns the fixed defaults used by the chart binary.
func DefaultOptions() Options {
	return Options{Seed: 42, PerChannel: 400}
}

// Generate draws PerChannel samples per channel from that channel's Gamma
// profile and clamps every value into [0, MaxResponseMinutes]. Channels are
// drawn sequentially in display order from a single seeded source, so the
// whole stream is reproducible from the seed alone.
func Generate(opts Options) (*Dataset, error) {
	if opts.PerChannel <= 0 {
		return nil, errors.Wrapf(ErrConfig, "samples per channel must be positive, got %d", opts.PerChannel)
	}
	src := rand.NewSource(uint64(opts.Seed))
	ds := &Dataset{Samples: make([]Sample, 0, len(profiles)*opts.PerChannel)}
	for _, p := range profiles {
		// Beta is the rate parameter, the inverse of the scale.
		dist := distuv.Gamma{Alpha: p.shape, Beta: 1 / p.scale, Src: src}
		for i := 0; i < opts.PerChannel; i++ {
			ds.Samples = append(ds.Samples, Sample{
				Channel:         p.channel,
				ResponseTimeMin: clamp(dist.Rand(), 0, MaxResponseMinutes),
			})
		}
	}
	return ds, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Len returns the total sample count.
func (d *Dataset) Len() int { return len(d.Samples) }

// Values returns the response times recorded for one channel, in draw order.
func (d *Dataset) Values(ch Channel) []float64 {
	var out []float64
	for _, s := range d.Samples {
		if s.Channel == ch {
			out = append(out, s.ResponseTimeMin)
		}
	}
	return out
}

// Summary aggregates one channel's distribution.
type Summary struct {
	Channel Channel
	Count   int
	Mean    float64
	Median  float64
	Q1      float64
	Q3      float64
	Min     float64
	Max     float64
}

// Summaries computes per-channel aggregates in display order. A channel with
// no samples is reported as an error: the dataset is malformed, not sparse.
func (d *Dataset) Summaries() ([]Summary, error) {
	out := make([]Summary, 0, len(profiles))
	for _, ch := range Channels() {
		vals := d.Values(ch)
		if len(vals) == 0 {
			return nil, errors.Errorf("channel %q has no samples", ch)
		}
		mean, err := stats.Mean(vals)
		if err != nil {
			return nil, errors.Wrapf(err, "mean for channel %q", ch)
		}
		median, err := stats.Median(vals)
		if err != nil {
			return nil, errors.Wrapf(err, "median for channel %q", ch)
		}
		q, err := stats.Quartile(vals)
		if err != nil {
			return nil, errors.Wrapf(err, "quartiles for channel %q", ch)
		}
		lo, err := stats.Min(vals)
		if err != nil {
			return nil, errors.Wrapf(err, "min for channel %q", ch)
		}
		hi, err := stats.Max(vals)
		if err != nil {
			return nil, errors.Wrapf(err, "max for channel %q", ch)
		}
		out = append(out, Summary{
			Channel: ch,
			Count:   len(vals),
			Mean:    mean,
			Median:  median,
			Q1:      q.Q1,
			Q3:      q.Q3,
			Min:     lo,
			Max:     hi,
		})
	}
	return out, nil
}

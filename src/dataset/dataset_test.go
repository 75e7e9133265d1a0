package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(Options{Seed: 42, PerChannel: 50})
	require.NoError(t, err)
	b, err := Generate(Options{Seed: 42, PerChannel: 50})
	require.NoError(t, err)
	// Bit-identical, not merely approximately equal.
	assert.Equal(t, a.Samples, b.Samples)
}

func TestGenerateSeedChangesStream(t *testing.T) {
	a, err := Generate(Options{Seed: 1, PerChannel: 50})
	require.NoError(t, err)
	b, err := Generate(Options{Seed: 2, PerChannel: 50})
	require.NoError(t, err)
	assert.NotEqual(t, a.Samples, b.Samples)
}

func TestGenerateBoundsAndCounts(t *testing.T) {
	ds, err := Generate(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1600, ds.Len())

	counts := map[Channel]int{}
	for _, s := range ds.Samples {
		counts[s.Channel]++
		if math.IsNaN(s.ResponseTimeMin) || math.IsInf(s.ResponseTimeMin, 0) {
			t.Fatalf("non-finite sample for %q: %v", s.Channel, s.ResponseTimeMin)
		}
		assert.GreaterOrEqual(t, s.ResponseTimeMin, 0.0)
		assert.LessOrEqual(t, s.ResponseTimeMin, float64(MaxResponseMinutes))
	}
	require.Len(t, counts, 4)
	for _, c := range Channels() {
		assert.Equal(t, 400, counts[c], "channel %q", c)
	}
}

func TestGenerateChannelBlockOrder(t *testing.T) {
	ds, err := Generate(Options{Seed: 7, PerChannel: 3})
	require.NoError(t, err)
	var got []Channel
	for _, s := range ds.Samples {
		got = append(got, s.Channel)
	}
	assert.Equal(t, []Channel{
		Email, Email, Email,
		LiveChat, LiveChat, LiveChat,
		Phone, Phone, Phone,
		SocialMedia, SocialMedia, SocialMedia,
	}, got)
	assert.Len(t, ds.Values(Phone), 3)
}

func TestGenerateChannelMeans(t *testing.T) {
	ds, err := Generate(DefaultOptions())
	require.NoError(t, err)
	summaries, err := ds.Summaries()
	require.NoError(t, err)

	byChannel := map[Channel]Summary{}
	for _, s := range summaries {
		byChannel[s.Channel] = s
	}
	email := byChannel[Email]
	assert.Greater(t, email.Mean, 35.0)
	assert.Less(t, email.Mean, 55.0)

	chat := byChannel[LiveChat]
	assert.Greater(t, chat.Mean, 3.0)
	assert.Less(t, chat.Mean, 8.0)

	// The business profiles order the channels by expected slowness.
	assert.Less(t, chat.Mean, byChannel[Phone].Mean)
	assert.Less(t, byChannel[Phone].Mean, email.Mean)
	assert.Less(t, byChannel[Phone].Mean, byChannel[SocialMedia].Mean)
}

func TestGenerateInvalidCount(t *testing.T) {
	for _, n := range []int{0, -5} {
		_, err := Generate(Options{Seed: 42, PerChannel: n})
		require.Error(t, err, "PerChannel=%d", n)
		assert.ErrorIs(t, err, ErrConfig)
	}
}

func TestSummariesQuartileOrder(t *testing.T) {
	ds, err := Generate(DefaultOptions())
	require.NoError(t, err)
	summaries, err := ds.Summaries()
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	for _, s := range summaries {
		assert.LessOrEqual(t, s.Min, s.Q1, "channel %q", s.Channel)
		assert.LessOrEqual(t, s.Q1, s.Median, "channel %q", s.Channel)
		assert.LessOrEqual(t, s.Median, s.Q3, "channel %q", s.Channel)
		assert.LessOrEqual(t, s.Q3, s.Max, "channel %q", s.Channel)
		assert.Equal(t, 400, s.Count)
	}
}

func TestSummariesEmptyChannel(t *testing.T) {
	ds := &Dataset{Samples: []Sample{{Channel: Email, ResponseTimeMin: 12}}}
	_, err := ds.Summaries()
	require.Error(t, err)
}

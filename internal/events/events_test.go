package events

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

func testEventsConfig() config.EventsConfig {
	return config.EventsConfig{
		GraphicsKeywords: []string{
			"sign", "signage", "graphics", "printing", "wrap", "vinyl",
			"digital", "wide format", "display", "advertising", "visual",
		},
		ImportanceKeywords: []string{"expo", "international", "global", "summit", "united"},
		MajorMarkets:       []string{"las vegas", "chicago", "atlanta", "miami", "new york"},
	}
}

func TestRelevanceScore(t *testing.T) {
	rs := NewRelevanceScorer(testEventsConfig())

	t.Run("global sign and graphics expo scores high", func(t *testing.T) {
		got := rs.Score(model.Event{
			Name:     "Global Sign & Graphics Expo",
			Location: "Las Vegas, NV",
		})
		assert.Greater(t, got, 0.5)
	})

	t.Run("unrelated event scores zero", func(t *testing.T) {
		got := rs.Score(model.Event{
			Name:     "Regional Bakers Meetup",
			Location: "Boise, ID",
		})
		assert.Equal(t, 0.0, got)
	})

	t.Run("clamped at one", func(t *testing.T) {
		got := rs.Score(model.Event{
			Name:        "Global International Sign Expo Summit",
			Description: "signage graphics printing wrap vinyl digital wide format display advertising visual",
			Location:    "Las Vegas, NV",
		})
		assert.Equal(t, 1.0, got)
	})
}

type fakeSource struct {
	name string
	evs  []model.Event
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Discover(_ context.Context) ([]model.Event, error) {
	return f.evs, f.err
}

func TestDiscoverMergesAndSorts(t *testing.T) {
	rs := NewRelevanceScorer(testEventsConfig())
	d := NewDiscovererWithSources(rs,
		&fakeSource{name: "a", evs: []model.Event{
			{Name: "Quiet Industry Meeting", Location: "Boise, ID"},
			{Name: "Global Sign & Graphics Expo", Location: "Las Vegas, NV"},
		}},
		&fakeSource{name: "b", evs: []model.Event{
			{Name: "global sign & graphics expo", Location: "Las Vegas, NV"},
			{Name: "PRINTING United Expo", Location: "Atlanta, GA"},
		}},
	)

	got, err := d.Discover(context.Background())
	require.NoError(t, err)

	// Case-insensitive dedupe by name.
	require.Len(t, got, 3)
	// Sorted by relevance descending.
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].RelevanceScore, got[i].RelevanceScore)
	}
	assert.Equal(t, "Quiet Industry Meeting", got[len(got)-1].Name)
}

func TestDiscoverToleratesPartialFailure(t *testing.T) {
	rs := NewRelevanceScorer(testEventsConfig())
	d := NewDiscovererWithSources(rs,
		&fakeSource{name: "broken", err: eris.New("boom")},
		&fakeSource{name: "ok", evs: []model.Event{{Name: "PRINTING United Expo"}}},
	)

	got, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestDiscoverAllSourcesFail(t *testing.T) {
	rs := NewRelevanceScorer(testEventsConfig())
	d := NewDiscovererWithSources(rs,
		&fakeSource{name: "broken1", err: eris.New("boom")},
		&fakeSource{name: "broken2", err: eris.New("boom")},
	)

	_, err := d.Discover(context.Background())
	require.Error(t, err)
}

func TestFilterByIndustries(t *testing.T) {
	evs := []model.Event{
		{Name: "A", Industry: "Digital Signage"},
		{Name: "B", Industry: "Large Format Printing"},
		{Name: "C", Industry: "Food Service"},
	}

	got := FilterByIndustries(evs, []string{"signage", "printing"})
	require.Len(t, got, 2)

	assert.Equal(t, evs, FilterByIndustries(evs, nil))
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	cat, err := loadCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.Association)
	assert.NotEmpty(t, cat.TradeShows)
	assert.NotEmpty(t, cat.Conferences)

	var names []string
	for _, e := range cat.TradeShows {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "Global Sign & Graphics Expo")
}

package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	x, err := New(config.ExtractConfig{MaxPerEvent: 25, SeedCapPerEvent: 10, ScrapeTimeoutSecs: 5})
	require.NoError(t, err)
	return x
}

func TestExtractPrefersExhibitorList(t *testing.T) {
	x := newTestExtractor(t)

	ev := model.Event{
		Name:       "PRINTING United Expo",
		Industry:   "Large Format Printing",
		Exhibitors: []string{"HP Large Format", " Canon Solutions America ", ""},
	}

	got := x.Extract(context.Background(), ev)
	require.Len(t, got, 2)
	assert.Equal(t, "HP Large Format", got[0].Name)
	assert.Equal(t, "Canon Solutions America", got[1].Name)
	assert.Equal(t, "PRINTING United Expo", got[0].SourceEvent)
	assert.Equal(t, "Large Format Printing", got[0].Industry)
	assert.False(t, got[0].Seeded)
}

func TestExtractScrapesWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<ul class="exhibitor-list">
				<li>Roland DGA Corporation</li>
				<li>Mimaki USA</li>
				<li>Roland DGA Corporation</li>
			</ul>
		</body></html>`))
	}))
	defer srv.Close()

	x := newTestExtractor(t)
	got := x.Extract(context.Background(), model.Event{Name: "Expo", Website: srv.URL})

	require.Len(t, got, 2)
	assert.Equal(t, "Roland DGA Corporation", got[0].Name)
	assert.Equal(t, "Mimaki USA", got[1].Name)
}

func TestExtractSuffixFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<p>featuring Watchfire Signs LLC and Daktronics Inc among others.</p>
		</body></html>`))
	}))
	defer srv.Close()

	x := newTestExtractor(t)
	got := x.Extract(context.Background(), model.Event{Name: "Expo", Website: srv.URL})

	require.NotEmpty(t, got)
	var names []string
	for _, m := range got {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Watchfire Signs LLC")
}

func TestExtractFallsBackToSeeds(t *testing.T) {
	x := newTestExtractor(t)

	got := x.Extract(context.Background(), model.Event{Name: "Mystery Gathering"})

	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 10)
	for _, m := range got {
		assert.True(t, m.Seeded)
		assert.Equal(t, "Mystery Gathering", m.SourceEvent)
	}
}

func TestExtractSeedsOnScrapeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	x := newTestExtractor(t)
	got := x.Extract(context.Background(), model.Event{Name: "Broken Expo", Website: srv.URL})

	require.NotEmpty(t, got)
	assert.True(t, got[0].Seeded)
}

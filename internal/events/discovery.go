// Package events discovers industry events from multiple sources and scores
// their relevance to the signage and graphics market.
package events

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

// Discoverer fans out over its sources and merges the results into a single
// relevance-ranked event list.
type Discoverer struct {
	sources []Source
	scorer  *RelevanceScorer
}

// NewDiscoverer builds the standard discoverer: the live association page
// (with embedded fallback) plus the curated trade-show and conference
// catalogs.
func NewDiscoverer(cfg config.EventsConfig) (*Discoverer, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.ScrapeTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Discoverer{
		sources: []Source{
			newWebSource("", timeout, toEvents(cat.Association)),
			&catalogSource{name: "trade-shows", events: toEvents(cat.TradeShows)},
			&catalogSource{name: "conferences", events: toEvents(cat.Conferences)},
		},
		scorer: NewRelevanceScorer(cfg),
	}, nil
}

// NewDiscovererWithSources builds a discoverer over explicit sources.
func NewDiscovererWithSources(scorer *RelevanceScorer, sources ...Source) *Discoverer {
	return &Discoverer{sources: sources, scorer: scorer}
}

// Discover queries all sources in parallel, dedupes by name, scores
// relevance and returns events sorted by relevance descending. A failing
// source is logged and skipped; Discover fails only when every source
// fails.
func (d *Discoverer) Discover(ctx context.Context) ([]model.Event, error) {
	var (
		mu       sync.Mutex
		all      []model.Event
		failures int
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, src := range d.sources {
		g.Go(func() error {
			evs, err := src.Discover(gCtx)
			if err != nil {
				zap.L().Warn("events: source failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			all = append(all, evs...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(d.sources) {
		return nil, eris.New("events: all discovery sources failed")
	}

	merged := dedupeByName(all)
	for i := range merged {
		merged[i].RelevanceScore = d.scorer.Score(merged[i])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	zap.L().Info("events: discovery complete",
		zap.Int("sources", len(d.sources)),
		zap.Int("events", len(merged)),
	)
	return merged, nil
}

// FilterByIndustries keeps events whose industry contains any of the given
// industries (case-insensitive substring). An empty filter returns the
// input unchanged.
func FilterByIndustries(evs []model.Event, industries []string) []model.Event {
	if len(industries) == 0 {
		return evs
	}
	var out []model.Event
	for _, ev := range evs {
		ind := strings.ToLower(ev.Industry)
		for _, want := range industries {
			if strings.Contains(ind, strings.ToLower(want)) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

func dedupeByName(evs []model.Event) []model.Event {
	seen := make(map[string]bool, len(evs))
	out := make([]model.Event, 0, len(evs))
	for _, ev := range evs {
		key := strings.ToLower(strings.TrimSpace(ev.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

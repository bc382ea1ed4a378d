package events

import (
	"strings"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

// Per-keyword relevance increments.
const (
	graphicsKeywordWeight   = 0.10
	importanceKeywordWeight = 0.15
	majorMarketWeight       = 0.10
)

// RelevanceScorer scores how relevant an event is to the graphics and
// signage market.
type RelevanceScorer struct {
	graphics   []string
	importance []string
	markets    []string
}

// NewRelevanceScorer builds a scorer from the events config.
func NewRelevanceScorer(cfg config.EventsConfig) *RelevanceScorer {
	return &RelevanceScorer{
		graphics:   lowerAll(cfg.GraphicsKeywords),
		importance: lowerAll(cfg.ImportanceKeywords),
		markets:    lowerAll(cfg.MajorMarkets),
	}
}

// Score returns a relevance score in [0,1]. Each graphics keyword found in
// the event name or description adds 0.10, each importance keyword 0.15,
// and a major-market location 0.10.
func (rs *RelevanceScorer) Score(ev model.Event) float64 {
	text := strings.ToLower(ev.Name + " " + ev.Description)

	var score float64
	for _, kw := range rs.graphics {
		if strings.Contains(text, kw) {
			score += graphicsKeywordWeight
		}
	}
	for _, kw := range rs.importance {
		if strings.Contains(text, kw) {
			score += importanceKeywordWeight
		}
	}

	loc := strings.ToLower(ev.Location)
	for _, m := range rs.markets {
		if strings.Contains(loc, m) {
			score += majorMarketWeight
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

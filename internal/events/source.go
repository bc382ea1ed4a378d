package events

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/fetch"
	"github.com/instalily/leadgen/internal/model"
)

// Source produces candidate events from one origin. Sources are queried in
// parallel and individual failures are tolerated.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]model.Event, error)
}

// catalogSource serves a static slice from the embedded catalog.
type catalogSource struct {
	name   string
	events []model.Event
}

func (s *catalogSource) Name() string { return s.name }

func (s *catalogSource) Discover(_ context.Context) ([]model.Event, error) {
	return s.events, nil
}

// defaultAssociationURL is the industry association events page scraped by
// the live source.
const defaultAssociationURL = "https://www.signs.org/events"

// webSource scrapes the association events page, falling back to the
// embedded association catalog when the page is unreachable or yields
// nothing parseable.
type webSource struct {
	url      string
	client   *fetch.Client
	fallback []model.Event
}

func newWebSource(url string, timeout time.Duration, fallback []model.Event) *webSource {
	if url == "" {
		url = defaultAssociationURL
	}
	return &webSource{
		url:      url,
		client:   fetch.New(timeout),
		fallback: fallback,
	}
}

func (s *webSource) Name() string { return "association-web" }

func (s *webSource) Discover(ctx context.Context) ([]model.Event, error) {
	evs, err := s.scrape(ctx)
	if err != nil || len(evs) == 0 {
		zap.L().Warn("events: live scrape failed, using embedded catalog",
			zap.String("url", s.url),
			zap.Error(err),
		)
		return s.fallback, nil
	}
	return evs, nil
}

func (s *webSource) scrape(ctx context.Context) ([]model.Event, error) {
	doc, err := s.client.Document(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "events: scrape %s", s.url)
	}

	var evs []model.Event
	doc.Find(".event-card, .event-item, article.event").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("h2, h3, .event-title").First().Text())
		if name == "" {
			return
		}
		evs = append(evs, model.Event{
			Name:        name,
			Date:        strings.TrimSpace(sel.Find(".event-date, time").First().Text()),
			Location:    strings.TrimSpace(sel.Find(".event-location").First().Text()),
			Description: strings.TrimSpace(sel.Find("p, .event-description").First().Text()),
			Website:     sel.Find("a").First().AttrOr("href", ""),
			Industry:    "Signage and Graphics",
		})
	})
	return evs, nil
}

// Package extract pulls company mentions out of industry events: from the
// event's exhibitor list when present, from its website otherwise, and from
// the seed target list as a last resort.
package extract

import (
	"context"
	_ "embed"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/fetch"
	"github.com/instalily/leadgen/internal/model"
)

//go:embed data/seeds.yaml
var seedsYAML []byte

type seedFile struct {
	TargetCompanies []string `yaml:"target_companies"`
}

// companySuffixRe matches capitalized phrases ending in a corporate suffix,
// used as a loose fallback over page text.
var companySuffixRe = regexp.MustCompile(
	`[A-Z][A-Za-z0-9&.,'\- ]{2,60}?(?:Inc|LLC|Corp|Corporation|Company|Ltd|Group|Technologies|Solutions|Systems|Graphics)\b`,
)

// Extractor extracts company mentions from events.
type Extractor struct {
	client      *fetch.Client
	seeds       []string
	maxPerEvent int
	seedCap     int
}

// New builds an Extractor with the embedded seed list.
func New(cfg config.ExtractConfig) (*Extractor, error) {
	var sf seedFile
	if err := yaml.Unmarshal(seedsYAML, &sf); err != nil {
		return nil, eris.Wrap(err, "extract: parse embedded seeds")
	}

	timeout := time.Duration(cfg.ScrapeTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxPerEvent := cfg.MaxPerEvent
	if maxPerEvent <= 0 {
		maxPerEvent = 25
	}
	seedCap := cfg.SeedCapPerEvent
	if seedCap <= 0 {
		seedCap = 10
	}

	return &Extractor{
		client:      fetch.New(timeout),
		seeds:       sf.TargetCompanies,
		maxPerEvent: maxPerEvent,
		seedCap:     seedCap,
	}, nil
}

// Extract returns company mentions for an event. Preference order:
// explicit exhibitor list, website scrape, seed list. Scrape failures fall
// through to the seed list rather than failing the event.
func (x *Extractor) Extract(ctx context.Context, ev model.Event) []model.Mention {
	if len(ev.Exhibitors) > 0 {
		return x.fromNames(ev, ev.Exhibitors, false)
	}

	if ev.Website != "" {
		names, err := x.scrapeWebsite(ctx, ev.Website)
		if err != nil {
			zap.L().Warn("extract: website scrape failed",
				zap.String("event", ev.Name),
				zap.String("website", ev.Website),
				zap.Error(err),
			)
		}
		if len(names) > 0 {
			return x.fromNames(ev, names, false)
		}
	}

	seeds := x.seeds
	if len(seeds) > x.seedCap {
		seeds = seeds[:x.seedCap]
	}
	zap.L().Debug("extract: using seed companies",
		zap.String("event", ev.Name),
		zap.Int("count", len(seeds)),
	)
	return x.fromNames(ev, seeds, true)
}

func (x *Extractor) fromNames(ev model.Event, names []string, seeded bool) []model.Mention {
	if len(names) > x.maxPerEvent {
		names = names[:x.maxPerEvent]
	}
	out := make([]model.Mention, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, model.Mention{
			Name:          n,
			SourceEvent:   ev.Name,
			Industry:      ev.Industry,
			EventDate:     ev.Date,
			EventLocation: ev.Location,
			Seeded:        seeded,
		})
	}
	return out
}

func (x *Extractor) scrapeWebsite(ctx context.Context, url string) ([]string, error) {
	doc, err := x.client.Document(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: scrape %s", url)
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > 80 {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}

	doc.Find(".exhibitor, .exhibitor-name, .exhibitor-list li, table.exhibitors td").Each(
		func(_ int, sel *goquery.Selection) {
			add(sel.Text())
		})

	// Selector miss: fall back to scanning page text for corporate suffixes.
	if len(names) == 0 {
		for _, m := range companySuffixRe.FindAllString(doc.Text(), x.maxPerEvent) {
			add(m)
		}
	}

	if len(names) > x.maxPerEvent {
		names = names[:x.maxPerEvent]
	}
	return names, nil
}

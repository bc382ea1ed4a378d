// Package enrich deduplicates extracted company mentions and fills in
// company profiles from the curated intelligence table, name heuristics and
// an optional website scrape. Enrichment never overwrites data a company
// already has.
package enrich

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/instalily/leadgen/internal/fetch"
	"github.com/instalily/leadgen/internal/model"
)

//go:embed data/intelligence.yaml
var intelligenceYAML []byte

type intelligenceFile struct {
	Companies []intelligenceEntry `yaml:"companies"`
}

type intelligenceEntry struct {
	Name         string   `yaml:"name"`
	Industry     string   `yaml:"industry"`
	Size         string   `yaml:"size"`
	Revenue      string   `yaml:"revenue"`
	Location     string   `yaml:"location"`
	Website      string   `yaml:"website"`
	LinkedInURL  string   `yaml:"linkedin_url"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

var foldCaser = cases.Fold()

// Key returns the canonical dedup key for a company name.
func Key(name string) string {
	return foldCaser.String(strings.TrimSpace(name))
}

// Dedupe collapses mentions whose names differ only in case or surrounding
// whitespace. The first occurrence wins.
func Dedupe(mentions []model.Mention) []model.Mention {
	seen := make(map[string]bool, len(mentions))
	out := make([]model.Mention, 0, len(mentions))
	for _, m := range mentions {
		k := Key(m.Name)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// Enricher fills empty company fields from the intelligence table, then
// name heuristics, then (optionally) the company website.
type Enricher struct {
	intel       map[string]intelligenceEntry
	client      *fetch.Client
	scrapeSites bool
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithWebsiteScrape enables best-effort scraping of company websites for
// description and technology hints.
func WithWebsiteScrape(timeout time.Duration) Option {
	return func(e *Enricher) {
		e.scrapeSites = true
		e.client = fetch.New(timeout)
	}
}

// New builds an Enricher backed by the embedded intelligence table.
func New(opts ...Option) (*Enricher, error) {
	var f intelligenceFile
	if err := yaml.Unmarshal(intelligenceYAML, &f); err != nil {
		return nil, eris.Wrap(err, "enrich: parse embedded intelligence")
	}

	intel := make(map[string]intelligenceEntry, len(f.Companies))
	for _, e := range f.Companies {
		intel[Key(e.Name)] = e
	}

	en := &Enricher{intel: intel}
	for _, opt := range opts {
		opt(en)
	}
	return en, nil
}

// Enrich fills empty fields on the company and returns it. Fields that
// already carry data are left untouched.
func (e *Enricher) Enrich(ctx context.Context, c model.Company) model.Company {
	if entry, ok := e.intel[Key(c.Name)]; ok {
		c = applyIntelligence(c, entry)
	} else {
		c = applyNameHeuristics(c)
	}

	if e.scrapeSites && c.Website != "" && (c.Description == "" || len(c.Technologies) == 0) {
		e.enrichFromWebsite(ctx, &c)
	}

	if len(c.Contacts) == 0 {
		c.Contacts = []model.Contact{{
			Title:   "Decision Maker",
			Pending: true,
		}}
	}
	return c
}

func applyIntelligence(c model.Company, entry intelligenceEntry) model.Company {
	if c.Industry == "" {
		c.Industry = entry.Industry
	}
	if c.Size == "" {
		c.Size = entry.Size
	}
	if c.Revenue == "" {
		c.Revenue = entry.Revenue
	}
	if c.Location == "" {
		c.Location = entry.Location
	}
	if c.Website == "" {
		c.Website = entry.Website
	}
	if c.LinkedInURL == "" {
		c.LinkedInURL = entry.LinkedInURL
	}
	if c.Description == "" {
		c.Description = entry.Description
	}
	if len(c.Technologies) == 0 {
		c.Technologies = append([]string(nil), entry.Technologies...)
	}
	return c
}

// applyNameHeuristics guesses size and revenue tiers from tokens that
// typically indicate company scale.
func applyNameHeuristics(c model.Company) model.Company {
	lower := strings.ToLower(c.Name)
	switch {
	case containsAny(lower, "international", "global", "solutions"):
		if c.Size == "" {
			c.Size = "Large (1000+ employees)"
		}
		if c.Revenue == "" {
			c.Revenue = "$100 million+"
		}
	case containsAny(lower, "corporation", "systems", "technologies"):
		if c.Size == "" {
			c.Size = "Medium (100-1000 employees)"
		}
		if c.Revenue == "" {
			c.Revenue = "$10 million+"
		}
	}
	return c
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// technologyHints maps lowercase page tokens to technology tags. Tags are
// title-cased before attachment.
var technologyHints = []string{
	"digital printing", "led displays", "wide format", "vehicle wraps",
	"digital signage", "software",
}

var titleCaser = cases.Title(language.AmericanEnglish)

func (e *Enricher) enrichFromWebsite(ctx context.Context, c *model.Company) {
	doc, err := e.client.Document(ctx, c.Website)
	if err != nil {
		zap.L().Debug("enrich: website fetch failed",
			zap.String("company", c.Name),
			zap.Error(err),
		)
		return
	}

	if c.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			c.Description = strings.TrimSpace(desc)
		}
	}
	if len(c.Technologies) == 0 {
		text := strings.ToLower(doc.Text())
		for _, hint := range technologyHints {
			if strings.Contains(text, hint) {
				c.Technologies = append(c.Technologies, titleCaser.String(hint))
			}
		}
	}
}

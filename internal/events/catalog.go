package events

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/instalily/leadgen/internal/model"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// catalog is the embedded event seed data. The association section doubles
// as the fallback for the live scrape source.
type catalog struct {
	Association []catalogEvent `yaml:"association"`
	TradeShows  []catalogEvent `yaml:"trade_shows"`
	Conferences []catalogEvent `yaml:"conferences"`
}

type catalogEvent struct {
	Name        string   `yaml:"name"`
	Date        string   `yaml:"date"`
	Location    string   `yaml:"location"`
	Industry    string   `yaml:"industry"`
	Description string   `yaml:"description"`
	Website     string   `yaml:"website"`
	Exhibitors  []string `yaml:"exhibitors"`
}

func loadCatalog() (*catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, eris.Wrap(err, "events: parse embedded catalog")
	}
	return &c, nil
}

func toEvents(entries []catalogEvent) []model.Event {
	out := make([]model.Event, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.Event{
			Name:        e.Name,
			Date:        e.Date,
			Location:    e.Location,
			Industry:    e.Industry,
			Description: e.Description,
			Website:     e.Website,
			Exhibitors:  e.Exhibitors,
		})
	}
	return out
}

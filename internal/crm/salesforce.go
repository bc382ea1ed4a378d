// Package crm pushes qualified leads to Salesforce after a completed run.
// The push is optional and advisory: failures are logged, never surfaced to
// the pipeline caller.
package crm

import (
	"context"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/model"
)

// Client defines the Salesforce operations used by the pusher.
type Client interface {
	InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]Result, error)
}

// Result is the outcome of a single record insert.
type Result struct {
	ID      string
	Success bool
	Errors  []string
}

// sfClient wraps go-salesforce/v3. The underlying library does not accept a
// context, so ctx is only honored before the call.
type sfClient struct {
	sf *salesforce.Salesforce
}

const insertBatchSize = 200

// NewClient authenticates against Salesforce with client-credentials flow.
func NewClient(cfg config.SalesforceConfig) (Client, error) {
	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Domain,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
	})
	if err != nil {
		return nil, eris.Wrap(err, "crm: salesforce init")
	}
	return &sfClient{sf: sf}, nil
}

func (c *sfClient) InsertCollection(ctx context.Context, sObjectName string, records []map[string]any) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "crm: context done")
	}

	res, err := c.sf.InsertCollection(sObjectName, records, insertBatchSize)
	if err != nil {
		return nil, eris.Wrapf(err, "crm: insert %s collection", sObjectName)
	}

	out := make([]Result, 0, len(res.Results))
	for _, r := range res.Results {
		result := Result{ID: r.Id, Success: r.Success}
		for _, e := range r.Errors {
			result.Errors = append(result.Errors, e.Message)
		}
		out = append(out, result)
	}
	return out, nil
}

// Pusher maps qualified leads into Salesforce Lead records.
type Pusher struct {
	client Client
}

// NewPusher builds a Pusher over a Client.
func NewPusher(client Client) *Pusher {
	return &Pusher{client: client}
}

// PushLeads inserts one Salesforce Lead per lead/company pair. Returns the
// number of successful inserts.
func (p *Pusher) PushLeads(ctx context.Context, leads []model.Lead, companies map[string]model.Company) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	records := make([]map[string]any, 0, len(leads))
	for _, l := range leads {
		c := companies[l.CompanyID]
		records = append(records, map[string]any{
			"Company":     c.Name,
			"LastName":    "Unknown",
			"Industry":    c.Industry,
			"Website":     c.Website,
			"LeadSource":  c.SourceEvent,
			"Description": l.Rationale,
			"Rating":      string(l.Priority),
		})
	}

	results, err := p.client.InsertCollection(ctx, "Lead", records)
	if err != nil {
		return 0, err
	}

	var ok int
	for _, r := range results {
		if r.Success {
			ok++
			continue
		}
		zap.L().Warn("crm: lead insert rejected", zap.Strings("errors", r.Errors))
	}
	zap.L().Info("crm: lead push complete",
		zap.Int("attempted", len(records)),
		zap.Int("succeeded", ok),
	)
	return ok, nil
}

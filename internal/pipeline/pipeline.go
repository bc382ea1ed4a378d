// Package pipeline orchestrates the lead generation run: event discovery,
// exhibitor extraction, enrichment, qualification, outreach and the optional
// CRM push. Per-company failures are logged and skipped; only a failure that
// leaves the run with nothing to work on aborts it.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/config"
	"github.com/instalily/leadgen/internal/crm"
	"github.com/instalily/leadgen/internal/enrich"
	"github.com/instalily/leadgen/internal/events"
	"github.com/instalily/leadgen/internal/extract"
	"github.com/instalily/leadgen/internal/model"
	"github.com/instalily/leadgen/internal/outreach"
	"github.com/instalily/leadgen/internal/qualify"
	"github.com/instalily/leadgen/internal/store"
)

// Pipeline wires the run stages together over a shared store.
type Pipeline struct {
	cfg        *config.Config
	store      store.Store
	tracker    *Tracker
	discoverer *events.Discoverer
	extractor  *extract.Extractor
	enricher   *enrich.Enricher
	qualifier  *qualify.Qualifier
	generator  *outreach.Generator
	pusher     *crm.Pusher
}

// New creates a Pipeline. The pusher may be nil when no CRM is configured.
func New(
	cfg *config.Config,
	st store.Store,
	discoverer *events.Discoverer,
	extractor *extract.Extractor,
	enricher *enrich.Enricher,
	qualifier *qualify.Qualifier,
	generator *outreach.Generator,
	pusher *crm.Pusher,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		store:      st,
		tracker:    NewTracker(),
		discoverer: discoverer,
		extractor:  extractor,
		enricher:   enricher,
		qualifier:  qualifier,
		generator:  generator,
		pusher:     pusher,
	}
}

// Tracker exposes the run state for the status endpoint.
func (p *Pipeline) Tracker() *Tracker {
	return p.tracker
}

// Run executes a full lead generation run synchronously. It returns
// ErrRunInProgress without doing any work if another run is active.
func (p *Pipeline) Run(ctx context.Context, req model.RunRequest) (*model.RunResults, error) {
	if err := p.tracker.Begin("Initializing lead generation pipeline"); err != nil {
		return nil, err
	}
	return p.run(ctx, req)
}

// Start launches a run in the background. The error return covers only the
// concurrent-run check; run outcomes are reported through the tracker.
func (p *Pipeline) Start(ctx context.Context, req model.RunRequest) error {
	if err := p.tracker.Begin("Initializing lead generation pipeline"); err != nil {
		return err
	}
	go func() {
		if _, err := p.run(ctx, req); err != nil {
			zap.L().Error("pipeline: background run failed", zap.Error(err))
		}
	}()
	return nil
}

func (p *Pipeline) run(ctx context.Context, req model.RunRequest) (*model.RunResults, error) {
	log := zap.L()
	start := time.Now()

	maxCompanies := req.MaxCompanies
	if maxCompanies <= 0 {
		maxCompanies = p.cfg.Pipeline.MaxCompanies
	}
	industries := req.TargetIndustries
	if len(industries) == 0 {
		industries = p.cfg.ICP.TargetIndustries
	}

	fail := func(stage string, err error) (*model.RunResults, error) {
		wrapped := eris.Wrap(err, "pipeline: "+stage)
		p.tracker.Fail(wrapped.Error())
		return nil, wrapped
	}

	// Stage 1: discover events.
	p.tracker.Progress("Discovering industry events", 10, "")
	evs, err := p.discoverer.Discover(ctx)
	if err != nil {
		return fail("discover events", err)
	}
	evs = events.FilterByIndustries(evs, industries)
	log.Info("pipeline: events discovered", zap.Int("count", len(evs)))

	eventIDs := make(map[string]string, len(evs))
	for i, ev := range evs {
		stored, storeErr := p.store.CreateEvent(ctx, ev)
		if storeErr != nil {
			log.Warn("pipeline: persist event failed", zap.String("event", ev.Name), zap.Error(storeErr))
			continue
		}
		evs[i] = *stored
		eventIDs[stored.Name] = stored.ID
	}

	// Stage 2: extract exhibitor companies.
	p.tracker.Progress("Extracting exhibitor companies", 30, "")
	var mentions []model.Mention
	for _, ev := range evs {
		mentions = append(mentions, p.extractor.Extract(ctx, ev)...)
	}
	mentions = enrich.Dedupe(mentions)
	if len(mentions) > maxCompanies {
		mentions = mentions[:maxCompanies]
	}
	if len(mentions) == 0 {
		return fail("extract companies", eris.New("no companies found across events"))
	}

	// Stage 3: enrich.
	p.tracker.Progress("Enriching company profiles", 50, "")
	companies := make([]model.Company, 0, len(mentions))
	for _, m := range mentions {
		companies = append(companies, p.enricher.Enrich(ctx, m.ToCompany()))
	}

	// Stage 4: qualify and persist leads.
	p.tracker.Progress("Qualifying companies against the ICP", 70, "")
	var (
		leads         []model.Lead
		companyByID   = make(map[string]model.Company)
		outreachItems []outreach.BulkItem
	)
	for i, c := range companies {
		score := p.qualifier.Qualify(ctx, c)
		c.QualificationScore = score.Final

		stored, upsertErr := p.store.UpsertCompany(ctx, c)
		if upsertErr != nil {
			log.Warn("pipeline: persist company failed", zap.String("company", c.Name), zap.Error(upsertErr))
			continue
		}
		companyByID[stored.ID] = *stored

		if score.Final < model.QualificationThreshold {
			continue
		}

		st, stErr := p.store.CreateStakeholder(ctx, model.Stakeholder{
			CompanyID: stored.ID,
			Title:     "Decision Maker",
			Pending:   true,
		})
		if stErr != nil {
			log.Warn("pipeline: persist stakeholder failed", zap.String("company", c.Name), zap.Error(stErr))
			continue
		}

		rationale := score.Rule.Rationale
		if score.Model != nil && score.Model.Rationale != "" {
			rationale = score.Model.Rationale
		}
		// Seed-list companies never appeared in the event's exhibitor
		// list, so their leads carry no event link.
		var eventID string
		if !mentions[i].Seeded {
			eventID = eventIDs[stored.SourceEvent]
		}
		lead, leadErr := p.store.CreateLead(ctx, model.Lead{
			EventID:            eventID,
			CompanyID:          stored.ID,
			StakeholderID:      st.ID,
			QualificationScore: score.Final,
			Rationale:          rationale,
			Status:             model.LeadStatusNew,
			Priority:           model.PriorityForScore(score.Final),
		})
		if leadErr != nil {
			log.Warn("pipeline: persist lead failed", zap.String("company", c.Name), zap.Error(leadErr))
			continue
		}
		leads = append(leads, *lead)
		outreachItems = append(outreachItems, outreach.BulkItem{
			LeadID:  lead.ID,
			Company: *stored,
			Contact: *st,
		})
	}
	log.Info("pipeline: qualification complete",
		zap.Int("analyzed", len(companies)),
		zap.Int("qualified", len(leads)),
	)

	// Stage 5: outreach.
	var generated int
	if req.GenerateOutreach && p.generator != nil && len(outreachItems) > 0 {
		p.tracker.Progress("Generating personalized outreach", 80, "")
		generated = p.generateOutreach(ctx, outreachItems)
	}

	// Optional CRM push. Failures are logged, never fatal.
	if p.pusher != nil && p.cfg.Pipeline.PushToCRM && len(leads) > 0 {
		if _, pushErr := p.pusher.PushLeads(ctx, leads, companyByID); pushErr != nil {
			log.Warn("pipeline: crm push failed", zap.Error(pushErr))
		}
	}

	results := model.RunResults{
		EventsFound:       len(evs),
		CompaniesAnalyzed: len(companies),
		QualifiedLeads:    len(leads),
		OutreachGenerated: generated,
		CompletionTime:    time.Now().UTC().Format(time.RFC3339),
	}
	p.tracker.Complete(results)
	log.Info("pipeline: run complete",
		zap.Int("events", results.EventsFound),
		zap.Int("companies", results.CompaniesAnalyzed),
		zap.Int("leads", results.QualifiedLeads),
		zap.Int("outreach", results.OutreachGenerated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &results, nil
}

// generateOutreach creates outreach for leads that do not already have one
// and persists each package. Returns the number saved.
func (p *Pipeline) generateOutreach(ctx context.Context, items []outreach.BulkItem) int {
	pending := items[:0]
	for _, item := range items {
		_, err := p.store.GetOutreachByLead(ctx, item.LeadID)
		switch {
		case err == nil:
			continue
		case errors.Is(err, store.ErrNotFound):
			pending = append(pending, item)
		default:
			zap.L().Warn("pipeline: outreach lookup failed", zap.String("lead_id", item.LeadID), zap.Error(err))
		}
	}

	packages := p.generator.GenerateBulk(ctx, pending)
	var saved int
	for leadID, o := range packages {
		if _, err := p.store.CreateOutreach(ctx, *o); err != nil {
			zap.L().Warn("pipeline: persist outreach failed", zap.String("lead_id", leadID), zap.Error(err))
			continue
		}
		saved++
	}
	return saved
}

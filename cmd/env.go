package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/crm"
	"github.com/instalily/leadgen/internal/enrich"
	"github.com/instalily/leadgen/internal/events"
	"github.com/instalily/leadgen/internal/extract"
	"github.com/instalily/leadgen/internal/icp"
	"github.com/instalily/leadgen/internal/outreach"
	"github.com/instalily/leadgen/internal/pipeline"
	"github.com/instalily/leadgen/internal/qualify"
	"github.com/instalily/leadgen/internal/store"
	anthropicpkg "github.com/instalily/leadgen/pkg/anthropic"
)

// appEnv holds the initialized store and pipeline shared by the run and
// serve commands.
type appEnv struct {
	Store     store.Store
	Pipeline  *pipeline.Pipeline
	Generator *outreach.Generator
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured backend: sqlite (default), postgres, or
// memory.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store.database_url is required for the postgres driver")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initEnv builds the store, clients and pipeline. Callers should defer
// env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var aiClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("LEADGEN_ANTHROPIC_KEY not set, qualification uses rule scores and outreach uses templates")
	}

	discoverer, err := events.NewDiscoverer(cfg.Events)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	extractor, err := extract.New(cfg.Extract)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var enrichOpts []enrich.Option
	if cfg.Pipeline.EnrichScrape {
		enrichOpts = append(enrichOpts, enrich.WithWebsiteScrape(time.Duration(cfg.Extract.ScrapeTimeoutSecs)*time.Second))
	}
	enricher, err := enrich.New(enrichOpts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	maxTokens := int64(cfg.Anthropic.MaxTokens)
	qualifier := qualify.New(aiClient, icp.NewScorer(cfg.ICP), cfg.Anthropic.Model, maxTokens)
	generator := outreach.New(aiClient, cfg.Anthropic.Model, maxTokens, cfg.Outreach)

	var pusher *crm.Pusher
	if cfg.Salesforce.Domain != "" {
		sfClient, sfErr := crm.NewClient(cfg.Salesforce)
		if sfErr != nil {
			zap.L().Warn("salesforce init failed, crm push disabled", zap.Error(sfErr))
		} else {
			pusher = crm.NewPusher(sfClient)
			zap.L().Info("salesforce crm push enabled")
		}
	}

	p := pipeline.New(cfg, st, discoverer, extractor, enricher, qualifier, generator, pusher)

	return &appEnv{
		Store:     st,
		Pipeline:  p,
		Generator: generator,
	}, nil
}

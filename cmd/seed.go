package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/enrich"
	"github.com/instalily/leadgen/internal/events"
	"github.com/instalily/leadgen/internal/extract"
)

// seedCmd populates the store with the embedded event catalog and seed
// companies so the dashboard has data before the first full run.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the embedded event catalog and seed companies into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		discoverer, err := events.NewDiscoverer(cfg.Events)
		if err != nil {
			return err
		}
		extractor, err := extract.New(cfg.Extract)
		if err != nil {
			return err
		}
		enricher, err := enrich.New()
		if err != nil {
			return err
		}

		evs, err := discoverer.Discover(ctx)
		if err != nil {
			return err
		}

		var companies int
		for _, ev := range evs {
			if _, evErr := st.CreateEvent(ctx, ev); evErr != nil {
				zap.L().Warn("seed: persist event failed", zap.String("event", ev.Name), zap.Error(evErr))
				continue
			}
			for _, m := range enrich.Dedupe(extractor.Extract(ctx, ev)) {
				c := enricher.Enrich(ctx, m.ToCompany())
				if _, cErr := st.UpsertCompany(ctx, c); cErr != nil {
					zap.L().Warn("seed: persist company failed", zap.String("company", c.Name), zap.Error(cErr))
					continue
				}
				companies++
			}
		}

		zap.L().Info("seed complete",
			zap.Int("events", len(evs)),
			zap.Int("companies", companies),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored events, companies, leads and outreach",
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

		if err := st.Clear(ctx); err != nil {
			return err
		}
		zap.L().Info("store cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

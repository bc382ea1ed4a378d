package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/instalily/leadgen/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leads to JSON, CSV or XLSX",
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

		rows, err := st.ExportLeads(ctx)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOut != "" {
			f, createErr := os.Create(exportOut)
			if createErr != nil {
				return eris.Wrap(createErr, "create output file")
			}
			defer f.Close()
			out = f
		}

		if err := export.Write(out, rows, exportFormat); err != nil {
			return err
		}
		zap.L().Info("export complete",
			zap.Int("leads", len(rows)),
			zap.String("format", exportFormat),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatJSON, "output format: json, csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/instalily/leadgen/internal/model"
)

var (
	runIndustries   []string
	runMaxCompanies int
	runOutreach     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lead generation pipeline once",
	Long:  "Discovers events, extracts and qualifies exhibiting companies, and optionally generates outreach. Prints the run summary as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		results, err := env.Pipeline.Run(cmd.Context(), model.RunRequest{
			TargetIndustries: runIndustries,
			MaxCompanies:     runMaxCompanies,
			GenerateOutreach: runOutreach,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runIndustries, "industries", nil, "target industries (default from config)")
	runCmd.Flags().IntVar(&runMaxCompanies, "max-companies", 0, "max companies to analyze (default from config)")
	runCmd.Flags().BoolVar(&runOutreach, "outreach", false, "generate outreach for qualified leads")
	rootCmd.AddCommand(runCmd)
}

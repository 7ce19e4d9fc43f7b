package cmd

import (
	"github.com/spf13/cobra"
)

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Print the trial balance for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest()
		if err != nil {
			return err
		}
		tb, err := reports.TrialBalance(cmd.Context(), req)
		if err != nil {
			return err
		}
		return renderTrialBalance(cmd.OutOrStdout(), tb)
	},
}

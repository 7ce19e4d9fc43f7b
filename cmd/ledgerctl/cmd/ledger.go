package cmd

import (
	"github.com/spf13/cobra"
)

var accountID int64

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the ledger of one account with running balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest()
		if err != nil {
			return err
		}
		l, err := reports.Ledger(cmd.Context(), accountID, req)
		if err != nil {
			return err
		}
		return renderLedger(cmd.OutOrStdout(), l)
	},
}

func init() {
	ledgerCmd.Flags().Int64Var(&accountID, "account", 0, "account id")
	_ = ledgerCmd.MarkFlagRequired("account")
}

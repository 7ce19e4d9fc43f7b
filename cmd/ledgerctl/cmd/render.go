package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xxz807/finscale/reports/internal/ledger/engine"
)

// renderTrialBalance 以对齐的文本表格输出科目余额表
func renderTrialBalance(out io.Writer, tb *engine.TrialBalance) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Code\tAccount\tOpening Dr\tOpening Cr\tPeriod Dr\tPeriod Cr\tClosing Dr\tClosing Cr\t")
	for _, r := range tb.Rows {
		name := strings.Repeat("  ", r.Indent) + r.AccountName
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.AccountCode, name,
			r.OpeningDebit.StringFixed(2), r.OpeningCredit.StringFixed(2),
			r.PeriodDebit.StringFixed(2), r.PeriodCredit.StringFixed(2),
			r.ClosingDebit.StringFixed(2), r.ClosingCredit.StringFixed(2))
	}
	t := tb.Totals
	fmt.Fprintf(w, "\tTotal\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		t.OpeningDebit.StringFixed(2), t.OpeningCredit.StringFixed(2),
		t.PeriodDebit.StringFixed(2), t.PeriodCredit.StringFixed(2),
		t.ClosingDebit.StringFixed(2), t.ClosingCredit.StringFixed(2))
	if err := w.Flush(); err != nil {
		return err
	}

	status := "BALANCED"
	if !tb.Balanced {
		status = "NOT BALANCED"
	}
	fmt.Fprintln(out, status)
	if tb.Skipped > 0 {
		fmt.Fprintf(out, "%d postings skipped (account not in report)\n", tb.Skipped)
	}
	return nil
}

// renderLedger 输出单个科目的明细账及滚动余额
func renderLedger(out io.Writer, l *engine.Ledger) error {
	if !l.Found {
		fmt.Fprintf(out, "account %d not found\n", l.AccountID)
		return nil
	}
	fmt.Fprintf(out, "%s %s\n", l.Account.Code, l.Account.Name)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tEntry\tDescription\tBranch\tDebit\tCredit\tBalance\t")
	fmt.Fprintf(w, "\t\tOpening balance\t\t\t\t%s\t\n", l.OpeningBalance.StringFixed(2))
	for _, r := range l.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.EntryDate.Format(dateLayout), r.EntryNumber, r.Description, r.BranchName,
			r.Debit.StringFixed(2), r.Credit.StringFixed(2), r.RunningBalance.StringFixed(2))
	}
	fmt.Fprintf(w, "\t\tTotal\t\t%s\t%s\t%s\t\n",
		l.PeriodDebit.StringFixed(2), l.PeriodCredit.StringFixed(2), l.ClosingBalance.StringFixed(2))
	return w.Flush()
}

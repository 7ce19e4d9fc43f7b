package api

import (
	"github.com/shopspring/decimal"

	"github.com/xxz807/finscale/reports/internal/ledger/engine"
)

const dateLayout = "2006-01-02"

// ReportQuery 报表查询参数 (query string)
// 日期格式 YYYY-MM-DD
type ReportQuery struct {
	Start    string `form:"start" binding:"required"`
	End      string `form:"end" binding:"required"`
	BranchID *int64 `form:"branch_id"`
}

// 金额一律以两位小数字符串返回，防止前端精度丢失
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type TrialBalanceRowResp struct {
	AccountID     int64  `json:"account_id,omitempty"`
	AccountCode   string `json:"account_code"`
	AccountName   string `json:"account_name"`
	Level         int    `json:"level"`
	Indent        int    `json:"indent"`
	OpeningDebit  string `json:"opening_debit"`
	OpeningCredit string `json:"opening_credit"`
	PeriodDebit   string `json:"period_debit"`
	PeriodCredit  string `json:"period_credit"`
	ClosingDebit  string `json:"closing_debit"`
	ClosingCredit string `json:"closing_credit"`
}

type TrialBalanceResp struct {
	Start    string                `json:"start"`
	End      string                `json:"end"`
	BranchID *int64                `json:"branch_id,omitempty"`
	Rows     []TrialBalanceRowResp `json:"rows"`
	Totals   TrialBalanceRowResp   `json:"totals"`
	Balanced bool                  `json:"balanced"`
	Skipped  int                   `json:"skipped_count"`
}

type LedgerRowResp struct {
	EntryDate      string `json:"entry_date"`
	EntryNumber    string `json:"entry_number"`
	Description    string `json:"description"`
	BranchName     string `json:"branch_name"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	RunningBalance string `json:"running_balance"`
}

type LedgerResp struct {
	AccountID      int64           `json:"account_id"`
	AccountCode    string          `json:"account_code,omitempty"`
	AccountName    string          `json:"account_name,omitempty"`
	Found          bool            `json:"found"`
	OpeningBalance string          `json:"opening_balance"`
	PeriodDebit    string          `json:"period_debit"`
	PeriodCredit   string          `json:"period_credit"`
	ClosingBalance string          `json:"closing_balance"`
	Rows           []LedgerRowResp `json:"rows"`
}

func toTrialBalanceRow(r engine.TrialBalanceRow) TrialBalanceRowResp {
	return TrialBalanceRowResp{
		AccountID:     r.AccountID,
		AccountCode:   r.AccountCode,
		AccountName:   r.AccountName,
		Level:         r.Level,
		Indent:        r.Indent,
		OpeningDebit:  money(r.OpeningDebit),
		OpeningCredit: money(r.OpeningCredit),
		PeriodDebit:   money(r.PeriodDebit),
		PeriodCredit:  money(r.PeriodCredit),
		ClosingDebit:  money(r.ClosingDebit),
		ClosingCredit: money(r.ClosingCredit),
	}
}

func toTrialBalanceResp(q ReportQuery, tb *engine.TrialBalance) TrialBalanceResp {
	resp := TrialBalanceResp{
		Start:    q.Start,
		End:      q.End,
		BranchID: q.BranchID,
		Rows:     make([]TrialBalanceRowResp, 0, len(tb.Rows)),
		Totals:   toTrialBalanceRow(tb.Totals),
		Balanced: tb.Balanced,
		Skipped:  tb.Skipped,
	}
	for _, r := range tb.Rows {
		resp.Rows = append(resp.Rows, toTrialBalanceRow(r))
	}
	return resp
}

func toLedgerResp(l *engine.Ledger) LedgerResp {
	resp := LedgerResp{
		AccountID:      l.AccountID,
		AccountCode:    l.Account.Code,
		AccountName:    l.Account.Name,
		Found:          l.Found,
		OpeningBalance: money(l.OpeningBalance),
		PeriodDebit:    money(l.PeriodDebit),
		PeriodCredit:   money(l.PeriodCredit),
		ClosingBalance: money(l.ClosingBalance),
		Rows:           make([]LedgerRowResp, 0, len(l.Rows)),
	}
	for _, r := range l.Rows {
		resp.Rows = append(resp.Rows, LedgerRowResp{
			EntryDate:      r.EntryDate.Format(dateLayout),
			EntryNumber:    r.EntryNumber,
			Description:    r.Description,
			BranchName:     r.BranchName,
			Debit:          money(r.Debit),
			Credit:         money(r.Credit),
			RunningBalance: money(r.RunningBalance),
		})
	}
	return resp
}

package engine

import (
	"github.com/shopspring/decimal"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
)

// TrialBalanceRow 试算平衡表行 (展示层直接消费)
type TrialBalanceRow struct {
	AccountID     int64
	AccountCode   string
	AccountName   string
	Level         int
	Indent        int // 科目树缩进层数 = Level - 1
	OpeningDebit  decimal.Decimal
	OpeningCredit decimal.Decimal
	PeriodDebit   decimal.Decimal
	PeriodCredit  decimal.Decimal
	ClosingDebit  decimal.Decimal
	ClosingCredit decimal.Decimal
}

// TrialBalance 试算平衡表
type TrialBalance struct {
	Rows     []TrialBalanceRow
	Totals   TrialBalanceRow // 合计行，科目字段为空
	Balanced bool
	Skipped  int
}

// Ledger 科目明细账报表
type Ledger struct {
	Found   bool // accountID 不在科目集合内时为 false，其余字段为零值
	Account domain.Account
	AccountLedger
}

// BuildTrialBalance 生成试算平衡表
// 空输入返回空表、零合计、Balanced = true
func BuildTrialBalance(accounts []domain.Account, postings []domain.Posting, req domain.Request) TrialBalance {
	agg := Aggregate(accounts, postings, req)

	tb := TrialBalance{
		Rows:     make([]TrialBalanceRow, 0, len(agg.Rows)),
		Totals:   toRow(agg.Totals),
		Balanced: agg.Balanced,
		Skipped:  agg.Skipped,
	}
	for _, r := range agg.Rows {
		tb.Rows = append(tb.Rows, toRow(r))
	}
	return tb
}

// BuildLedger 生成单科目明细账，未知科目返回空结果而不是错误
func BuildLedger(accountID int64, accounts []domain.Account, postings []domain.Posting, req domain.Request) Ledger {
	for _, a := range accounts {
		if a.ID == accountID {
			return Ledger{
				Found:         true,
				Account:       a,
				AccountLedger: BuildAccountLedger(accountID, postings, req),
			}
		}
	}
	return Ledger{AccountLedger: AccountLedger{AccountID: accountID, Rows: []LedgerRow{}}}
}

func toRow(r AccountBalanceRow) TrialBalanceRow {
	return TrialBalanceRow{
		AccountID:     r.Account.ID,
		AccountCode:   r.Account.Code,
		AccountName:   r.Account.Name,
		Level:         r.Account.Level,
		Indent:        indent(r.Account.Level),
		OpeningDebit:  r.OpeningDebit,
		OpeningCredit: r.OpeningCredit,
		PeriodDebit:   r.PeriodDebit,
		PeriodCredit:  r.PeriodCredit,
		ClosingDebit:  r.ClosingDebit,
		ClosingCredit: r.ClosingCredit,
	}
}

func indent(level int) int {
	if level <= 1 {
		return 0
	}
	return level - 1
}

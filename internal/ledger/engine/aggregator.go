package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
)

// AccountBalanceRow 单个科目的期初/本期/期末
// 期初是借贷分别累计的毛额，期末是轧差后的单边余额
type AccountBalanceRow struct {
	Account       domain.Account
	OpeningDebit  decimal.Decimal
	OpeningCredit decimal.Decimal
	PeriodDebit   decimal.Decimal
	PeriodCredit  decimal.Decimal
	ClosingDebit  decimal.Decimal
	ClosingCredit decimal.Decimal
}

// OpeningBalance 期初净额 (借 - 贷)
func (r AccountBalanceRow) OpeningBalance() decimal.Decimal {
	return r.OpeningDebit.Sub(r.OpeningCredit)
}

// ClosingBalance 期末净额 (借 - 贷)
func (r AccountBalanceRow) ClosingBalance() decimal.Decimal {
	return r.ClosingDebit.Sub(r.ClosingCredit)
}

// IsZero 六个字段全为零
func (r AccountBalanceRow) IsZero() bool {
	return r.OpeningDebit.IsZero() && r.OpeningCredit.IsZero() &&
		r.PeriodDebit.IsZero() && r.PeriodCredit.IsZero() &&
		r.ClosingDebit.IsZero() && r.ClosingCredit.IsZero()
}

func (r *AccountBalanceRow) add(o AccountBalanceRow) {
	r.OpeningDebit = r.OpeningDebit.Add(o.OpeningDebit)
	r.OpeningCredit = r.OpeningCredit.Add(o.OpeningCredit)
	r.PeriodDebit = r.PeriodDebit.Add(o.PeriodDebit)
	r.PeriodCredit = r.PeriodCredit.Add(o.PeriodCredit)
	r.ClosingDebit = r.ClosingDebit.Add(o.ClosingDebit)
	r.ClosingCredit = r.ClosingCredit.Add(o.ClosingCredit)
}

// Aggregation 聚合结果
type Aggregation struct {
	Rows     []AccountBalanceRow // 按科目代码升序，已去掉全零科目
	Totals   AccountBalanceRow   // 列合计，Account 为空
	Balanced bool
	Skipped  int // 科目不在请求集合内而被丢弃的分录数
}

// Aggregate 把分录折叠成每个科目的期初/本期/期末
func Aggregate(accounts []domain.Account, postings []domain.Posting, req domain.Request) Aggregation {
	// 所有请求科目先置零，没有分录的科目也要有位置
	acc := make(map[int64]*AccountBalanceRow, len(accounts))
	order := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := acc[a.ID]; dup {
			continue
		}
		acc[a.ID] = &AccountBalanceRow{Account: a}
		order = append(order, a.ID)
	}

	var result Aggregation
	for _, p := range postings {
		if !req.MatchesBranch(p) {
			continue
		}
		row, ok := acc[p.AccountID]
		if !ok {
			result.Skipped++
			continue
		}
		switch Classify(p.EntryDate, req.Start, req.End) {
		case BucketOpening:
			row.OpeningDebit = row.OpeningDebit.Add(p.Debit)
			row.OpeningCredit = row.OpeningCredit.Add(p.Credit)
		case BucketPeriod:
			row.PeriodDebit = row.PeriodDebit.Add(p.Debit)
			row.PeriodCredit = row.PeriodCredit.Add(p.Credit)
		}
	}

	for _, id := range order {
		row := acc[id]
		closing := row.OpeningBalance().Add(row.PeriodDebit).Sub(row.PeriodCredit)
		row.ClosingDebit = decimal.Max(closing, decimal.Zero)
		row.ClosingCredit = decimal.Max(closing.Neg(), decimal.Zero)
		if row.IsZero() {
			continue
		}
		result.Rows = append(result.Rows, *row)
	}

	// 科目代码按字符串比较，不按数值
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Account.Code < result.Rows[j].Account.Code
	})

	for _, row := range result.Rows {
		result.Totals.add(row)
	}
	// 借贷差额小于半分 (0.005) 视为平衡
	diff := result.Totals.ClosingDebit.Sub(result.Totals.ClosingCredit).Abs()
	result.Balanced = diff.LessThan(decimal.New(5, -3))

	return result
}

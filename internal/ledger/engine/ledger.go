package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
)

// LedgerRow 明细账的一行，RunningBalance 是计入本行之后的累计余额
type LedgerRow struct {
	EntryDate      time.Time
	EntryNumber    string
	Description    string
	BranchName     string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// AccountLedger 单科目明细账
// 注意：这里的期初是轧差后的单一净额，和试算平衡表的毛额期初不同
type AccountLedger struct {
	AccountID      int64
	OpeningBalance decimal.Decimal
	Rows           []LedgerRow
	PeriodDebit    decimal.Decimal
	PeriodCredit   decimal.Decimal
	ClosingBalance decimal.Decimal
}

// BuildAccountLedger 计算期初净额，再按日期顺序回放本期分录
func BuildAccountLedger(accountID int64, postings []domain.Posting, req domain.Request) AccountLedger {
	l := AccountLedger{AccountID: accountID}

	var inRange []domain.Posting
	for _, p := range postings {
		if p.AccountID != accountID || !req.MatchesBranch(p) {
			continue
		}
		switch Classify(p.EntryDate, req.Start, req.End) {
		case BucketOpening:
			l.OpeningBalance = l.OpeningBalance.Add(p.Net())
		case BucketPeriod:
			inRange = append(inRange, p)
		}
	}

	// 同日按 Seq，Seq 相同保持数据源顺序
	sort.SliceStable(inRange, func(i, j int) bool {
		di, dj := civilDate(inRange[i].EntryDate), civilDate(inRange[j].EntryDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return inRange[i].Seq < inRange[j].Seq
	})

	running := l.OpeningBalance
	l.Rows = make([]LedgerRow, 0, len(inRange))
	for _, p := range inRange {
		running = running.Add(p.Net())
		l.PeriodDebit = l.PeriodDebit.Add(p.Debit)
		l.PeriodCredit = l.PeriodCredit.Add(p.Credit)
		l.Rows = append(l.Rows, LedgerRow{
			EntryDate:      p.EntryDate,
			EntryNumber:    p.EntryNumber,
			Description:    p.Description,
			BranchName:     p.BranchName,
			Debit:          p.Debit,
			Credit:         p.Credit,
			RunningBalance: running,
		})
	}
	l.ClosingBalance = running

	return l
}

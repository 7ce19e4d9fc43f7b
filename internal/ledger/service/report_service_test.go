package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
	"github.com/xxz807/finscale/reports/internal/platform/cache"
)

type fakeAccounts struct {
	accounts []domain.Account
	err      error
}

func (f *fakeAccounts) ListActive(context.Context) ([]domain.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts, nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.accounts {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// fakePostings 内存数据源，过滤规则与 gorm 实现一致
type fakePostings struct {
	postings   []domain.Posting
	countDelta int64 // 模拟 Count 与实际数据不一致
	err        error
	findCalls  int
}

func (f *fakePostings) match(q domain.PostingQuery, p domain.Posting) bool {
	if len(q.AccountIDs) > 0 {
		found := false
		for _, id := range q.AccountIDs {
			found = found || id == p.AccountID
		}
		if !found {
			return false
		}
	}
	if q.Before != nil && !p.EntryDate.Before(*q.Before) {
		return false
	}
	if q.From != nil && p.EntryDate.Before(*q.From) {
		return false
	}
	if q.To != nil && p.EntryDate.After(*q.To) {
		return false
	}
	if q.BranchID != nil && (p.BranchID == nil || *p.BranchID != *q.BranchID) {
		return false
	}
	return true
}

func (f *fakePostings) filtered(q domain.PostingQuery) []domain.Posting {
	var out []domain.Posting
	for _, p := range f.postings {
		if f.match(q, p) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakePostings) CountPostings(_ context.Context, q domain.PostingQuery) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.filtered(q))) + f.countDelta, nil
}

func (f *fakePostings) FindPostings(_ context.Context, q domain.PostingQuery) ([]domain.Posting, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	all := f.filtered(q)
	if q.Offset >= len(all) {
		return nil, nil
	}
	end := len(all)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return all[q.Offset:end], nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func fixtures() (*fakeAccounts, *fakePostings) {
	accounts := &fakeAccounts{accounts: []domain.Account{
		{ID: 1, Code: "1101", Name: "Cash", Level: 1, Status: domain.AccountStatusActive},
		{ID: 2, Code: "4001", Name: "Revenue", Level: 1, Status: domain.AccountStatusActive},
	}}
	postings := &fakePostings{postings: []domain.Posting{
		{Seq: 1, AccountID: 1, Debit: decimal.NewFromInt(100), EntryDate: day("2023-01-05"), EntryNumber: "JE-1"},
		{Seq: 2, AccountID: 2, Credit: decimal.NewFromInt(100), EntryDate: day("2023-01-05"), EntryNumber: "JE-1"},
		{Seq: 3, AccountID: 2, Debit: decimal.NewFromInt(40), EntryDate: day("2023-02-10"), EntryNumber: "JE-2"},
		{Seq: 4, AccountID: 1, Credit: decimal.NewFromInt(40), EntryDate: day("2023-02-10"), EntryNumber: "JE-2"},
		{Seq: 5, AccountID: 1, Debit: decimal.NewFromInt(20), EntryDate: day("2023-03-01"), EntryNumber: "JE-3"},
		{Seq: 6, AccountID: 2, Credit: decimal.NewFromInt(20), EntryDate: day("2023-03-01"), EntryNumber: "JE-3"},
	}}
	return accounts, postings
}

func febRequest() domain.Request {
	return domain.Request{Start: day("2023-02-01"), End: day("2023-02-28")}
}

func TestTrialBalancePaginatesAndAggregates(t *testing.T) {
	accounts, postings := fixtures()
	svc := NewReportService(accounts, postings, nil, Options{PageSize: 2}, zap.NewNop())

	tb, err := svc.TrialBalance(context.Background(), febRequest())
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tb.Rows))
	}
	if !tb.Rows[0].ClosingDebit.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected cash closing debit 60, got %s", tb.Rows[0].ClosingDebit)
	}
	if !tb.Rows[1].ClosingCredit.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected revenue closing credit 60, got %s", tb.Rows[1].ClosingCredit)
	}
	if !tb.Balanced {
		t.Fatalf("expected balanced trial balance")
	}
	// 4 条 <= end 的分录，每页 2 条
	if postings.findCalls != 2 {
		t.Fatalf("expected 2 page fetches, got %d", postings.findCalls)
	}
}

func TestTrialBalanceIncompleteFetch(t *testing.T) {
	accounts, postings := fixtures()
	postings.countDelta = 1
	svc := NewReportService(accounts, postings, nil, Options{PageSize: 10}, zap.NewNop())

	_, err := svc.TrialBalance(context.Background(), febRequest())
	if !errors.Is(err, domain.ErrIncompleteFetch) {
		t.Fatalf("expected incomplete fetch, got %v", err)
	}
}

func TestTrialBalanceSourceFailure(t *testing.T) {
	accounts, postings := fixtures()
	postings.err = domain.ErrPostingSourceUnavailable
	svc := NewReportService(accounts, postings, nil, Options{}, zap.NewNop())

	_, err := svc.TrialBalance(context.Background(), febRequest())
	if !errors.Is(err, domain.ErrPostingSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
}

func TestTrialBalanceLogsSkippedPostings(t *testing.T) {
	accounts, postings := fixtures()
	postings.postings = append(postings.postings, domain.Posting{
		Seq: 7, AccountID: 99, Debit: decimal.NewFromInt(5), EntryDate: day("2023-02-11"),
	})
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewReportService(accounts, postings, nil, Options{}, zap.New(core))

	tb, err := svc.TrialBalance(context.Background(), febRequest())
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if tb.Skipped != 1 {
		t.Fatalf("expected 1 skipped posting, got %d", tb.Skipped)
	}
	entries := logs.FilterMessage("Postings reference accounts outside the report").All()
	if len(entries) != 1 {
		t.Fatalf("expected skipped warning, got %d entries", len(entries))
	}
	if entries[0].ContextMap()["skipped"] != int64(1) {
		t.Fatalf("unexpected skipped field: %v", entries[0].ContextMap()["skipped"])
	}
}

func TestTrialBalanceUsesCache(t *testing.T) {
	accounts, postings := fixtures()
	svc := NewReportService(accounts, postings, cache.NewMemoryCache(), Options{CacheTTL: time.Minute}, zap.NewNop())
	ctx := context.Background()

	first, err := svc.TrialBalance(ctx, febRequest())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	calls := postings.findCalls

	second, err := svc.TrialBalance(ctx, febRequest())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if postings.findCalls != calls {
		t.Fatalf("expected cached result, source was called again")
	}
	if len(second.Rows) != len(first.Rows) || !second.Totals.ClosingDebit.Equal(first.Totals.ClosingDebit) {
		t.Fatalf("cached report differs from first build")
	}
}

func TestLedgerOpeningAndRows(t *testing.T) {
	accounts, postings := fixtures()
	svc := NewReportService(accounts, postings, nil, Options{PageSize: 1}, zap.NewNop())

	l, err := svc.Ledger(context.Background(), 1, febRequest())
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if !l.Found {
		t.Fatalf("expected account to be found")
	}
	if !l.OpeningBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected opening 100, got %s", l.OpeningBalance)
	}
	if len(l.Rows) != 1 || !l.Rows[0].RunningBalance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected rows: %+v", l.Rows)
	}
}

func TestLedgerUnknownAccountIsEmpty(t *testing.T) {
	accounts, postings := fixtures()
	svc := NewReportService(accounts, postings, nil, Options{}, zap.NewNop())

	l, err := svc.Ledger(context.Background(), 404, febRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if l.Found || len(l.Rows) != 0 || !l.OpeningBalance.IsZero() {
		t.Fatalf("expected empty ledger, got %+v", l)
	}
	if postings.findCalls != 0 {
		t.Fatalf("expected no posting fetch for unknown account")
	}
}

func TestLedgerCanceledContext(t *testing.T) {
	accounts, postings := fixtures()
	svc := NewReportService(accounts, postings, nil, Options{PageSize: 1}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Ledger(ctx, 1, febRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
	"github.com/xxz807/finscale/reports/internal/ledger/engine"
	"github.com/xxz807/finscale/reports/internal/platform/cache"
)

const dateLayout = "2006-01-02"

// Options 报表服务参数
type Options struct {
	PageSize int           // 每页拉取的分录数
	CacheTTL time.Duration // 0 表示不缓存
}

// ReportService 报表服务：从数据源取全分录，交给引擎聚合
type ReportService struct {
	accountRepo domain.AccountRepository
	postings    domain.PostingSource
	cache       cache.Cache
	opts        Options
	logger      *zap.Logger
}

func NewReportService(
	accountRepo domain.AccountRepository,
	postings domain.PostingSource,
	c cache.Cache,
	opts Options,
	logger *zap.Logger,
) *ReportService {
	if c == nil {
		c = cache.NoopCache{}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 5000
	}
	return &ReportService{
		accountRepo: accountRepo,
		postings:    postings,
		cache:       c,
		opts:        opts,
		logger:      logger,
	}
}

// TrialBalance 试算平衡表
// 取 entry_date <= end 的全部分录，期初/本期由引擎划分；
// 不按科目过滤，这样引用了停用科目的分录会被计入 Skipped
func (s *ReportService) TrialBalance(ctx context.Context, req domain.Request) (*engine.TrialBalance, error) {
	key := "tb:" + requestKey(req)
	var tb engine.TrialBalance
	if s.fromCache(ctx, key, &tb) {
		return &tb, nil
	}

	start := time.Now()
	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	postings, err := s.fetchAll(ctx, domain.PostingQuery{To: &req.End, BranchID: req.BranchID})
	if err != nil {
		return nil, err
	}

	tb = engine.BuildTrialBalance(accounts, postings, req)

	fields := []zap.Field{
		zap.String("start", req.Start.Format(dateLayout)),
		zap.String("end", req.End.Format(dateLayout)),
		zap.Int("postings", len(postings)),
		zap.Int("rows", len(tb.Rows)),
		zap.Duration("cost", time.Since(start)),
	}
	if tb.Skipped > 0 {
		s.logger.Warn("Postings reference accounts outside the report", append(fields, zap.Int("skipped", tb.Skipped))...)
	}
	if !tb.Balanced {
		s.logger.Warn("Trial balance is not balanced", append(fields,
			zap.String("closing_debit", tb.Totals.ClosingDebit.String()),
			zap.String("closing_credit", tb.Totals.ClosingCredit.String()),
		)...)
	}
	s.logger.Debug("Trial balance built", fields...)

	s.toCache(ctx, key, tb)
	return &tb, nil
}

// Ledger 科目明细账，科目不存在时返回空结果 (Found = false)
func (s *ReportService) Ledger(ctx context.Context, accountID int64, req domain.Request) (*engine.Ledger, error) {
	key := fmt.Sprintf("ledger:%d:%s", accountID, requestKey(req))
	var l engine.Ledger
	if s.fromCache(ctx, key, &l) {
		return &l, nil
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		l = engine.BuildLedger(accountID, nil, nil, req)
		return &l, nil
	}
	if err != nil {
		return nil, err
	}

	ids := []int64{accountID}
	opening, err := s.fetchAll(ctx, domain.PostingQuery{AccountIDs: ids, Before: &req.Start, BranchID: req.BranchID})
	if err != nil {
		return nil, err
	}
	period, err := s.fetchAll(ctx, domain.PostingQuery{AccountIDs: ids, From: &req.Start, To: &req.End, BranchID: req.BranchID})
	if err != nil {
		return nil, err
	}

	l = engine.BuildLedger(accountID, []domain.Account{*account}, append(opening, period...), req)

	s.logger.Debug("Ledger built",
		zap.Int64("account_id", accountID),
		zap.Int("opening_postings", len(opening)),
		zap.Int("rows", len(l.Rows)),
	)

	s.toCache(ctx, key, l)
	return &l, nil
}

// fetchAll 分页取全符合条件的分录，并和 Count 结果核对
// 截断的数据会让报表静默少算，这里宁可报错
func (s *ReportService) fetchAll(ctx context.Context, q domain.PostingQuery) ([]domain.Posting, error) {
	expected, err := s.postings.CountPostings(ctx, q)
	if err != nil {
		return nil, err
	}

	all := make([]domain.Posting, 0, expected)
	q.Limit = s.opts.PageSize
	for q.Offset = 0; int64(len(all)) < expected; q.Offset += q.Limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.postings.FindPostings(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < q.Limit {
			break
		}
	}

	if int64(len(all)) != expected {
		return nil, fmt.Errorf("%w: fetched %d of %d postings", domain.ErrIncompleteFetch, len(all), expected)
	}
	return all, nil
}

func (s *ReportService) fromCache(ctx context.Context, key string, out any) bool {
	if s.opts.CacheTTL <= 0 {
		return false
	}
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ReportService) toCache(ctx context.Context, key string, v any) {
	if s.opts.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("Failed to encode report for cache", zap.String("key", key), zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, data, s.opts.CacheTTL)
}

func requestKey(req domain.Request) string {
	branch := "all"
	if req.BranchID != nil {
		branch = fmt.Sprintf("%d", *req.BranchID)
	}
	return req.Start.Format(dateLayout) + ":" + req.End.Format(dateLayout) + ":" + branch
}

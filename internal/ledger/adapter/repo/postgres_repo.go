package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxz807/finscale/reports/internal/ledger/domain"
)

type PostgresAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// ListActive 按科目代码排序返回所有启用科目
func (r *PostgresAccountRepo) ListActive(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.AccountStatusActive).
		Order("account_code").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list accounts: %v", domain.ErrPostingSourceUnavailable, err)
	}
	return accounts, nil
}

func (r *PostgresAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: find account %d: %v", domain.ErrPostingSourceUnavailable, id, err)
	}
	return &account, nil
}

// ---------------------------------------------------------

type PostgresPostingRepo struct {
	db *gorm.DB
}

func NewPostingRepo(db *gorm.DB) *PostgresPostingRepo {
	return &PostgresPostingRepo{db: db}
}

// postingColumns 分录行 + 凭证头 + 机构名，p.id 作为同日排序的 seq
const postingColumns = `p.id AS seq, p.account_id, p.debit, p.credit,
	je.entry_date, je.entry_number, je.description, je.branch_id,
	COALESCE(b.name, '') AS branch_name`

func (r *PostgresPostingRepo) scope(ctx context.Context, q domain.PostingQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).
		Table("postings AS p").
		Joins("JOIN journal_entries AS je ON je.id = p.journal_entry_id")

	if len(q.AccountIDs) > 0 {
		tx = tx.Where("p.account_id IN ?", q.AccountIDs)
	}
	if q.Before != nil {
		tx = tx.Where("je.entry_date < ?", *q.Before)
	}
	if q.From != nil {
		tx = tx.Where("je.entry_date >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("je.entry_date <= ?", *q.To)
	}
	if q.BranchID != nil {
		tx = tx.Where("je.branch_id = ?", *q.BranchID)
	}
	return tx
}

func (r *PostgresPostingRepo) CountPostings(ctx context.Context, q domain.PostingQuery) (int64, error) {
	var count int64
	if err := r.scope(ctx, q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count postings: %v", domain.ErrPostingSourceUnavailable, err)
	}
	return count, nil
}

func (r *PostgresPostingRepo) FindPostings(ctx context.Context, q domain.PostingQuery) ([]domain.Posting, error) {
	tx := r.scope(ctx, q).
		Select(postingColumns).
		Joins("LEFT JOIN branches AS b ON b.id = je.branch_id").
		Order("je.entry_date ASC").
		Order("p.id ASC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var postings []domain.Posting
	if err := tx.Scan(&postings).Error; err != nil {
		return nil, fmt.Errorf("%w: find postings: %v", domain.ErrPostingSourceUnavailable, err)
	}
	return postings, nil
}

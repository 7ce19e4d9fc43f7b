package domain

import (
	"context"
	"time"
)

// AccountRepository 定义科目仓储接口
// 这是一个 Port (端口)，Adapter (适配器) 将在基础设施层实现它
type AccountRepository interface {
	// ListActive 查询全部启用科目 (试算平衡表的科目集合)
	ListActive(ctx context.Context) ([]Account, error)

	// FindByID 根据ID查询科目，不存在时返回 ErrAccountNotFound
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// PostingQuery 分录查询条件
// Before 与 From/To 互斥使用：Before 查期初 (entry_date < Before)，From/To 查本期 (闭区间)
type PostingQuery struct {
	AccountIDs []int64 // 为空表示全部科目
	Before     *time.Time
	From       *time.Time
	To         *time.Time
	BranchID   *int64
	Limit      int
	Offset     int
}

// PostingSource 分录数据源 (外部记录存储)
type PostingSource interface {
	// CountPostings 返回符合条件的分录总数，用于校验分页是否取全
	CountPostings(ctx context.Context, q PostingQuery) (int64, error)

	// FindPostings 按 entry_date, seq 升序返回分录
	FindPostings(ctx context.Context, q PostingQuery) ([]Posting, error)
}

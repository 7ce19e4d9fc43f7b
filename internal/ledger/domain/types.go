package domain

import "time"

// 科目状态
const (
	AccountStatusInactive int16 = 0
	AccountStatusActive   int16 = 1
)

// Request 报表请求参数 (不可变)
// 替代界面上的全局筛选状态，每次调用显式传入
type Request struct {
	Start    time.Time
	End      time.Time
	BranchID *int64 // nil 表示不过滤机构
}

// MatchesBranch 机构过滤：未指定过滤条件时全部通过
func (r Request) MatchesBranch(p Posting) bool {
	if r.BranchID == nil {
		return true
	}
	return p.BranchID != nil && *p.BranchID == *r.BranchID
}

// Validate 调用方在进入引擎之前做的日期校验
// 引擎本身不校验 start <= end
func (r Request) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidDateRange
	}
	if r.Start.After(r.End) {
		return ErrInvalidDateRange
	}
	return nil
}

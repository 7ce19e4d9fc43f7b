// Package engine 试算平衡表与科目明细账的聚合计算
//
// 引擎是纯函数：输入是一次性取全的科目与分录快照，不做 I/O，不持有状态，
// 可以被多个请求并发调用。
package engine

import "time"

// Bucket 分录相对报表区间的归类
type Bucket int

const (
	BucketIgnored Bucket = iota // entry_date > end，或日期无效
	BucketOpening               // entry_date < start
	BucketPeriod                // start <= entry_date <= end
)

func (b Bucket) String() string {
	switch b {
	case BucketOpening:
		return "opening"
	case BucketPeriod:
		return "period"
	default:
		return "ignored"
	}
}

// Classify 按日历日期比较，时分秒不参与
// 不校验 start <= end：区间倒置时早于 start 的仍算期初，其余全部忽略
func Classify(entryDate, start, end time.Time) Bucket {
	if entryDate.IsZero() {
		return BucketIgnored
	}
	d := civilDate(entryDate)
	switch {
	case d.Before(civilDate(start)):
		return BucketOpening
	case d.After(civilDate(end)):
		return BucketIgnored
	default:
		return BucketPeriod
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

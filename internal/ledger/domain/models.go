package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account 会计科目实体
// 对应数据库表: accounts
// 科目树由外部科目表维护，这里只读取 Level / ParentID 用于缩进展示
type Account struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Code      string `gorm:"column:account_code;uniqueIndex;type:varchar(32);not null"`
	Name      string `gorm:"type:varchar(100);not null"`
	Level     int    `gorm:"type:smallint;not null;default:1"`
	ParentID  *int64 `gorm:"index"`
	Status    int16  `gorm:"type:smallint;default:1"` // 1 = 启用
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Account) TableName() string {
	return "accounts"
}

// IsActive 启用中的科目才参与报表
func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Branch 分支机构 (可选维度)
type Branch struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null"`
}

func (Branch) TableName() string {
	return "branches"
}

// JournalEntry 凭证主表
// 对应数据库表: journal_entries
type JournalEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EntryNumber string    `gorm:"type:varchar(64);not null;index"`
	EntryDate   time.Time `gorm:"type:date;not null;index"`
	Description string    `gorm:"type:text"`
	BranchID    *int64    `gorm:"index"`
	CreatedAt   time.Time

	// 关联关系 (一对多)
	Lines []PostingLine `gorm:"foreignKey:JournalEntryID"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// PostingLine 凭证分录行
// 对应数据库表: postings
type PostingLine struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	JournalEntryID int64           `gorm:"not null;index"`
	AccountID      int64           `gorm:"not null;index"`
	Debit          decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Credit         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
}

func (PostingLine) TableName() string {
	return "postings"
}

// Posting 报表引擎的输入：分录行 + 所属凭证的日期/编号/机构
// EntryDate 是凭证日期，不是分录行自己的日期
type Posting struct {
	Seq         int64 // 数据源插入顺序，同日分录的排序依据
	AccountID   int64
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	EntryDate   time.Time
	EntryNumber string
	Description string
	BranchID    *int64
	BranchName  string
}

// Net 分录对科目的净影响 (借 - 贷)
func (p Posting) Net() decimal.Decimal {
	return p.Debit.Sub(p.Credit)
}

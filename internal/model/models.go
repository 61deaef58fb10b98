package model

import "time"

// Client 往来客户
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	Company   string    `json:"company" gorm:"size:150"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:500"`
	Notes     string    `json:"notes" gorm:"size:1000"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 交易方向
const (
	TransactionDebit  = "debit"
	TransactionCredit = "credit"
)

// Transaction 导入的银行流水
type Transaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BatchID     uint      `json:"batch_id" gorm:"index;not null"`
	Date        time.Time `json:"date"`
	Description string    `json:"description" gorm:"size:500"`
	AmountCents int64     `json:"amount_cents"` // 以分存储，避免浮点误差
	Direction   string    `json:"direction" gorm:"size:10"` // debit, credit
	Reference   string    `json:"reference" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at"`
}

// 导入批次状态
const (
	ImportStatusPending    = "pending"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ImportBatch 一次流水文件导入
type ImportBatch struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"size:255;not null"`
	Status       string    `json:"status" gorm:"size:50;default:pending"` // pending, processing, completed, failed
	RowsImported int       `json:"rows_imported" gorm:"default:0"`
	RowsSkipped  int       `json:"rows_skipped" gorm:"default:0"`
	ErrorMsg     string    `json:"error_msg" gorm:"size:1000"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

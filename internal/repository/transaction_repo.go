package repository

import (
	"errors"

	"github.com/ledgerdesk/backend/internal/model"
	"gorm.io/gorm"
)

// transactionRepository 实现
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建 Repository 实例
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateBatch 创建导入批次
func (r *transactionRepository) CreateBatch(batch *model.ImportBatch) error {
	return r.db.Create(batch).Error
}

// SaveBatch 保存批次状态
func (r *transactionRepository) SaveBatch(batch *model.ImportBatch) error {
	return r.db.Save(batch).Error
}

// GetBatch 根据ID获取批次
func (r *transactionRepository) GetBatch(id uint) (*model.ImportBatch, error) {
	var batch model.ImportBatch
	result := r.db.First(&batch, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &batch, nil
}

// ListBatches 批次列表，新的在前
func (r *transactionRepository) ListBatches() ([]model.ImportBatch, error) {
	var batches []model.ImportBatch
	result := r.db.Order("id DESC").Find(&batches)
	return batches, result.Error
}

// CreateTransactions 批量写入流水
func (r *transactionRepository) CreateTransactions(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.db.Create(&transactions).Error
}

// ListByBatch 某批次的全部流水
func (r *transactionRepository) ListByBatch(batchID uint) ([]model.Transaction, error) {
	var transactions []model.Transaction
	result := r.db.Where("batch_id = ?", batchID).Order("id ASC").Find(&transactions)
	return transactions, result.Error
}

// List 最近的流水
func (r *transactionRepository) List(limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	var transactions []model.Transaction
	result := r.db.Order("date DESC, id DESC").Limit(limit).Find(&transactions)
	return transactions, result.Error
}

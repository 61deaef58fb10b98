package repository

import (
	"errors"

	"github.com/ledgerdesk/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// TemplateRepository 单据模板 Repository 接口
type TemplateRepository interface {
	List() ([]model.DocTemplate, error)
	ListByType(documentType string) ([]model.DocTemplate, error)
	GetByID(id uint) (*model.DocTemplate, error)
	GetDefaultForType(documentType string) (*model.DocTemplate, error)
	Create(template *model.DocTemplate) error
	Save(template *model.DocTemplate) error
	Delete(id uint) error
}

// ClientRepository 客户 Repository 接口
type ClientRepository interface {
	List() ([]model.Client, error)
	Get(id uint) (*model.Client, error)
	Create(client *model.Client) error
	Save(client *model.Client) error
	Delete(id uint) error
}

// TransactionRepository 银行流水 Repository 接口
type TransactionRepository interface {
	CreateBatch(batch *model.ImportBatch) error
	SaveBatch(batch *model.ImportBatch) error
	GetBatch(id uint) (*model.ImportBatch, error)
	ListBatches() ([]model.ImportBatch, error)
	CreateTransactions(transactions []model.Transaction) error
	ListByBatch(batchID uint) ([]model.Transaction, error)
	List(limit int) ([]model.Transaction, error)
}

package repository

import (
	"errors"

	"github.com/ledgerdesk/backend/internal/model"
	"gorm.io/gorm"
)

// clientRepository 实现
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建 Repository 实例
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// List 获取所有客户
func (r *clientRepository) List() ([]model.Client, error) {
	var clients []model.Client
	result := r.db.Order("name ASC, id ASC").Find(&clients)
	return clients, result.Error
}

// Get 根据ID获取客户
func (r *clientRepository) Get(id uint) (*model.Client, error) {
	var client model.Client
	result := r.db.First(&client, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &client, nil
}

// Create 创建客户
func (r *clientRepository) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

// Save 保存客户
func (r *clientRepository) Save(client *model.Client) error {
	return r.db.Save(client).Error
}

// Delete 删除客户
func (r *clientRepository) Delete(id uint) error {
	return r.db.Delete(&model.Client{}, id).Error
}

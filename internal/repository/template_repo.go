package repository

import (
	"errors"

	"github.com/ledgerdesk/backend/internal/model"
	"gorm.io/gorm"
)

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 获取所有模板
func (r *templateRepository) List() ([]model.DocTemplate, error) {
	var templates []model.DocTemplate
	result := r.db.Order("document_type ASC, id ASC").Find(&templates)
	return templates, result.Error
}

// ListByType 按单据类型获取模板
func (r *templateRepository) ListByType(documentType string) ([]model.DocTemplate, error) {
	var templates []model.DocTemplate
	result := r.db.Where("document_type = ?", documentType).
		Order("id ASC").
		Find(&templates)
	return templates, result.Error
}

// GetByID 根据ID获取模板
func (r *templateRepository) GetByID(id uint) (*model.DocTemplate, error) {
	var template model.DocTemplate
	result := r.db.First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// GetDefaultForType 获取某单据类型的默认模板
func (r *templateRepository) GetDefaultForType(documentType string) (*model.DocTemplate, error) {
	var template model.DocTemplate
	result := r.db.Where("document_type = ? AND is_default = ?", documentType, true).
		First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Create 创建模板
func (r *templateRepository) Create(template *model.DocTemplate) error {
	return r.db.Create(template).Error
}

// Save 保存模板（段列表全量写回）
func (r *templateRepository) Save(template *model.DocTemplate) error {
	return r.db.Save(template).Error
}

// Delete 删除模板
func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&model.DocTemplate{}, id).Error
}

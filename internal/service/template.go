package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ledgerdesk/backend/internal/editor"
	"github.com/ledgerdesk/backend/internal/eventbus"
	"github.com/ledgerdesk/backend/internal/model"
	"github.com/ledgerdesk/backend/internal/repository"
	"github.com/ledgerdesk/backend/internal/utils"
	"k8s.io/klog/v2"
)

var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrInvalidUIPreferences  = errors.New("ui preferences must be valid json")
	ErrInvalidSectionPayload = errors.New("sections payload is not valid")
)

// TemplateDTO 模板对外视图，段列表已从 JSON 列展开
type TemplateDTO struct {
	ID            uint             `json:"id"`
	DocumentType  string           `json:"document_type"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Sections      []editor.Section `json:"sections"`
	PageWidth     float64          `json:"page_width"`
	PageHeight    float64          `json:"page_height"`
	UIPreferences json.RawMessage  `json:"ui_preferences,omitempty"`
	IsDefault     bool             `json:"is_default"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	DocumentType  string           `json:"document_type" binding:"required"`
	Name          string           `json:"name" binding:"required,min=1,max=150"`
	Description   string           `json:"description"`
	Sections      []editor.Section `json:"sections"`
	PageWidth     float64          `json:"page_width"`
	PageHeight    float64          `json:"page_height"`
	UIPreferences json.RawMessage  `json:"ui_preferences"`
}

// UpdateTemplateRequest 更新模板请求，保存时段列表全量写回
type UpdateTemplateRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=150"`
	Description   string           `json:"description"`
	Sections      []editor.Section `json:"sections"`
	UIPreferences json.RawMessage  `json:"ui_preferences"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context, documentType string) ([]TemplateDTO, error)
	GetByID(ctx context.Context, id uint) (*TemplateDTO, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error)
	Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*TemplateDTO, error)
	Delete(ctx context.Context, id uint) error
	DefaultForType(ctx context.Context, documentType string) (*TemplateDTO, error)
	CompiledLayout(ctx context.Context, id uint) (*editor.Layout, error)
	Invalidate(templateID uint)
}

// templateService 实现
type templateService struct {
	repo repository.TemplateRepository
	bus  *eventbus.Bus

	cacheMu     sync.Mutex
	layoutCache map[uint]*editor.Layout
}

// NewTemplateService 创建模板服务
func NewTemplateService(repo repository.TemplateRepository, bus *eventbus.Bus) TemplateService {
	return &templateService{
		repo:        repo,
		bus:         bus,
		layoutCache: make(map[uint]*editor.Layout),
	}
}

// List 模板列表，documentType 非空时按类型过滤
func (s *templateService) List(ctx context.Context, documentType string) ([]TemplateDTO, error) {
	var (
		templates []model.DocTemplate
		err       error
	)
	if documentType != "" {
		if !model.IsAllowedDocumentType(documentType) {
			return nil, ErrInvalidDocumentType
		}
		templates, err = s.repo.ListByType(documentType)
	} else {
		templates, err = s.repo.List()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	out := make([]TemplateDTO, 0, len(templates))
	for i := range templates {
		dto, err := toTemplateDTO(&templates[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// GetByID 获取模板
func (s *templateService) GetByID(ctx context.Context, id uint) (*TemplateDTO, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return toTemplateDTO(template)
}

// Create 创建模板；未提供段列表时按单据类型生成默认段
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error) {
	if !model.IsAllowedDocumentType(req.DocumentType) {
		return nil, ErrInvalidDocumentType
	}

	sections := req.Sections
	if len(sections) == 0 {
		sections = DefaultSectionsForType(req.DocumentType)
	}
	sectionsJson, err := marshalSections(sections)
	if err != nil {
		return nil, err
	}
	prefsJson, err := marshalPreferences(req.UIPreferences)
	if err != nil {
		return nil, err
	}

	template := &model.DocTemplate{
		DocumentType:      req.DocumentType,
		Name:              req.Name,
		Description:       req.Description,
		SectionsJson:      sectionsJson,
		PageWidth:         req.PageWidth,
		PageHeight:        req.PageHeight,
		UIPreferencesJson: prefsJson,
	}
	if template.PageWidth <= 0 {
		template.PageWidth = editor.DefaultPageWidth
	}
	if template.PageHeight <= 0 {
		template.PageHeight = defaultPageHeight
	}

	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.publish(ctx, eventbus.TemplateEvent{
		Type:         eventbus.TemplateEventCreated,
		TemplateID:   template.ID,
		DocumentType: template.DocumentType,
	})
	return toTemplateDTO(template)
}

// Update 更新模板（整体写回）
func (s *templateService) Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*TemplateDTO, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	template.Name = req.Name
	template.Description = req.Description
	if req.Sections != nil {
		sectionsJson, err := marshalSections(req.Sections)
		if err != nil {
			return nil, err
		}
		template.SectionsJson = sectionsJson
	}
	if req.UIPreferences != nil {
		prefsJson, err := marshalPreferences(req.UIPreferences)
		if err != nil {
			return nil, err
		}
		template.UIPreferencesJson = prefsJson
	}

	if err := s.repo.Save(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.publish(ctx, eventbus.TemplateEvent{
		Type:         eventbus.TemplateEventSaved,
		TemplateID:   template.ID,
		DocumentType: template.DocumentType,
	})
	return toTemplateDTO(template)
}

// Delete 删除模板
func (s *templateService) Delete(ctx context.Context, id uint) error {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.publish(ctx, eventbus.TemplateEvent{
		Type:         eventbus.TemplateEventDeleted,
		TemplateID:   id,
		DocumentType: template.DocumentType,
	})
	return nil
}

// DefaultForType 某单据类型的默认模板；不存在时用出厂段列表创建一份
func (s *templateService) DefaultForType(ctx context.Context, documentType string) (*TemplateDTO, error) {
	if !model.IsAllowedDocumentType(documentType) {
		return nil, ErrInvalidDocumentType
	}

	existing, err := s.repo.GetDefaultForType(documentType)
	if err == nil {
		return toTemplateDTO(existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get default template: %w", err)
	}

	sectionsJson, err := marshalSections(DefaultSectionsForType(documentType))
	if err != nil {
		return nil, err
	}
	template := &model.DocTemplate{
		DocumentType: documentType,
		Name:         defaultTemplateName(documentType),
		SectionsJson: sectionsJson,
		PageWidth:    editor.DefaultPageWidth,
		PageHeight:   defaultPageHeight,
		IsDefault:    true,
	}
	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create default template: %w", err)
	}
	klog.V(6).Infof("已创建默认模板: type=%s id=%d", documentType, template.ID)

	s.publish(ctx, eventbus.TemplateEvent{
		Type:         eventbus.TemplateEventCreated,
		TemplateID:   template.ID,
		DocumentType: documentType,
	})
	return toTemplateDTO(template)
}

// CompiledLayout 已持久化模板的编译布局，保存/删除事件触发失效
func (s *templateService) CompiledLayout(ctx context.Context, id uint) (*editor.Layout, error) {
	s.cacheMu.Lock()
	if cached, ok := s.layoutCache[id]; ok {
		s.cacheMu.Unlock()
		return cached, nil
	}
	s.cacheMu.Unlock()

	dto, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	session := editor.NewSession()
	session.Hydrate(dto.Sections, dto.PageWidth)
	layout := session.Compile()

	s.cacheMu.Lock()
	s.layoutCache[id] = &layout
	s.cacheMu.Unlock()
	return &layout, nil
}

// Invalidate 作废模板的布局缓存（事件订阅者调用）
func (s *templateService) Invalidate(templateID uint) {
	s.cacheMu.Lock()
	delete(s.layoutCache, templateID)
	s.cacheMu.Unlock()
}

func (s *templateService) publish(ctx context.Context, event eventbus.TemplateEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		klog.Errorf("模板事件发布失败: type=%s id=%d error=%v", event.Type, event.TemplateID, err)
	}
}

// toTemplateDTO 转换为 DTO
func toTemplateDTO(t *model.DocTemplate) (*TemplateDTO, error) {
	dto := &TemplateDTO{
		ID:           t.ID,
		DocumentType: t.DocumentType,
		Name:         t.Name,
		Description:  t.Description,
		PageWidth:    t.PageWidth,
		PageHeight:   t.PageHeight,
		IsDefault:    t.IsDefault,
	}
	if t.SectionsJson != "" {
		if err := json.Unmarshal([]byte(t.SectionsJson), &dto.Sections); err != nil {
			return nil, fmt.Errorf("failed to decode sections: %w", err)
		}
	}
	if t.UIPreferencesJson != "" {
		dto.UIPreferences = json.RawMessage(t.UIPreferencesJson)
	}
	return dto, nil
}

func marshalSections(sections []editor.Section) (string, error) {
	if sections == nil {
		sections = []editor.Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSectionPayload, err)
	}
	return string(data), nil
}

func marshalPreferences(prefs json.RawMessage) (string, error) {
	if len(prefs) == 0 {
		return "", nil
	}
	if !utils.IsValidJSON(string(prefs)) {
		return "", ErrInvalidUIPreferences
	}
	// 透明包原样存储，不做结构校验
	return string(prefs), nil
}

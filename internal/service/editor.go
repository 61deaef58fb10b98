package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ledgerdesk/backend/internal/catalog"
	"github.com/ledgerdesk/backend/internal/editor"
	"github.com/ledgerdesk/backend/internal/eventbus"
	"github.com/ledgerdesk/backend/internal/repository"
	"k8s.io/klog/v2"
)

var ErrSessionNotFound = errors.New("editor session not found")

// AddFieldRequest 添加字段请求；宽高缺省取字段目录默认值
type AddFieldRequest struct {
	SectionID string   `json:"section_id" binding:"required"`
	FieldKey  string   `json:"field_key" binding:"required"`
	X         float64  `json:"x"`
	Y         *float64 `json:"y"` // 缺省时按段内堆叠规则摆放
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
}

// editorSession 会话登记项
type editorSession struct {
	id         string
	templateID uint
	session    *editor.Session
}

// EditorService 编辑会话服务：会话注册表加命令转发
// 会话状态只在首次打开时从持久化模板注水一次，保存后的回读不会覆盖编辑中的状态
type EditorService struct {
	mu       sync.RWMutex
	sessions map[string]*editorSession

	templateRepo repository.TemplateRepository
	fieldCatalog *catalog.Catalog
	bus          *eventbus.Bus
}

// NewEditorService 创建编辑会话服务
func NewEditorService(templateRepo repository.TemplateRepository, fieldCatalog *catalog.Catalog, bus *eventbus.Bus) *EditorService {
	return &EditorService{
		sessions:     make(map[string]*editorSession),
		templateRepo: templateRepo,
		fieldCatalog: fieldCatalog,
		bus:          bus,
	}
}

// Open 为模板打开编辑会话并注水，返回会话标识
func (s *EditorService) Open(ctx context.Context, templateID uint) (string, *editor.SessionState, error) {
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrTemplateNotFound
		}
		return "", nil, fmt.Errorf("failed to load template: %w", err)
	}
	dto, err := toTemplateDTO(template)
	if err != nil {
		return "", nil, err
	}

	session := editor.NewSession()
	session.Hydrate(dto.Sections, dto.PageWidth)

	entry := &editorSession{
		id:         uuid.New().String(),
		templateID: templateID,
		session:    session,
	}
	s.mu.Lock()
	s.sessions[entry.id] = entry
	s.mu.Unlock()

	klog.V(6).Infof("编辑会话已打开: session=%s template=%d", entry.id, templateID)
	state := session.State()
	return entry.id, &state, nil
}

// Close 关闭会话；之后到达的命令和迟到的保存结果一律丢弃
func (s *EditorService) Close(sessionID string) error {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	entry.session.Close()
	klog.V(6).Infof("编辑会话已关闭: session=%s", sessionID)
	return nil
}

// State 会话状态快照
func (s *EditorService) State(sessionID string) (*editor.SessionState, error) {
	entry, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	state := entry.session.State()
	return &state, nil
}

// AddField 添加字段，目录提供默认宽高与样式
func (s *EditorService) AddField(sessionID string, req AddFieldRequest) (string, error) {
	entry, err := s.get(sessionID)
	if err != nil {
		return "", err
	}

	geom := editor.Geometry{
		X:      req.X,
		Width:  req.Width,
		Height: req.Height,
	}
	hasY := req.Y != nil
	if hasY {
		geom.Y = *req.Y
	}

	base := editor.BaseIdentity(req.FieldKey)
	if def, ok := s.fieldCatalog.Get(base); ok {
		if geom.Width <= 0 {
			geom.Width = def.DefaultWidth
		}
		if geom.Height <= 0 {
			geom.Height = def.DefaultHeight
		}
		geom.Format = def.Format
		geom.FieldType = def.FieldType
		if def.IsStatic && geom.TextContent == "" {
			geom.TextContent = def.Label
		}
	}

	return entry.session.AddField(req.SectionID, req.FieldKey, geom, hasY)
}

// MoveField 移动字段（编组整体平移）
func (s *EditorService) MoveField(sessionID, fieldID, sectionID string, x, y float64) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.MoveField(fieldID, sectionID, x, y)
}

// ResizeField 调整字段尺寸
func (s *EditorService) ResizeField(sessionID, fieldID, sectionID string, width, height float64, x, y *float64) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.ResizeField(fieldID, sectionID, width, height, x, y)
}

// DeleteFields 删除字段，列表为空时删当前选区
func (s *EditorService) DeleteFields(sessionID string, refs []editor.FieldRef) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.DeleteFields(refs)
}

// Select 选择字段
func (s *EditorService) Select(sessionID, fieldID, sectionID string, multi bool) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.Select(fieldID, sectionID, multi)
}

// Group 编组当前选区
func (s *EditorService) Group(sessionID string) (int, error) {
	entry, err := s.get(sessionID)
	if err != nil {
		return 0, err
	}
	return entry.session.GroupSelection()
}

// Ungroup 解组当前选区
func (s *EditorService) Ungroup(sessionID string) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.UngroupSelection()
}

// Copy 复制字段，列表为空时复制当前选区
func (s *EditorService) Copy(sessionID string, refs []editor.FieldRef) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.Copy(refs)
}

// CopyAllFromSection 复制整段字段
func (s *EditorService) CopyAllFromSection(sessionID, sectionID string) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.CopyAllFromSection(sectionID)
}

// Paste 粘贴到目标段
func (s *EditorService) Paste(sessionID, targetSectionID string) ([]string, error) {
	entry, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return entry.session.Paste(targetSectionID)
}

// ClearSection 清空某段
func (s *EditorService) ClearSection(sessionID, sectionID string) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.ClearSection(sectionID)
}

// ClearAllSections 清空所有段
func (s *EditorService) ClearAllSections(sessionID string) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return entry.session.ClearAllSections()
}

// Compile 编译为绝对坐标布局
func (s *EditorService) Compile(sessionID string) (*editor.Layout, error) {
	entry, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	layout := entry.session.Compile()
	return &layout, nil
}

// Save 把会话内的段列表整体写回模板
// 写回用深拷贝快照，持久化层不会与会话内存态产生别名；
// 保存完成前会话被关闭时丢弃结果，不回写任何状态
func (s *EditorService) Save(ctx context.Context, sessionID string) error {
	entry, err := s.get(sessionID)
	if err != nil {
		return err
	}
	if entry.session.Closed() {
		return editor.ErrSessionClosed
	}

	sections := entry.session.Sections()
	sectionsJson, err := marshalSections(sections)
	if err != nil {
		return err
	}

	template, err := s.templateRepo.GetByID(entry.templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to load template: %w", err)
	}
	template.SectionsJson = sectionsJson
	if err := s.templateRepo.Save(template); err != nil {
		// 保存失败不回写会话状态，内存里的编辑仍是权威版本
		return fmt.Errorf("failed to save template: %w", err)
	}

	if entry.session.Closed() {
		// 保存期间会话被关闭，迟到的确认直接丢弃
		klog.V(6).Infof("会话已关闭，丢弃迟到的保存确认: session=%s", sessionID)
		return nil
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.TemplateEvent{
			Type:         eventbus.TemplateEventSaved,
			TemplateID:   entry.templateID,
			DocumentType: template.DocumentType,
			SessionID:    sessionID,
		}); err != nil {
			klog.Errorf("保存事件发布失败: session=%s error=%v", sessionID, err)
		}
	}
	return nil
}

func (s *EditorService) get(sessionID string) (*editorSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

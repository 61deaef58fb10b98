package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ledgerdesk/backend/internal/catalog"
	"github.com/ledgerdesk/backend/internal/editor"
	"github.com/ledgerdesk/backend/internal/eventbus"
	"github.com/ledgerdesk/backend/internal/model"
)

func newEditorFixture(t *testing.T) (*EditorService, *mockTemplateRepo, uint) {
	t.Helper()
	repo := newMockTemplateRepo()

	sections, err := json.Marshal(DefaultSectionsForType(model.DocumentTypeCheque))
	if err != nil {
		t.Fatalf("序列化默认段失败: %v", err)
	}
	template := &model.DocTemplate{
		DocumentType: model.DocumentTypeCheque,
		Name:         "Cheque",
		SectionsJson: string(sections),
		PageWidth:    editor.DefaultPageWidth,
	}
	if err := repo.Create(template); err != nil {
		t.Fatalf("创建模板失败: %v", err)
	}

	svc := NewEditorService(repo, catalog.Builtin(), eventbus.NewBus())
	return svc, repo, template.ID
}

func TestEditorOpenAndAddField(t *testing.T) {
	svc, _, templateID := newEditorFixture(t)

	sessionID, state, err := svc.Open(context.Background(), templateID)
	if err != nil {
		t.Fatalf("打开会话失败: %v", err)
	}
	if sessionID == "" {
		t.Fatal("会话标识不应为空")
	}
	if len(state.Sections) != 3 {
		t.Fatalf("注水后应有 3 段，实际 %d", len(state.Sections))
	}

	// 支票联已有 date，再加一个应得到 date-1
	key, err := svc.AddField(sessionID, AddFieldRequest{
		SectionID: "cheque",
		FieldKey:  "date",
	})
	if err != nil {
		t.Fatalf("添加字段失败: %v", err)
	}
	if key != "date-1" {
		t.Fatalf("期望键 date-1，实际 %s", key)
	}

	// 目录默认宽高生效
	after, err := svc.State(sessionID)
	if err != nil {
		t.Fatalf("读取状态失败: %v", err)
	}
	var geom editor.Geometry
	found := false
	for _, section := range after.Sections {
		if section.ID == "cheque" {
			geom, found = section.FieldPositions["date-1"]
		}
	}
	if !found {
		t.Fatal("新字段未出现在段里")
	}
	def, _ := catalog.Builtin().Get("date")
	if geom.Width != def.DefaultWidth || geom.Height != def.DefaultHeight {
		t.Fatalf("期望目录默认宽高 %vx%v，实际 %vx%v",
			def.DefaultWidth, def.DefaultHeight, geom.Width, geom.Height)
	}
}

func TestEditorOpenMissingTemplate(t *testing.T) {
	svc, _, _ := newEditorFixture(t)

	if _, _, err := svc.Open(context.Background(), 404); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("期望 ErrTemplateNotFound，实际 %v", err)
	}
}

func TestEditorSaveWritesBackSections(t *testing.T) {
	svc, repo, templateID := newEditorFixture(t)

	sessionID, _, err := svc.Open(context.Background(), templateID)
	if err != nil {
		t.Fatalf("打开会话失败: %v", err)
	}
	if _, err := svc.AddField(sessionID, AddFieldRequest{
		SectionID: "stub-2",
		FieldKey:  "memo",
	}); err != nil {
		t.Fatalf("添加字段失败: %v", err)
	}

	if err := svc.Save(context.Background(), sessionID); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	stored, err := repo.GetByID(templateID)
	if err != nil {
		t.Fatalf("读取模板失败: %v", err)
	}
	var sections []editor.Section
	if err := json.Unmarshal([]byte(stored.SectionsJson), &sections); err != nil {
		t.Fatalf("解析段列表失败: %v", err)
	}
	found := false
	for _, section := range sections {
		if section.ID == "stub-2" {
			_, found = section.FieldPositions["memo"]
		}
	}
	if !found {
		t.Fatal("保存后的段列表应包含新字段")
	}
}

func TestEditorCloseRejectsFurtherCommands(t *testing.T) {
	svc, _, templateID := newEditorFixture(t)

	sessionID, _, err := svc.Open(context.Background(), templateID)
	if err != nil {
		t.Fatalf("打开会话失败: %v", err)
	}
	if err := svc.Close(sessionID); err != nil {
		t.Fatalf("关闭会话失败: %v", err)
	}

	if _, err := svc.State(sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("关闭后应为 ErrSessionNotFound，实际 %v", err)
	}
	if err := svc.Close(sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("重复关闭应为 ErrSessionNotFound，实际 %v", err)
	}
}

func TestEditorCopyPasteAcrossSections(t *testing.T) {
	svc, _, templateID := newEditorFixture(t)

	sessionID, _, err := svc.Open(context.Background(), templateID)
	if err != nil {
		t.Fatalf("打开会话失败: %v", err)
	}

	if err := svc.CopyAllFromSection(sessionID, "stub-2"); err != nil {
		t.Fatalf("复制整段失败: %v", err)
	}
	keys, err := svc.Paste(sessionID, "stub-1")
	if err != nil {
		t.Fatalf("粘贴失败: %v", err)
	}
	// stub-2 有 date/payee/amount，三个键在 stub-1 都已存在，应得到 -1 后缀
	if len(keys) != 3 {
		t.Fatalf("期望粘贴 3 个字段，实际 %d", len(keys))
	}
	for _, key := range keys {
		if editor.BaseIdentity(key) == key {
			t.Fatalf("粘贴进已占用段应追加计数后缀，实际 %s", key)
		}
	}
}

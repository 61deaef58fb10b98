package editor

import "testing"

// newTestSession 两段模板：sec-a 3.5 英寸、sec-b 2.0 英寸
func newTestSession(t *testing.T) *Session {
	t.Helper()
	session := NewSession()
	ok := session.Hydrate([]Section{
		{ID: "sec-a", Name: "Cheque", HeightInches: 3.5, FieldPositions: map[string]Geometry{}},
		{ID: "sec-b", Name: "Stub", HeightInches: 2.0, FieldPositions: map[string]Geometry{}},
	}, 0)
	if !ok {
		t.Fatalf("hydrate failed")
	}
	return session
}

func mustAdd(t *testing.T, s *Session, sectionID, baseKey string, geom Geometry, hasY bool) string {
	t.Helper()
	key, err := s.AddField(sectionID, baseKey, geom, hasY)
	if err != nil {
		t.Fatalf("AddField(%s, %s) error: %v", sectionID, baseKey, err)
	}
	return key
}

func fieldAt(t *testing.T, s *Session, sectionID, key string) Geometry {
	t.Helper()
	for _, section := range s.Sections() {
		if section.ID != sectionID {
			continue
		}
		geom, ok := section.FieldPositions[key]
		if !ok {
			t.Fatalf("field %s missing in section %s", key, sectionID)
		}
		return geom
	}
	t.Fatalf("section %s missing", sectionID)
	return Geometry{}
}

func TestAddFieldStacksBelowExisting(t *testing.T) {
	session := newTestSession(t)

	first := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	if got := fieldAt(t, session, "sec-a", first); got.Y != 0 {
		t.Fatalf("first field Y = %v, want 0", got.Y)
	}

	second := mustAdd(t, session, "sec-a", "payee", Geometry{Width: 100, Height: 24}, false)
	if got := fieldAt(t, session, "sec-a", second); got.Y != StackGap {
		t.Fatalf("second field Y = %v, want %v", got.Y, StackGap)
	}

	// 显式 Y 不参与堆叠
	third := mustAdd(t, session, "sec-a", "memo", Geometry{Y: 200, Width: 100, Height: 24}, true)
	if got := fieldAt(t, session, "sec-a", third); got.Y != 200 {
		t.Fatalf("explicit Y = %v, want 200", got.Y)
	}

	fourth := mustAdd(t, session, "sec-a", "amount", Geometry{Width: 100, Height: 24}, false)
	if got := fieldAt(t, session, "sec-a", fourth); got.Y != 240 {
		t.Fatalf("stacked Y after explicit placement = %v, want 240", got.Y)
	}
}

func TestAddFieldErrors(t *testing.T) {
	empty := NewSession()
	empty.Hydrate(nil, 0)
	if _, err := empty.AddField("sec-a", "date", Geometry{}, false); err != ErrNoSections {
		t.Fatalf("expected ErrNoSections, got %v", err)
	}

	session := newTestSession(t)
	if _, err := session.AddField("missing", "date", Geometry{}, false); err != ErrSectionNotFound {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestMoveFieldSingle(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{X: 10, Width: 100, Height: 24}, false)

	if err := session.MoveField(key, "sec-a", 60, 80); err != nil {
		t.Fatalf("MoveField error: %v", err)
	}
	got := fieldAt(t, session, "sec-a", key)
	if got.X != 60 || got.Y != 80 {
		t.Fatalf("moved to (%v, %v), want (60, 80)", got.X, got.Y)
	}
}

func TestMoveFieldMissingIsNoop(t *testing.T) {
	session := newTestSession(t)
	if err := session.MoveField("ghost", "sec-a", 10, 10); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if err := session.MoveField("ghost", "nowhere", 10, 10); err != nil {
		t.Fatalf("expected silent no-op for unknown section, got %v", err)
	}
}

func TestMoveFieldGroupRigidBody(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{X: 10, Y: 10, Width: 100, Height: 24}, true)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{X: 20, Y: 50, Width: 100, Height: 24}, true)
	keyC := mustAdd(t, session, "sec-b", "memo", Geometry{X: 30, Y: 5, Width: 100, Height: 24}, true)
	loose := mustAdd(t, session, "sec-a", "amount", Geometry{X: 300, Y: 10, Width: 100, Height: 24}, true)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", true)
	session.Select(keyC, "sec-b", true)
	if _, err := session.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}

	// keyA 从 (10,10) 拖到 (25,40)，位移 (15,30) 作用于跨段的全部成员
	if err := session.MoveField(keyA, "sec-a", 25, 40); err != nil {
		t.Fatalf("MoveField error: %v", err)
	}

	if got := fieldAt(t, session, "sec-a", keyA); got.X != 25 || got.Y != 40 {
		t.Fatalf("keyA at (%v, %v), want (25, 40)", got.X, got.Y)
	}
	if got := fieldAt(t, session, "sec-a", keyB); got.X != 35 || got.Y != 80 {
		t.Fatalf("keyB at (%v, %v), want (35, 80)", got.X, got.Y)
	}
	if got := fieldAt(t, session, "sec-b", keyC); got.X != 45 || got.Y != 35 {
		t.Fatalf("keyC at (%v, %v), want (45, 35)", got.X, got.Y)
	}
	if got := fieldAt(t, session, "sec-a", loose); got.X != 300 || got.Y != 10 {
		t.Fatalf("ungrouped field moved to (%v, %v)", got.X, got.Y)
	}
}

func TestResizeFieldClampsMinimum(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)

	if err := session.ResizeField(key, "sec-a", 5, 5, nil, nil); err != nil {
		t.Fatalf("ResizeField error: %v", err)
	}
	got := fieldAt(t, session, "sec-a", key)
	if got.Width != MinFieldSize || got.Height != MinFieldSize {
		t.Fatalf("clamped to (%v, %v), want (%v, %v)", got.Width, got.Height, MinFieldSize, MinFieldSize)
	}

	x, y := 12.0, 34.0
	if err := session.ResizeField(key, "sec-a", 80, 40, &x, &y); err != nil {
		t.Fatalf("ResizeField with position error: %v", err)
	}
	got = fieldAt(t, session, "sec-a", key)
	if got.Width != 80 || got.Height != 40 || got.X != 12 || got.Y != 34 {
		t.Fatalf("resize with reposition got %+v", got)
	}
}

func TestDeleteFieldsPrunesSelectionAndGroups(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{Width: 100, Height: 24}, false)
	keyC := mustAdd(t, session, "sec-a", "memo", Geometry{Width: 100, Height: 24}, false)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", true)
	session.Select(keyC, "sec-a", true)
	if _, err := session.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}

	if err := session.DeleteFields([]FieldRef{{FieldID: keyA, SectionID: "sec-a"}}); err != nil {
		t.Fatalf("DeleteFields error: %v", err)
	}

	state := session.State()
	for _, ref := range state.Selection {
		if ref.FieldID == keyA {
			t.Fatalf("deleted field still selected")
		}
	}
	if len(state.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(state.Groups))
	}
	for _, members := range state.Groups {
		if len(members) != 2 {
			t.Fatalf("expected group pruned to 2 members, got %d", len(members))
		}
	}
}

func TestDeleteFieldsFallsBackToSelection(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	session.Select(key, "sec-a", false)

	if err := session.DeleteFields(nil); err != nil {
		t.Fatalf("DeleteFields error: %v", err)
	}
	sections := session.Sections()
	if len(sections[0].FieldPositions) != 0 {
		t.Fatalf("field not deleted via selection")
	}

	if err := session.DeleteFields(nil); err != ErrNoTargets {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}

func TestSelectSemantics(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{Width: 100, Height: 24}, false)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", false)
	if sel := session.State().Selection; len(sel) != 1 || sel[0].FieldID != keyB {
		t.Fatalf("single select should replace, got %+v", sel)
	}

	session.Select(keyA, "sec-a", true)
	if sel := session.State().Selection; len(sel) != 2 {
		t.Fatalf("multi select should add, got %+v", sel)
	}

	session.Select(keyA, "sec-a", true)
	if sel := session.State().Selection; len(sel) != 1 {
		t.Fatalf("multi select should toggle off, got %+v", sel)
	}

	session.Select("", "", false)
	if sel := session.State().Selection; len(sel) != 0 {
		t.Fatalf("empty fieldID should clear selection, got %+v", sel)
	}
}

func TestClearSection(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	session.Select(key, "sec-a", false)

	if err := session.ClearSection("sec-a"); err != nil {
		t.Fatalf("ClearSection error: %v", err)
	}
	if len(session.State().Selection) != 0 {
		t.Fatalf("selection not pruned after clear")
	}

	// 空段上再次清空是成功的空操作
	if err := session.ClearSection("sec-a"); err != nil {
		t.Fatalf("ClearSection on empty section should succeed, got %v", err)
	}
	if err := session.ClearSection("missing"); err != ErrSectionNotFound {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestClearAllSections(t *testing.T) {
	session := newTestSession(t)
	mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	mustAdd(t, session, "sec-b", "memo", Geometry{Width: 100, Height: 24}, false)

	if err := session.ClearAllSections(); err != nil {
		t.Fatalf("ClearAllSections error: %v", err)
	}
	for _, section := range session.Sections() {
		if len(section.FieldPositions) != 0 {
			t.Fatalf("section %s not cleared", section.ID)
		}
	}
}

func TestHydrateOnce(t *testing.T) {
	session := newTestSession(t)
	mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)

	// 保存触发的重新拉取不能覆盖编辑中的状态
	if session.Hydrate([]Section{{ID: "other", HeightInches: 1}}, 0) {
		t.Fatalf("second hydrate must be rejected")
	}
	sections := session.Sections()
	if len(sections) != 2 || sections[0].ID != "sec-a" {
		t.Fatalf("hydrate clobbered live state: %+v", sections)
	}
}

func TestClosedSessionRejectsCommands(t *testing.T) {
	session := newTestSession(t)
	session.Close()

	if _, err := session.AddField("sec-a", "date", Geometry{}, false); err != ErrSessionClosed {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := session.MoveField("x", "sec-a", 0, 0); err != ErrSessionClosed {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if !session.Closed() {
		t.Fatalf("Closed() = false after Close")
	}
}

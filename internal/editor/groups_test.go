package editor

import "testing"

func TestGroupRequiresTwoMembers(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	session.Select(key, "sec-a", false)

	if _, err := session.GroupSelection(); err != ErrInsufficientSelection {
		t.Fatalf("expected ErrInsufficientSelection, got %v", err)
	}
	if len(session.State().Groups) != 0 {
		t.Fatalf("group state changed on rejected group")
	}
}

func TestGroupIDsMonotonic(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{Width: 100, Height: 24}, false)
	keyC := mustAdd(t, session, "sec-a", "memo", Geometry{Width: 100, Height: 24}, false)
	keyD := mustAdd(t, session, "sec-a", "amount", Geometry{Width: 100, Height: 24}, false)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", true)
	firstID, err := session.GroupSelection()
	if err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}

	session.Select(keyC, "sec-a", false)
	session.Select(keyD, "sec-a", true)
	secondID, err := session.GroupSelection()
	if err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}
	if secondID <= firstID {
		t.Fatalf("group ids not monotonic: %d then %d", firstID, secondID)
	}
}

func TestUngroupPartialOverlap(t *testing.T) {
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

	// 三成员组摘掉一个，剩两成员的组保留
	session.Select(keyA, "sec-a", false)
	if err := session.UngroupSelection(); err != nil {
		t.Fatalf("UngroupSelection error: %v", err)
	}
	groups := session.State().Groups
	if len(groups) != 1 {
		t.Fatalf("expected surviving group, got %d groups", len(groups))
	}
	for _, members := range groups {
		if len(members) != 2 {
			t.Fatalf("expected 2 remaining members, got %d", len(members))
		}
	}
}

func TestUngroupAllMembersDeletesGroup(t *testing.T) {
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
	if err := session.UngroupSelection(); err != nil {
		t.Fatalf("UngroupSelection error: %v", err)
	}
	if len(session.State().Groups) != 0 {
		t.Fatalf("fully ungrouped group should be deleted")
	}
}

func TestUngroupWithoutOverlap(t *testing.T) {
	session := newTestSession(t)
	key := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	session.Select(key, "sec-a", false)

	if err := session.UngroupSelection(); err != ErrNoGroupsAffected {
		t.Fatalf("expected ErrNoGroupsAffected, got %v", err)
	}
}

func TestRegroupMovesFieldOutOfOldGroup(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{Width: 100, Height: 24}, false)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{Width: 100, Height: 24}, false)
	keyC := mustAdd(t, session, "sec-a", "memo", Geometry{Width: 100, Height: 24}, false)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", true)
	if _, err := session.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}

	// keyB 进入新组，旧组缩减到单成员但不自动解散
	session.Select(keyB, "sec-a", false)
	session.Select(keyC, "sec-a", true)
	if _, err := session.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}

	groups := session.State().Groups
	if len(groups) != 2 {
		t.Fatalf("expected old group kept with 1 member, got %d groups", len(groups))
	}
	memberTotal := 0
	for _, members := range groups {
		for _, m := range members {
			if m.FieldID == keyB {
				memberTotal++
			}
		}
	}
	if memberTotal != 1 {
		t.Fatalf("field belongs to %d groups, want exactly 1", memberTotal)
	}
}

func TestSingleMemberGroupInertForMovement(t *testing.T) {
	session := newTestSession(t)
	keyA := mustAdd(t, session, "sec-a", "date", Geometry{X: 0, Y: 0, Width: 100, Height: 24}, true)
	keyB := mustAdd(t, session, "sec-a", "payee", Geometry{X: 0, Y: 40, Width: 100, Height: 24}, true)

	session.Select(keyA, "sec-a", false)
	session.Select(keyB, "sec-a", true)
	if _, err := session.GroupSelection(); err != nil {
		t.Fatalf("GroupSelection error: %v", err)
	}
	session.Select(keyB, "sec-a", false)
	if err := session.UngroupSelection(); err != nil {
		t.Fatalf("UngroupSelection error: %v", err)
	}

	// 残留的单成员组对移动不再生效
	if err := session.MoveField(keyA, "sec-a", 50, 60); err != nil {
		t.Fatalf("MoveField error: %v", err)
	}
	if got := fieldAt(t, session, "sec-a", keyB); got.X != 0 || got.Y != 40 {
		t.Fatalf("inert group dragged another field to (%v, %v)", got.X, got.Y)
	}
}

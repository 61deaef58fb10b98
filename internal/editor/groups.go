package editor

// groupSet 编组状态：组号到成员列表的正向表，加一张成员到组号的反向索引
// 反向索引让“字段最多属于一个组”由构造保证，查找也无需线性扫描
type groupSet struct {
	groups     map[int][]FieldRef
	membership map[FieldRef]int
	nextID     int
}

func newGroupSet() *groupSet {
	return &groupSet{
		groups:     make(map[int][]FieldRef),
		membership: make(map[FieldRef]int),
		nextID:     1,
	}
}

// groupOf 字段所属的组号，未编组时 ok=false
func (g *groupSet) groupOf(ref FieldRef) (int, bool) {
	id, ok := g.membership[ref]
	return id, ok
}

// members 组的成员列表副本
func (g *groupSet) members(id int) []FieldRef {
	src := g.groups[id]
	out := make([]FieldRef, len(src))
	copy(out, src)
	return out
}

// create 以给定成员建立新组，成员已属于其他组时先从旧组摘除
// 组号单调递增，不复用
func (g *groupSet) create(refs []FieldRef) int {
	for _, ref := range refs {
		g.remove(ref)
	}
	id := g.nextID
	g.nextID++
	members := make([]FieldRef, len(refs))
	copy(members, refs)
	g.groups[id] = members
	for _, ref := range refs {
		g.membership[ref] = id
	}
	return id
}

// remove 将字段从其所属组摘除；组成员归零时整组删除
// 仅剩一个成员的组保留（对移动不再生效，但不自动解散）
func (g *groupSet) remove(ref FieldRef) bool {
	id, ok := g.membership[ref]
	if !ok {
		return false
	}
	delete(g.membership, ref)
	members := g.groups[id]
	for i, m := range members {
		if m == ref {
			g.groups[id] = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(g.groups[id]) == 0 {
		delete(g.groups, id)
	}
	return true
}

// ungroup 从所有与选区有交集的组里摘除交集成员，返回是否有组受影响
func (g *groupSet) ungroup(refs []FieldRef) bool {
	affected := false
	for _, ref := range refs {
		if g.remove(ref) {
			affected = true
		}
	}
	return affected
}

// prune 剔除失效成员，结构性变更后调用
func (g *groupSet) prune(valid func(FieldRef) bool) {
	for ref := range g.membership {
		if !valid(ref) {
			g.remove(ref)
		}
	}
}

// snapshot 当前编组状态副本
func (g *groupSet) snapshot() map[int][]FieldRef {
	out := make(map[int][]FieldRef, len(g.groups))
	for id := range g.groups {
		out[id] = g.members(id)
	}
	return out
}

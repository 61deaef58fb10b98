package editor

// FieldRef 指向某个段内的一个字段实例
type FieldRef struct {
	FieldID   string `json:"fieldId"`
	SectionID string `json:"sectionId"`
}

// selection 当前选中的字段集合，无序、无重复
type selection struct {
	refs []FieldRef
}

// contains 是否已选中该字段
func (sel *selection) contains(ref FieldRef) bool {
	for _, r := range sel.refs {
		if r == ref {
			return true
		}
	}
	return false
}

// set 单选：选区变为单元素集合
func (sel *selection) set(ref FieldRef) {
	sel.refs = []FieldRef{ref}
}

// toggle 多选：已选中则移除，否则加入
func (sel *selection) toggle(ref FieldRef) {
	for i, r := range sel.refs {
		if r == ref {
			sel.refs = append(sel.refs[:i], sel.refs[i+1:]...)
			return
		}
	}
	sel.refs = append(sel.refs, ref)
}

// clear 清空选区（点击画布空白处的语义）
func (sel *selection) clear() {
	sel.refs = nil
}

// prune 剔除不再满足有效性谓词的选中项，每次结构性变更后调用
func (sel *selection) prune(valid func(FieldRef) bool) {
	kept := sel.refs[:0]
	for _, r := range sel.refs {
		if valid(r) {
			kept = append(kept, r)
		}
	}
	sel.refs = kept
}

// snapshot 选区副本，返回给调用方时使用
func (sel *selection) snapshot() []FieldRef {
	out := make([]FieldRef, len(sel.refs))
	copy(out, sel.refs)
	return out
}
